package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/captian10/adhan-engine/internal/alarm"
	"github.com/captian10/adhan-engine/internal/db"
	"github.com/captian10/adhan-engine/internal/model"
)

// salatLabel is the reminder's display label, kept verbatim from the host app.
const salatLabel = "صلي على محمد"

// SalatConfig reports the reminder's current configuration.
func (e *Engine) SalatConfig() (model.ReminderConfig, error) {
	enabled, err := e.store.SalatEnabled()
	if err != nil {
		return model.ReminderConfig{}, err
	}
	interval, err := e.store.SalatInterval()
	if err != nil {
		return model.ReminderConfig{}, err
	}
	soundID, err := e.store.SalatSound()
	if err != nil {
		return model.ReminderConfig{}, err
	}
	return model.ReminderConfig{Enabled: enabled, IntervalMinutes: interval, SoundID: soundID}, nil
}

// RefreshSalat re-issues the repeating reminder request, superseding any
// previous one under the fixed slot id. The native alarm primitive re-arms
// itself after each fire, so no ledger is needed: the reminder occupies
// exactly one slot. Disabled means cancellation only.
func (e *Engine) RefreshSalat(ctx context.Context) error {
	enabled, err := e.store.SalatEnabled()
	if err != nil {
		return err
	}
	if !enabled {
		return e.dispatcher.Cancel(alarm.SalatSlotID)
	}

	interval, err := e.store.SalatInterval()
	if err != nil {
		return err
	}
	soundID, err := e.store.SalatSound()
	if err != nil {
		return err
	}

	firstAt := e.now().Add(time.Duration(interval) * time.Minute)
	if err := e.dispatcher.ScheduleExactRepeating(alarm.SalatSlotID, firstAt, salatLabel, soundID, interval, false); err != nil {
		return err
	}
	log.Info().Int("interval_min", interval).Msg("salat reminder armed")
	return nil
}

// SalatEnabled reads the reminder toggle.
func (e *Engine) SalatEnabled() (bool, error) {
	return e.store.SalatEnabled()
}

// SetSalatEnabled flips the reminder. Enabling arms the repeating slot
// immediately; disabling cancels it immediately.
func (e *Engine) SetSalatEnabled(ctx context.Context, enabled bool) error {
	if err := e.store.SetSalatEnabled(enabled); err != nil {
		return err
	}
	return e.RefreshSalat(ctx)
}

// SalatInterval reads the reminder interval in minutes.
func (e *Engine) SalatInterval() (int, error) {
	return e.store.SalatInterval()
}

// SetSalatInterval stores a clamped interval and, when the reminder is on,
// re-arms the slot so the new cadence takes effect immediately.
func (e *Engine) SetSalatInterval(ctx context.Context, minutes int) error {
	if err := e.store.SetSalatInterval(minutes); err != nil {
		return err
	}
	enabled, err := e.store.SalatEnabled()
	if err != nil || !enabled {
		return err
	}
	return e.RefreshSalat(ctx)
}

// SalatSound reads the reminder sound preference.
func (e *Engine) SalatSound() (string, error) {
	return e.store.SalatSound()
}

// SetSalatSound changes the reminder sound. Rejected while the reminder is
// off, with no partial state change.
func (e *Engine) SetSalatSound(soundID string) error {
	enabled, err := e.store.SalatEnabled()
	if err != nil {
		return err
	}
	if !enabled {
		return ErrSalatDisabled
	}
	return e.store.SetSalatSound(soundID)
}

// ScheduleTestSalat fires the reminder once after the given number of
// seconds, using a throwaway id outside the fixed slot. Interval 0 marks the
// request one-shot at the dispatcher.
func (e *Engine) ScheduleTestSalat(seconds int) (string, error) {
	enabled, err := e.store.SalatEnabled()
	if err != nil {
		return "", err
	}
	if !enabled {
		return "", ErrSalatDisabled
	}

	soundID, err := e.store.SalatSound()
	if err != nil {
		return "", err
	}

	id := alarm.TestSalatID()
	when := e.now().Add(time.Duration(seconds) * time.Second)
	if err := e.dispatcher.ScheduleExactRepeating(id, when, salatLabel, soundID, 0, false); err != nil {
		return "", err
	}
	return id, nil
}

// interval bounds re-exported for the API layer
const (
	MinSalatIntervalMinutes = db.MinSalatIntervalMinutes
	MaxSalatIntervalMinutes = db.MaxSalatIntervalMinutes
)
