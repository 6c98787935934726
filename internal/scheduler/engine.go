// Package scheduler plans prayer alarms: it turns a location into a rolling
// window of exact-alarm tickets, keeps the ledger of live ids consistent with
// what was handed to the dispatcher, and owns the feature toggles.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/captian10/adhan-engine/internal/alarm"
	"github.com/captian10/adhan-engine/internal/db"
	"github.com/captian10/adhan-engine/internal/model"
	"github.com/captian10/adhan-engine/internal/prayer"
)

var (
	// ErrAdhanDisabled rejects sub-actions of the prayer alarm feature
	// while it is switched off.
	ErrAdhanDisabled = errors.New("adhan is disabled")
	// ErrSalatDisabled rejects sub-actions of the reminder feature while
	// it is switched off.
	ErrSalatDisabled = errors.New("salat reminder is disabled")
)

const (
	MinDaysAhead     = 1
	MaxDaysAhead     = 14
	DefaultDaysAhead = 5

	// GraceWindow is the minimum lead time a trigger must have to be
	// scheduled; it also keeps a day boundary at "now" from
	// double-scheduling.
	GraceWindow = 60 * time.Second
)

// LocationResolver is the location boundary; satisfied by *location.Resolver.
type LocationResolver interface {
	Resolve(ctx context.Context, forceFresh bool) (model.ResolvedLocation, error)
}

// Engine is the scheduling engine. One instance per process; Refresh is
// serialized by an internal single-flight guard so two concurrent refreshes
// cannot interleave their cancel and schedule phases.
type Engine struct {
	store      db.Store
	provider   prayer.Provider
	resolver   LocationResolver
	dispatcher alarm.Dispatcher

	now func() time.Time

	mu sync.Mutex
}

func New(store db.Store, provider prayer.Provider, resolver LocationResolver, dispatcher alarm.Dispatcher) *Engine {
	return &Engine{
		store:      store,
		provider:   provider,
		resolver:   resolver,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

func clampDays(daysAhead int) int {
	if daysAhead < MinDaysAhead {
		return MinDaysAhead
	}
	if daysAhead > MaxDaysAhead {
		return MaxDaysAhead
	}
	return daysAhead
}

// Refresh replans the whole alarm window: it cancels everything in the
// ledger and schedules every future trigger for the next daysAhead days
// (clamped to [1,14]), replacing the ledger with exactly the new id set.
//
// Location failures abort the call before anything is cancelled. When the
// prayer alarm feature is off the pass schedules nothing but still computes
// the next upcoming trigger so the host can display it.
func (e *Engine) Refresh(ctx context.Context, daysAhead int, forceLocation bool) (model.RefreshResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	days := clampDays(daysAhead)

	loc, err := e.resolver.Resolve(ctx, forceLocation)
	if err != nil {
		return model.RefreshResult{}, err
	}

	if !e.dispatcher.HasExactAlarmPermission() {
		log.Warn().Msg("exact alarm permission missing, delivery may be inexact")
	}

	soundID, err := e.store.AdhanSound()
	if err != nil {
		return model.RefreshResult{}, err
	}

	now := e.now()
	today, err := e.provider.TimesFor(loc.Coords, now)
	if err != nil {
		return model.RefreshResult{}, err
	}

	// always clear the old set first, so a refresh with the feature off
	// also stops every pending alarm
	if err := e.clearLedgerLocked(); err != nil {
		return model.RefreshResult{}, err
	}

	enabled, err := e.store.AdhanEnabled()
	if err != nil {
		return model.RefreshResult{}, err
	}

	result := model.RefreshResult{
		TodayPrayers:       today,
		ScheduledRangeDays: days,
		LocationName:       loc.Name,
	}

	if !enabled {
		next := firstAfter(today, now)
		if next == nil {
			tomorrow, err := e.provider.TimesFor(loc.Coords, now.AddDate(0, 0, 1))
			if err == nil && len(tomorrow) > 0 {
				next = &tomorrow[0]
			}
		}
		result.NextPrayer = next
		log.Info().Str("location", loc.Name).Msg("adhan disabled, nothing scheduled")
		return result, nil
	}

	newIDs := make([]string, 0, days*len(model.PrayerOrder))
	var next *model.PrayerTrigger

	for offset := 0; offset < days; offset++ {
		triggers := today
		if offset > 0 {
			triggers, err = e.provider.TimesFor(loc.Coords, now.AddDate(0, 0, offset))
			if err != nil {
				return model.RefreshResult{}, err
			}
		}

		for _, t := range triggers {
			if !t.Time.After(now.Add(GraceWindow)) {
				continue
			}
			if next == nil || t.Time.Before(next.Time) {
				trigger := t
				next = &trigger
			}

			id := alarm.TicketID(t.Time, t.Name)
			if err := e.dispatcher.ScheduleExact(id, t.Time, string(t.Name), soundID); err != nil {
				log.Error().Err(err).Str("alarm_id", id).Msg("failed to schedule alarm")
				continue
			}
			newIDs = append(newIDs, id)
		}
	}

	if err := e.store.ReplaceAlarmIDs(newIDs); err != nil {
		return model.RefreshResult{}, err
	}

	result.ScheduledCount = len(newIDs)
	result.NextPrayer = next
	log.Info().
		Int("scheduled", len(newIDs)).
		Int("days", days).
		Str("location", loc.Name).
		Msg("prayer schedule refreshed")
	return result, nil
}

// clearLedgerLocked cancels every id in the ledger and empties it. Cancels
// on already-expired ids are no-ops at the dispatcher.
func (e *Engine) clearLedgerLocked() error {
	ids, err := e.store.AlarmIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := e.dispatcher.Cancel(id); err != nil {
			log.Error().Err(err).Str("alarm_id", id).Msg("failed to cancel alarm")
		}
	}
	return e.store.ReplaceAlarmIDs(nil)
}

func firstAfter(triggers []model.PrayerTrigger, now time.Time) *model.PrayerTrigger {
	for _, t := range triggers {
		if t.Time.After(now) {
			trigger := t
			return &trigger
		}
	}
	return nil
}

// AdhanEnabled reads the prayer alarm toggle.
func (e *Engine) AdhanEnabled() (bool, error) {
	return e.store.AdhanEnabled()
}

// SetAdhanEnabled flips the prayer alarm feature. Disabling is a hard
// cutover: every pending alarm is cancelled and any in-progress delivery is
// stopped before the call returns, not lazily on the next refresh.
func (e *Engine) SetAdhanEnabled(enabled bool) error {
	if err := e.store.SetAdhanEnabled(enabled); err != nil {
		return err
	}
	if enabled {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.clearLedgerLocked(); err != nil {
		return err
	}
	stopped := e.dispatcher.StopActiveDelivery()
	log.Info().Bool("delivery_stopped", stopped).Msg("adhan disabled, alarms cancelled")
	return nil
}

// AdhanSound reads the adhan sound preference.
func (e *Engine) AdhanSound() (string, error) {
	return e.store.AdhanSound()
}

// SetAdhanSound changes the adhan sound. Rejected while the feature is off;
// no partial state change happens on rejection.
func (e *Engine) SetAdhanSound(soundID string) error {
	enabled, err := e.store.AdhanEnabled()
	if err != nil {
		return err
	}
	if !enabled {
		return ErrAdhanDisabled
	}
	return e.store.SetAdhanSound(soundID)
}

// ScheduleTestAdhan fires a one-shot test alarm after the given number of
// seconds. The ticket uses a throwaway id and never enters the ledger.
func (e *Engine) ScheduleTestAdhan(seconds int) (string, error) {
	enabled, err := e.store.AdhanEnabled()
	if err != nil {
		return "", err
	}
	if !enabled {
		return "", ErrAdhanDisabled
	}

	soundID, err := e.store.AdhanSound()
	if err != nil {
		return "", err
	}

	id := alarm.TestAdhanID()
	when := e.now().Add(time.Duration(seconds) * time.Second)
	if err := e.dispatcher.ScheduleExact(id, when, "Test", soundID); err != nil {
		return "", err
	}
	return id, nil
}
