// Package alarm is the boundary to the OS exact-alarm primitive. The engine
// only hands instructions across it; the alarm daemon owns the actual timed
// wake-ups and may fire them in a process that never ran the planner.
package alarm

import "time"

// Dispatcher is the consumed exact-alarm primitive.
//
// Calls are fire-and-forget and non-blocking from the engine's point of view.
// Cancel of an id the OS no longer knows must be a no-op, never an error.
type Dispatcher interface {
	// ScheduleExact arms a one-shot alarm.
	ScheduleExact(id string, triggerAt time.Time, label, soundID string) error

	// ScheduleExactRepeating arms a repeating alarm; the native layer
	// re-arms itself after each fire. intervalMinutes 0 means one-shot
	// (test path). Re-issuing the same id supersedes the previous request.
	ScheduleExactRepeating(id string, firstAt time.Time, label, soundID string, intervalMinutes int, openUI bool) error

	// Cancel disarms id if it is still pending.
	Cancel(id string) error

	// StopActiveDelivery tears down any in-progress playback and reports
	// whether something was actually stopped.
	StopActiveDelivery() bool

	// HasExactAlarmPermission is best-effort: a false return should steer
	// the user toward a settings surface, but scheduling proceeds anyway.
	HasExactAlarmPermission() bool
}

// Command is the wire form of a dispatcher instruction.
type Command struct {
	Action          string `json:"action"` // schedule | schedule_repeating | cancel | stop
	ID              string `json:"id,omitempty"`
	TriggerAtMs     int64  `json:"trigger_at_ms,omitempty"`
	Label           string `json:"label,omitempty"`
	SoundID         string `json:"sound_id,omitempty"`
	IntervalMinutes int    `json:"interval_minutes,omitempty"`
	OpenUI          bool   `json:"open_ui,omitempty"`
}

// FiredEvent is published by the alarm daemon when an alarm goes off.
type FiredEvent struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	SoundID string `json:"sound_id"`
}
