package model

import "time"

// PrayerName is one of the five daily prayers.
type PrayerName string

const (
	Fajr    PrayerName = "Fajr"
	Dhuhr   PrayerName = "Dhuhr"
	Asr     PrayerName = "Asr"
	Maghrib PrayerName = "Maghrib"
	Isha    PrayerName = "Isha"
)

// PrayerOrder is the canonical within-day ordering of the five prayers.
var PrayerOrder = [5]PrayerName{Fajr, Dhuhr, Asr, Maghrib, Isha}

// PrayerTrigger is a single upcoming prayer announcement. Triggers are
// recomputed on every planning pass and never persisted individually.
type PrayerTrigger struct {
	Name PrayerName `json:"name"`
	Time time.Time  `json:"time"`
}

// AlarmTicket is one exact-alarm instruction handed to the dispatcher.
type AlarmTicket struct {
	ID        string    `json:"id"`
	TriggerAt time.Time `json:"trigger_at"`
	Label     string    `json:"label"`
	SoundID   string    `json:"sound_id"`
}

// RefreshResult is what a full scheduling pass reports back to the host.
type RefreshResult struct {
	ScheduledCount     int             `json:"scheduled_count"`
	NextPrayer         *PrayerTrigger  `json:"next_prayer"`
	TodayPrayers       []PrayerTrigger `json:"today_prayers"`
	ScheduledRangeDays int             `json:"scheduled_range_days"`
	LocationName       string          `json:"location_name"`
}
