package model

// Coordinates is a WGS84 position.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LocationMode selects between device positioning and a pinned city.
type LocationMode string

const (
	LocationAuto   LocationMode = "auto"
	LocationManual LocationMode = "manual"
)

// LocationPreference is the persisted location blob. Manual entries carry
// their own coordinates and display name and are immutable until replaced;
// auto entries may lazily refresh the cached name.
type LocationPreference struct {
	Mode LocationMode `json:"mode"`
	Lat  *float64     `json:"lat,omitempty"`
	Lng  *float64     `json:"lng,omitempty"`
	Name string       `json:"name,omitempty"`
}

// ResolvedLocation is the outcome of a location resolution pass.
type ResolvedLocation struct {
	Coords Coordinates `json:"coords"`
	Name   string      `json:"name"`
}

// ReminderConfig describes the interval-based repeating reminder. It has an
// independent lifecycle from the prayer alarms.
type ReminderConfig struct {
	Enabled         bool   `json:"enabled"`
	IntervalMinutes int    `json:"interval_minutes"`
	SoundID         string `json:"sound_id"`
}
