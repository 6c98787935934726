package api

import "github.com/captian10/adhan-engine/internal/model"

type RefreshRequest struct {
	DaysAhead     int  `json:"days_ahead"`
	ForceLocation bool `json:"force_location"`
}

type ToggleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type SoundRequest struct {
	SoundID string `json:"sound_id" binding:"required"`
}

type IntervalRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

type TestAlarmRequest struct {
	Seconds int `json:"seconds"`
}

type LocationRequest struct {
	Mode model.LocationMode `json:"mode" binding:"required"`
	Lat  *float64           `json:"lat"`
	Lng  *float64           `json:"lng"`
	Name string             `json:"name"`
}

type StatusResponse struct {
	AdhanEnabled bool                     `json:"adhan_enabled"`
	AdhanSound   string                   `json:"adhan_sound"`
	Salat        model.ReminderConfig     `json:"salat"`
	Location     model.LocationPreference `json:"location"`
}

type TestAlarmResponse struct {
	ID string `json:"id"`
}

type StopResponse struct {
	Stopped bool `json:"stopped"`
}
