// Package prayer computes the five daily prayer times for a coordinate.
// The engine only depends on the Provider interface; the bundled calculator
// is one opaque implementation of it.
package prayer

import (
	"time"

	"github.com/captian10/adhan-engine/internal/model"
)

// Provider is a pure function boundary: (coordinates, civil date) -> the five
// triggers of that date, in canonical order (Fajr, Dhuhr, Asr, Maghrib, Isha)
// and strictly increasing in time. The date's time.Location decides the civil
// day and the zone of the returned timestamps.
type Provider interface {
	TimesFor(coords model.Coordinates, date time.Time) ([]model.PrayerTrigger, error)
}
