package prayer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/captian10/adhan-engine/internal/model"
)

var cairo = model.Coordinates{Lat: 30.0444, Lng: 31.2357}

func TestTimesForOrdering(t *testing.T) {
	calc := NewEgyptianCalculator()
	eet := time.FixedZone("EET", 2*3600)

	for _, date := range []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, eet),
		time.Date(2024, 3, 20, 0, 0, 0, 0, eet),
		time.Date(2024, 6, 15, 0, 0, 0, 0, eet),
		time.Date(2024, 12, 21, 0, 0, 0, 0, eet),
	} {
		triggers, err := calc.TimesFor(cairo, date)
		require.NoError(t, err)
		require.Len(t, triggers, 5)

		for i, name := range model.PrayerOrder {
			assert.Equal(t, name, triggers[i].Name)
		}
		for i := 1; i < len(triggers); i++ {
			assert.True(t, triggers[i].Time.After(triggers[i-1].Time),
				"%s must come after %s on %s", triggers[i].Name, triggers[i-1].Name, date.Format("2006-01-02"))
		}
	}
}

func TestTimesForPlausibleHours(t *testing.T) {
	calc := NewEgyptianCalculator()
	eet := time.FixedZone("EET", 2*3600)
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, eet)

	triggers, err := calc.TimesFor(cairo, date)
	require.NoError(t, err)

	hours := make(map[model.PrayerName]int, 5)
	for _, tr := range triggers {
		assert.Equal(t, date.Day(), tr.Time.Day())
		hours[tr.Name] = tr.Time.Hour()
	}

	assert.InDelta(t, 4, hours[model.Fajr], 2)
	assert.InDelta(t, 12, hours[model.Dhuhr], 1)
	assert.InDelta(t, 15, hours[model.Asr], 2)
	assert.InDelta(t, 19, hours[model.Maghrib], 2)
	assert.InDelta(t, 21, hours[model.Isha], 2)
}

func TestTimesForPolarLatitude(t *testing.T) {
	calc := NewEgyptianCalculator()
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	// midnight sun: 19.5° dawn depression never happens
	_, err := calc.TimesFor(model.Coordinates{Lat: 70, Lng: 20}, date)
	assert.Error(t, err)
}
