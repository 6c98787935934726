package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/captian10/adhan-engine/internal/model"
)

func TestMemStoreDefaults(t *testing.T) {
	store := NewMemStore()

	enabled, err := store.AdhanEnabled()
	require.NoError(t, err)
	assert.True(t, enabled, "adhan defaults on")

	enabled, err = store.SalatEnabled()
	require.NoError(t, err)
	assert.False(t, enabled, "salat defaults off")

	interval, err := store.SalatInterval()
	require.NoError(t, err)
	assert.Equal(t, DefaultSalatIntervalMin, interval)

	sound, err := store.AdhanSound()
	require.NoError(t, err)
	assert.Equal(t, DefaultAdhanSoundID, sound)

	pref, err := store.LocationPreference()
	require.NoError(t, err)
	assert.Equal(t, model.LocationAuto, pref.Mode)
}

func TestSalatIntervalClamping(t *testing.T) {
	store := NewMemStore()

	require.NoError(t, store.SetSalatInterval(0))
	interval, _ := store.SalatInterval()
	assert.Equal(t, MinSalatIntervalMinutes, interval)

	require.NoError(t, store.SetSalatInterval(100000))
	interval, _ = store.SalatInterval()
	assert.Equal(t, MaxSalatIntervalMinutes, interval)

	require.NoError(t, store.SetSalatInterval(45))
	interval, _ = store.SalatInterval()
	assert.Equal(t, 45, interval)
}

func TestLedgerReplace(t *testing.T) {
	store := NewMemStore()

	ids, err := store.AlarmIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, store.ReplaceAlarmIDs([]string{"a", "b", "c"}))
	ids, _ = store.AlarmIDs()
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	// full replace, not merge
	require.NoError(t, store.ReplaceAlarmIDs([]string{"d"}))
	ids, _ = store.AlarmIDs()
	assert.Equal(t, []string{"d"}, ids)

	require.NoError(t, store.ReplaceAlarmIDs(nil))
	ids, _ = store.AlarmIDs()
	assert.Empty(t, ids)
}

func TestLocationPreferenceRoundTrip(t *testing.T) {
	store := NewMemStore()

	lat, lng := 30.0444, 31.2357
	pref := model.LocationPreference{Mode: model.LocationManual, Lat: &lat, Lng: &lng, Name: "Cairo"}
	require.NoError(t, store.SetLocationPreference(pref))

	got, err := store.LocationPreference()
	require.NoError(t, err)
	assert.Equal(t, model.LocationManual, got.Mode)
	require.NotNil(t, got.Lat)
	assert.Equal(t, lat, *got.Lat)
	assert.Equal(t, "Cairo", got.Name)

	// manual without coordinates is rejected
	assert.Error(t, store.SetLocationPreference(model.LocationPreference{Mode: model.LocationManual}))
}
