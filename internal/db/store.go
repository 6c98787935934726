// exposes a Store interface over the engine's durable key-value state:
// feature toggles, sound preferences, the location blob and the alarm ledger.
package db

import (
	"github.com/captian10/adhan-engine/internal/model"
)

// settings keys, versioned like the host app's preference keys so an
// in-place upgrade keeps existing state.
const (
	keyAdhanEnabled   = "adhan_enabled_v1"
	keyAdhanSound     = "adhan_sound_pref_v1"
	keySalatEnabled   = "salat_enabled_v1"
	keySalatInterval  = "salat_interval_min_v1"
	keySalatSound     = "salat_sound_pref_v1"
	keyLocationPref   = "adhan_location_pref_v1"
	keyCachedCityName = "adhan_cached_city_name_v1"
)

// documented defaults
const (
	DefaultAdhanSoundID     = "azan_nasser_elktamy"
	DefaultSalatSoundID     = "salat_default"
	DefaultSalatIntervalMin = 30
	MinSalatIntervalMinutes = 1
	MaxSalatIntervalMinutes = 24 * 60
	defaultAdhanEnabled     = true
	defaultSalatEnabled     = false
)

// ClampSalatInterval forces an interval into the accepted [1, 1440] range.
// Values outside the range are never persisted or dispatched.
func ClampSalatInterval(min int) int {
	if min < MinSalatIntervalMinutes {
		return MinSalatIntervalMinutes
	}
	if min > MaxSalatIntervalMinutes {
		return MaxSalatIntervalMinutes
	}
	return min
}

type Store interface {
	// prayer alarm toggle (default on)
	AdhanEnabled() (bool, error)
	SetAdhanEnabled(enabled bool) error
	AdhanSound() (string, error)
	SetAdhanSound(soundID string) error

	// salat reminder toggle + interval (default off / 30 minutes)
	SalatEnabled() (bool, error)
	SetSalatEnabled(enabled bool) error
	SalatInterval() (int, error)
	SetSalatInterval(minutes int) error
	SalatSound() (string, error)
	SetSalatSound(soundID string) error

	// location preference blob + lazily refreshed place name
	LocationPreference() (model.LocationPreference, error)
	SetLocationPreference(pref model.LocationPreference) error
	CachedPlaceName() (string, error)
	SetCachedPlaceName(name string) error

	// alarm ledger: the ids currently believed live at the OS layer.
	// ReplaceAlarmIDs atomically swaps the whole set.
	AlarmIDs() ([]string, error)
	ReplaceAlarmIDs(ids []string) error
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}
