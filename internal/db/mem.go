package db

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/captian10/adhan-engine/internal/model"
)

// MemStore is an in-memory Store for tests that never touches PostgreSQL.
// It honors the same defaults and clamping as the SQL-backed store.
type MemStore struct {
	mu       sync.Mutex
	settings map[string]string
	ledger   []string
}

func NewMemStore() *MemStore {
	return &MemStore{settings: make(map[string]string)}
}

var _ Store = (*MemStore)(nil)

func (m *MemStore) get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.settings[key]
	return v, ok
}

func (m *MemStore) set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
}

func (m *MemStore) getBool(key string, def bool) bool {
	v, ok := m.get(key)
	if !ok {
		return def
	}
	return v == "1"
}

func (m *MemStore) setBool(key string, enabled bool) {
	if enabled {
		m.set(key, "1")
	} else {
		m.set(key, "0")
	}
}

func (m *MemStore) AdhanEnabled() (bool, error) {
	return m.getBool(keyAdhanEnabled, defaultAdhanEnabled), nil
}

func (m *MemStore) SetAdhanEnabled(enabled bool) error {
	m.setBool(keyAdhanEnabled, enabled)
	return nil
}

func (m *MemStore) AdhanSound() (string, error) {
	if v, ok := m.get(keyAdhanSound); ok {
		return v, nil
	}
	return DefaultAdhanSoundID, nil
}

func (m *MemStore) SetAdhanSound(soundID string) error {
	m.set(keyAdhanSound, soundID)
	return nil
}

func (m *MemStore) SalatEnabled() (bool, error) {
	return m.getBool(keySalatEnabled, defaultSalatEnabled), nil
}

func (m *MemStore) SetSalatEnabled(enabled bool) error {
	m.setBool(keySalatEnabled, enabled)
	return nil
}

func (m *MemStore) SalatInterval() (int, error) {
	v, ok := m.get(keySalatInterval)
	if !ok {
		return DefaultSalatIntervalMin, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return DefaultSalatIntervalMin, nil
	}
	return ClampSalatInterval(n), nil
}

func (m *MemStore) SetSalatInterval(minutes int) error {
	m.set(keySalatInterval, strconv.Itoa(ClampSalatInterval(minutes)))
	return nil
}

func (m *MemStore) SalatSound() (string, error) {
	if v, ok := m.get(keySalatSound); ok {
		return v, nil
	}
	return DefaultSalatSoundID, nil
}

func (m *MemStore) SetSalatSound(soundID string) error {
	m.set(keySalatSound, soundID)
	return nil
}

func (m *MemStore) LocationPreference() (model.LocationPreference, error) {
	v, ok := m.get(keyLocationPref)
	if !ok {
		return model.LocationPreference{Mode: model.LocationAuto}, nil
	}
	var pref model.LocationPreference
	if err := json.Unmarshal([]byte(v), &pref); err != nil {
		return model.LocationPreference{Mode: model.LocationAuto}, nil
	}
	return pref, nil
}

func (m *MemStore) SetLocationPreference(pref model.LocationPreference) error {
	if pref.Mode == model.LocationManual && (pref.Lat == nil || pref.Lng == nil) {
		return fmt.Errorf("manual location requires coordinates")
	}
	raw, err := json.Marshal(pref)
	if err != nil {
		return err
	}
	m.set(keyLocationPref, string(raw))
	return nil
}

func (m *MemStore) CachedPlaceName() (string, error) {
	v, _ := m.get(keyCachedCityName)
	return v, nil
}

func (m *MemStore) SetCachedPlaceName(name string) error {
	m.set(keyCachedCityName, name)
	return nil
}

func (m *MemStore) AlarmIDs() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.ledger))
	copy(out, m.ledger)
	return out, nil
}

func (m *MemStore) ReplaceAlarmIDs(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger = make([]string, len(ids))
	copy(m.ledger, ids)
	return nil
}
