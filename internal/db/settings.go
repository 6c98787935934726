package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/captian10/adhan-engine/internal/model"
)

type pgStore struct {
	db *sqlx.DB
}

func (s *pgStore) getSetting(key string) (string, bool, error) {
	var value string
	err := s.db.Get(&value, `SELECT value FROM settings WHERE key = $1;`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("getSetting failed")
		return "", false, err
	}
	return value, true, nil
}

func (s *pgStore) setSetting(key, value string) error {
	_, err := s.db.Exec(`
	INSERT INTO settings (key, value)
	VALUES ($1, $2)
	ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;`, key, value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("setSetting failed")
	}
	return err
}

func (s *pgStore) getBool(key string, def bool) (bool, error) {
	v, ok, err := s.getSetting(key)
	if err != nil || !ok {
		return def, err
	}
	return v == "1", nil
}

func (s *pgStore) setBool(key string, enabled bool) error {
	v := "0"
	if enabled {
		v = "1"
	}
	return s.setSetting(key, v)
}

func (s *pgStore) AdhanEnabled() (bool, error) {
	return s.getBool(keyAdhanEnabled, defaultAdhanEnabled)
}

func (s *pgStore) SetAdhanEnabled(enabled bool) error {
	return s.setBool(keyAdhanEnabled, enabled)
}

func (s *pgStore) AdhanSound() (string, error) {
	v, ok, err := s.getSetting(keyAdhanSound)
	if err != nil || !ok {
		return DefaultAdhanSoundID, err
	}
	return v, nil
}

func (s *pgStore) SetAdhanSound(soundID string) error {
	return s.setSetting(keyAdhanSound, soundID)
}

func (s *pgStore) SalatEnabled() (bool, error) {
	return s.getBool(keySalatEnabled, defaultSalatEnabled)
}

func (s *pgStore) SetSalatEnabled(enabled bool) error {
	return s.setBool(keySalatEnabled, enabled)
}

func (s *pgStore) SalatInterval() (int, error) {
	v, ok, err := s.getSetting(keySalatInterval)
	if err != nil || !ok {
		return DefaultSalatIntervalMin, err
	}
	n, convErr := strconv.Atoi(v)
	if convErr != nil || n <= 0 {
		return DefaultSalatIntervalMin, nil
	}
	return ClampSalatInterval(n), nil
}

func (s *pgStore) SetSalatInterval(minutes int) error {
	return s.setSetting(keySalatInterval, strconv.Itoa(ClampSalatInterval(minutes)))
}

func (s *pgStore) SalatSound() (string, error) {
	v, ok, err := s.getSetting(keySalatSound)
	if err != nil || !ok {
		return DefaultSalatSoundID, err
	}
	return v, nil
}

func (s *pgStore) SetSalatSound(soundID string) error {
	return s.setSetting(keySalatSound, soundID)
}

func (s *pgStore) LocationPreference() (model.LocationPreference, error) {
	v, ok, err := s.getSetting(keyLocationPref)
	if err != nil {
		return model.LocationPreference{Mode: model.LocationAuto}, err
	}
	if !ok {
		return model.LocationPreference{Mode: model.LocationAuto}, nil
	}
	var pref model.LocationPreference
	if err := json.Unmarshal([]byte(v), &pref); err != nil {
		log.Error().Err(err).Msg("corrupt location preference, falling back to auto")
		return model.LocationPreference{Mode: model.LocationAuto}, nil
	}
	return pref, nil
}

func (s *pgStore) SetLocationPreference(pref model.LocationPreference) error {
	if pref.Mode == model.LocationManual && (pref.Lat == nil || pref.Lng == nil) {
		return fmt.Errorf("manual location requires coordinates")
	}
	raw, err := json.Marshal(pref)
	if err != nil {
		return err
	}
	return s.setSetting(keyLocationPref, string(raw))
}

func (s *pgStore) CachedPlaceName() (string, error) {
	v, _, err := s.getSetting(keyCachedCityName)
	return v, err
}

func (s *pgStore) SetCachedPlaceName(name string) error {
	return s.setSetting(keyCachedCityName, name)
}
