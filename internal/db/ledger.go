package db

import (
	"github.com/rs/zerolog/log"
)

// AlarmIDs lists the ledger in scheduling order.
func (s *pgStore) AlarmIDs() ([]string, error) {
	var ids []string
	err := s.db.Select(&ids, `SELECT id FROM alarm_ledger ORDER BY position;`)
	if err != nil {
		log.Error().Err(err).Msg("AlarmIDs failed")
		return nil, err
	}
	return ids, nil
}

// ReplaceAlarmIDs swaps the whole ledger in one transaction, so a failed
// refresh can never leave a half-replaced id set behind.
func (s *pgStore) ReplaceAlarmIDs(ids []string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		log.Error().Err(err).Msg("ReplaceAlarmIDs begin failed")
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM alarm_ledger;`); err != nil {
		log.Error().Err(err).Msg("ReplaceAlarmIDs clear failed")
		return err
	}
	for i, id := range ids {
		if _, err := tx.Exec(`
		INSERT INTO alarm_ledger (id, position)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING;`, id, i); err != nil {
			log.Error().Err(err).Str("alarm_id", id).Msg("ReplaceAlarmIDs insert failed")
			return err
		}
	}
	return tx.Commit()
}
