// govdir/database/migrations.go
package database

import (
	"database/sql"
	"fmt"

	"govdir/utils"
)

type migration struct {
	version     int
	description string
	apply       func(tx *sql.Tx) error
}

// migrations run in order after the base schema. Each entry is recorded in
// schema_migrations so restarts skip what has already been applied.
var migrations = []migration{
	{
		version:     1,
		description: "add submitter attribution columns to sites",
		apply: func(tx *sql.Tx) error {
			if _, err := tx.Exec(`ALTER TABLE sites ADD COLUMN author_name TEXT`); err != nil {
				return err
			}
			if _, err := tx.Exec(`ALTER TABLE sites ADD COLUMN author_email TEXT`); err != nil {
				return err
			}
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_sites_created_by ON sites(created_by)`)
			return err
		},
	},
}

func (s *DatabaseService) runMigrations() error {
	for _, m := range migrations {
		var applied int
		err := s.DB.QueryRow(`SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, m.version).Scan(&applied)
		if err != nil {
			return fmt.Errorf("checking migration %d: %w", m.version, err)
		}
		if applied > 0 {
			continue
		}

		s.logger.Info("applying migration", "version", m.version, "description", m.description)
		tx, err := s.DB.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", m.version, err)
		}
		if err := m.apply(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
			m.version, utils.GetSQLTime()); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", m.version, err)
		}
	}
	return nil
}
