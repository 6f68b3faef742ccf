// Package database wraps all SQLite access for the directory service.
// Handlers never touch *sql.DB directly; every read and mutation goes
// through a DatabaseService method so status rules and audit logging
// live in one place.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"govdir/models"
	"govdir/utils"
)

var (
	// ErrNotFound is returned when a lookup matches no row, or when the
	// caller is not allowed to see the row that exists.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned by CreateUser on a duplicate email.
	ErrEmailTaken = errors.New("email already registered")
)

type DatabaseService struct {
	DB     *sql.DB
	logger *slog.Logger
}

func NewDatabaseService(db *sql.DB, logger *slog.Logger) *DatabaseService {
	return &DatabaseService{DB: db, logger: logger}
}

// InitDB opens the SQLite database, applies the schema and pending
// migrations, and seeds the directory if the sites table is empty.
func InitDB(dbPath string, logger *slog.Logger) (*DatabaseService, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	svc := NewDatabaseService(db, logger)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	if err := svc.runMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	if err := svc.seedSites(); err != nil {
		db.Close()
		return nil, err
	}

	return svc, nil
}

// LogModAction records a moderator action inside the caller's transaction
// so the audit row commits or rolls back with the mutation it describes.
func (s *DatabaseService) LogModAction(tx *sql.Tx, moderatorID, action, targetID, details string) error {
	_, err := tx.Exec(
		`INSERT INTO mod_actions (timestamp, moderator_id, action, target_id, details) VALUES (?, ?, ?, ?, ?)`,
		utils.GetSQLTime(), moderatorID, action, targetID, details,
	)
	if err != nil {
		return fmt.Errorf("logging mod action %q: %w", action, err)
	}
	return nil
}

// RecentModActions returns the latest audit log entries, newest first.
func (s *DatabaseService) RecentModActions(limit int) ([]models.ModAction, error) {
	rows, err := s.DB.Query(
		`SELECT id, timestamp, moderator_id, action, target_id, details
		 FROM mod_actions ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying mod actions: %w", err)
	}
	defer rows.Close()

	actions := []models.ModAction{}
	for rows.Next() {
		var a models.ModAction
		if err := rows.Scan(&a.ID, &a.Timestamp, &a.ModeratorID, &a.Action, &a.TargetID, &a.Details); err != nil {
			return nil, fmt.Errorf("scanning mod action: %w", err)
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

// BackupDatabase writes a consistent snapshot with VACUUM INTO and returns
// the path of the backup file.
func (s *DatabaseService) BackupDatabase(backupDir string) (string, error) {
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}
	name := fmt.Sprintf("govdir-%s.db", utils.GetTime().Format("20060102-150405"))
	dest := filepath.Join(backupDir, name)

	if _, err := s.DB.Exec(`VACUUM INTO ?`, dest); err != nil {
		return "", fmt.Errorf("vacuum into %s: %w", dest, err)
	}
	s.logger.Info("database backup written", "path", dest)
	return dest, nil
}

func (s *DatabaseService) Close() error {
	return s.DB.Close()
}

// rollback is the deferred-cleanup helper used by every transactional
// mutation. ErrTxDone just means the commit already happened.
func (s *DatabaseService) rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		s.logger.Error("transaction rollback failed", "error", err)
	}
}
