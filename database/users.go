// govdir/database/users.go
package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"govdir/models"
	"govdir/utils"
)

const userColumns = `id, email, display_name, password_hash, role, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser registers an account. Emails are stored lowercased so logins
// are case-insensitive.
func (s *DatabaseService) CreateUser(email, displayName, passwordHash, role string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var taken int
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&taken); err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if taken > 0 {
		return nil, ErrEmailTaken
	}

	id := uuid.New().String()
	_, err := s.DB.Exec(
		`INSERT INTO users (id, email, display_name, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, email, strings.TrimSpace(displayName), passwordHash, role, utils.GetSQLTime(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return s.UserByID(id)
}

func (s *DatabaseService) UserByEmail(email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(s.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user by email: %w", err)
	}
	return u, nil
}

func (s *DatabaseService) UserByID(id string) (*models.User, error) {
	u, err := scanUser(s.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %s: %w", id, err)
	}
	return u, nil
}

// EnsureAdmin creates the configured admin account on first start. If the
// email already exists the account is promoted but the password is left
// alone.
func (s *DatabaseService) EnsureAdmin(email, displayName, passwordHash string) (*models.User, error) {
	existing, err := s.UserByEmail(email)
	if err == nil {
		if existing.Role != models.RoleAdmin {
			if _, err := s.DB.Exec(`UPDATE users SET role = ? WHERE id = ?`, models.RoleAdmin, existing.ID); err != nil {
				return nil, fmt.Errorf("promoting admin: %w", err)
			}
			existing.Role = models.RoleAdmin
		}
		return existing, nil
	}
	if err != ErrNotFound {
		return nil, err
	}
	return s.CreateUser(email, displayName, passwordHash, models.RoleAdmin)
}
