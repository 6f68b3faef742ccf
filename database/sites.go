// govdir/database/sites.go
package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"govdir/models"
	"govdir/utils"
)

// SiteScope selects which listings a caller may see.
type SiteScope int

const (
	// ScopePublic is the visitor view: active sites only.
	ScopePublic SiteScope = iota
	// ScopeAll is the moderator view: every site regardless of status.
	ScopeAll
)

const siteColumns = `id, title, url, description, category, status, created_by, author_name, author_email, created_at, updated_at`

func scanSite(row interface{ Scan(...any) error }) (*models.Site, error) {
	var s models.Site
	err := row.Scan(&s.ID, &s.Title, &s.URL, &s.Description, &s.Category, &s.Status,
		&s.CreatedBy, &s.AuthorName, &s.AuthorEmail, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *DatabaseService) querySites(query string, args ...any) ([]models.Site, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sites: %w", err)
	}
	defer rows.Close()

	sites := []models.Site{}
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning site: %w", err)
		}
		sites = append(sites, *site)
	}
	return sites, rows.Err()
}

// LoadSites returns sites newest first. ScopePublic hides everything that
// is not active.
func (s *DatabaseService) LoadSites(scope SiteScope) ([]models.Site, error) {
	if scope == ScopePublic {
		return s.querySites(`SELECT `+siteColumns+` FROM sites WHERE status = ? ORDER BY created_at DESC`,
			models.SiteStatusActive)
	}
	return s.querySites(`SELECT ` + siteColumns + ` FROM sites ORDER BY created_at DESC`)
}

// PendingSites returns submissions awaiting review, oldest first so the
// queue drains in arrival order.
func (s *DatabaseService) PendingSites() ([]models.Site, error) {
	return s.querySites(`SELECT `+siteColumns+` FROM sites WHERE status = ? ORDER BY created_at ASC`,
		models.SiteStatusPending)
}

func (s *DatabaseService) GetSite(id string) (*models.Site, error) {
	site, err := scanSite(s.DB.QueryRow(`SELECT `+siteColumns+` FROM sites WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading site %s: %w", id, err)
	}
	return site, nil
}

// ProposeSite inserts a visitor submission. The status is always pending
// regardless of what the caller sent; only moderators change it later.
func (s *DatabaseService) ProposeSite(in models.SiteInput, createdBy, authorName, authorEmail *string) (*models.Site, error) {
	id := uuid.New().String()
	now := utils.GetSQLTime()
	_, err := s.DB.Exec(
		`INSERT INTO sites (id, title, url, description, category, status, created_by, author_name, author_email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, strings.TrimSpace(in.Title), strings.TrimSpace(in.URL), strings.TrimSpace(in.Description),
		in.Category, models.SiteStatusPending, createdBy, authorName, authorEmail, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting site submission: %w", err)
	}
	return s.GetSite(id)
}

// AddSite is the moderator direct-add path. The site goes live immediately.
func (s *DatabaseService) AddSite(in models.SiteInput, moderatorID string) (*models.Site, error) {
	id := uuid.New().String()
	now := utils.GetSQLTime()

	tx, err := s.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer s.rollback(tx)

	_, err = tx.Exec(
		`INSERT INTO sites (id, title, url, description, category, status, created_by, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, strings.TrimSpace(in.Title), strings.TrimSpace(in.URL), strings.TrimSpace(in.Description),
		in.Category, models.SiteStatusActive, moderatorID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting site: %w", err)
	}
	if err := s.LogModAction(tx, moderatorID, "add_site", id, in.Title); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.GetSite(id)
}

// SetSiteStatus toggles a listing between active and inactive. Pending
// submissions go through ApproveSite or RejectSite instead.
func (s *DatabaseService) SetSiteStatus(id, status, moderatorID string) error {
	if !models.ValidToggleStatus(status) {
		return fmt.Errorf("invalid site status %q", status)
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer s.rollback(tx)

	res, err := tx.Exec(`UPDATE sites SET status = ?, updated_at = ? WHERE id = ? AND status != ?`,
		status, utils.GetSQLTime(), id, models.SiteStatusPending)
	if err != nil {
		return fmt.Errorf("updating site status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if err := s.LogModAction(tx, moderatorID, "set_site_status", id, status); err != nil {
		return err
	}
	return tx.Commit()
}

// ApproveSite publishes a pending submission.
func (s *DatabaseService) ApproveSite(id, moderatorID string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer s.rollback(tx)

	res, err := tx.Exec(`UPDATE sites SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		models.SiteStatusActive, utils.GetSQLTime(), id, models.SiteStatusPending)
	if err != nil {
		return fmt.Errorf("approving site: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if err := s.LogModAction(tx, moderatorID, "approve_site", id, ""); err != nil {
		return err
	}
	return tx.Commit()
}

// RejectSite removes a pending submission entirely. Rejection is not a
// status: the row and any comments on it are deleted.
func (s *DatabaseService) RejectSite(id, moderatorID string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer s.rollback(tx)

	res, err := tx.Exec(`DELETE FROM sites WHERE id = ? AND status = ?`, id, models.SiteStatusPending)
	if err != nil {
		return fmt.Errorf("rejecting site: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec(`DELETE FROM comments WHERE site_id = ?`, id); err != nil {
		return fmt.Errorf("removing comments of rejected site: %w", err)
	}
	if err := s.LogModAction(tx, moderatorID, "reject_site", id, ""); err != nil {
		return err
	}
	return tx.Commit()
}

// EditSite overwrites a listing's editable fields. Status is untouched.
func (s *DatabaseService) EditSite(id string, in models.SiteInput, moderatorID string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer s.rollback(tx)

	res, err := tx.Exec(
		`UPDATE sites SET title = ?, url = ?, description = ?, category = ?, updated_at = ? WHERE id = ?`,
		strings.TrimSpace(in.Title), strings.TrimSpace(in.URL), strings.TrimSpace(in.Description),
		in.Category, utils.GetSQLTime(), id,
	)
	if err != nil {
		return fmt.Errorf("editing site: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if err := s.LogModAction(tx, moderatorID, "edit_site", id, in.Title); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteSite removes a listing of any status along with its comments.
func (s *DatabaseService) DeleteSite(id, moderatorID string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer s.rollback(tx)

	res, err := tx.Exec(`DELETE FROM sites WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting site: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if _, err := tx.Exec(`DELETE FROM comments WHERE site_id = ?`, id); err != nil {
		return fmt.Errorf("removing comments of deleted site: %w", err)
	}
	if err := s.LogModAction(tx, moderatorID, "delete_site", id, ""); err != nil {
		return err
	}
	return tx.Commit()
}
