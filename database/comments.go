// govdir/database/comments.go
package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"govdir/models"
	"govdir/utils"
)

const commentColumns = `id, site_id, user_id, author_name, content, rating, status, created_at, updated_at`

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.SiteID, &c.UserID, &c.AuthorName, &c.Content, &c.Rating,
		&c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *DatabaseService) queryComments(query string, args ...any) ([]models.Comment, error) {
	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}

// ApprovedComments returns the public review feed, newest first. An empty
// siteID means all sites.
func (s *DatabaseService) ApprovedComments(siteID string) ([]models.Comment, error) {
	if siteID == "" {
		return s.queryComments(`SELECT `+commentColumns+` FROM comments WHERE status = ? ORDER BY created_at DESC`,
			models.CommentStatusApproved)
	}
	return s.queryComments(`SELECT `+commentColumns+` FROM comments WHERE site_id = ? AND status = ? ORDER BY created_at DESC`,
		siteID, models.CommentStatusApproved)
}

// PendingComments returns the review queue, oldest first.
func (s *DatabaseService) PendingComments() ([]models.Comment, error) {
	return s.queryComments(`SELECT `+commentColumns+` FROM comments WHERE status = ? ORDER BY created_at ASC`,
		models.CommentStatusPending)
}

func (s *DatabaseService) GetComment(id string) (*models.Comment, error) {
	c, err := scanComment(s.DB.QueryRow(`SELECT `+commentColumns+` FROM comments WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading comment %s: %w", id, err)
	}
	return c, nil
}

// AddComment inserts a review awaiting moderation. The target site must
// exist; the status is always pending no matter what the caller sent.
func (s *DatabaseService) AddComment(siteID, userID, authorName, content, rating string) (*models.Comment, error) {
	var exists int
	if err := s.DB.QueryRow(`SELECT COUNT(*) FROM sites WHERE id = ?`, siteID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking site %s: %w", siteID, err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	if !models.ValidRating(rating) {
		rating = models.RatingNeutral
	}

	id := uuid.New().String()
	now := utils.GetSQLTime()
	_, err := s.DB.Exec(
		`INSERT INTO comments (id, site_id, user_id, author_name, content, rating, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, siteID, userID, strings.TrimSpace(authorName), strings.TrimSpace(content),
		rating, models.CommentStatusPending, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}
	return s.GetComment(id)
}

// SetCommentStatus moves a review to approved or rejected. Rejected
// comments keep their row so a moderator can revisit the decision.
func (s *DatabaseService) SetCommentStatus(id, status, moderatorID string) error {
	if status != models.CommentStatusApproved && status != models.CommentStatusRejected {
		return fmt.Errorf("invalid comment status %q", status)
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer s.rollback(tx)

	res, err := tx.Exec(`UPDATE comments SET status = ?, updated_at = ? WHERE id = ?`,
		status, utils.GetSQLTime(), id)
	if err != nil {
		return fmt.Errorf("updating comment status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if err := s.LogModAction(tx, moderatorID, "set_comment_status", id, status); err != nil {
		return err
	}
	return tx.Commit()
}

// EditComment rewrites a review's text and optionally its rating. An
// empty or unknown rating keeps the stored one. Status is untouched.
func (s *DatabaseService) EditComment(id, content, rating, moderatorID string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer s.rollback(tx)

	var res sql.Result
	if models.ValidRating(rating) {
		res, err = tx.Exec(`UPDATE comments SET content = ?, rating = ?, updated_at = ? WHERE id = ?`,
			strings.TrimSpace(content), rating, utils.GetSQLTime(), id)
	} else {
		res, err = tx.Exec(`UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`,
			strings.TrimSpace(content), utils.GetSQLTime(), id)
	}
	if err != nil {
		return fmt.Errorf("editing comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if err := s.LogModAction(tx, moderatorID, "edit_comment", id, ""); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *DatabaseService) DeleteComment(id, moderatorID string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer s.rollback(tx)

	res, err := tx.Exec(`DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	if err := s.LogModAction(tx, moderatorID, "delete_comment", id, ""); err != nil {
		return err
	}
	return tx.Commit()
}
