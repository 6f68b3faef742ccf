// govdir/models/models.go
package models

import "time"

// --- Lifecycle States ---

// Site status values. A proposed site always starts pending; only a moderator
// can move it to active or inactive, and a rejected pending site is deleted
// outright rather than flagged.
const (
	SiteStatusPending  = "pending"
	SiteStatusActive   = "active"
	SiteStatusInactive = "inactive"
)

// Comment status values. Approved and rejected are terminal; edit and delete
// are independent of status.
const (
	CommentStatusPending  = "pending"
	CommentStatusApproved = "approved"
	CommentStatusRejected = "rejected"
)

// Comment ratings.
const (
	RatingPositive = "positive"
	RatingNegative = "negative"
	RatingNeutral  = "neutral"
)

// Account roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRating reports whether r is one of the three known ratings.
func ValidRating(r string) bool {
	return r == RatingPositive || r == RatingNegative || r == RatingNeutral
}

// ValidToggleStatus reports whether s is a status a moderator may toggle a
// site to. There is no path back to pending.
func ValidToggleStatus(s string) bool {
	return s == SiteStatusActive || s == SiteStatusInactive
}

// --- Core Data Models ---

// Site is a directory entry for a government website.
type Site struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	CreatedBy   *string   `json:"created_by,omitempty"`
	AuthorName  *string   `json:"author_name,omitempty"`
	AuthorEmail *string   `json:"author_email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SiteInput carries the caller-editable fields of a site. Status is
// deliberately absent: the store decides it.
type SiteInput struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Comment is a user review of a site. AuthorName is a free display string
// chosen at submission time and is independent of the account's own name.
type Comment struct {
	ID         string    `json:"id"`
	SiteID     string    `json:"site_id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	Rating     string    `json:"rating"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// User is a registered account.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Identity is the capability passed into store calls on behalf of a signed-in
// user. It never carries credentials.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Identity derives the capability view of a user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName, Role: u.Role}
}

// IsAdmin reports whether the identity carries the moderator role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// --- Moderation & System Models ---

// ModAction is one row of the moderation audit log.
type ModAction struct {
	ID          int64     `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	ModeratorID string    `json:"moderator_id"`
	Action      string    `json:"action"`
	TargetID    *string   `json:"target_id,omitempty"`
	Details     *string   `json:"details,omitempty"`
}

// ReviewStats are the derived rating counts over a comment set. They are
// recomputed from loaded rows on every request and never persisted.
type ReviewStats struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
	Total    int `json:"total"`
}

// BackupStore places a finished database backup file somewhere durable and
// returns its final location.
type BackupStore interface {
	Store(path string) (string, error)
}
