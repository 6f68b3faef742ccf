// govdir/handlers/moderation.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"govdir/config"
	"govdir/database"
	"govdir/models"
)

// adminSnapshot is the full moderation view. Every admin mutation
// responds with a freshly reloaded snapshot instead of echoing the
// change, so the client never holds partially updated state.
type adminSnapshot struct {
	Sites            []models.Site      `json:"sites"`
	PendingSites     []models.Site      `json:"pending_sites"`
	PendingComments  []models.Comment   `json:"pending_comments"`
	ApprovedComments []models.Comment   `json:"approved_comments"`
	RecentActions    []models.ModAction `json:"recent_actions"`
}

// recentActionLimit bounds the audit trail included in the snapshot.
const recentActionLimit = 50

func loadSnapshot(app App) (*adminSnapshot, error) {
	sites, err := app.DB().LoadSites(database.ScopeAll)
	if err != nil {
		return nil, err
	}
	pendingSites, err := app.DB().PendingSites()
	if err != nil {
		return nil, err
	}
	pendingComments, err := app.DB().PendingComments()
	if err != nil {
		return nil, err
	}
	approvedComments, err := app.DB().ApprovedComments("")
	if err != nil {
		return nil, err
	}
	actions, err := app.DB().RecentModActions(recentActionLimit)
	if err != nil {
		return nil, err
	}
	return &adminSnapshot{
		Sites:            sites,
		PendingSites:     pendingSites,
		PendingComments:  pendingComments,
		ApprovedComments: approvedComments,
		RecentActions:    actions,
	}, nil
}

func respondSnapshot(app App, w http.ResponseWriter, status int) {
	snapshot, err := loadSnapshot(app)
	if err != nil {
		respondStoreError(app, w, err, "loading admin snapshot")
		return
	}
	respondJSON(w, status, snapshot)
}

func HandleAdminOverview(app App, w http.ResponseWriter, r *http.Request) {
	respondSnapshot(app, w, http.StatusOK)
}

// HandleAdminAddSite inserts a listing that goes live immediately, the
// direct-add path for moderators.
func HandleAdminAddSite(app App, w http.ResponseWriter, r *http.Request) {
	var req siteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := req.input()
	if msg := validateSiteInput(in); msg != "" {
		respondError(w, http.StatusBadRequest, CodeValidation, msg)
		return
	}

	identity := CurrentIdentity(r)
	site, err := app.DB().AddSite(in, identity.ID)
	if err != nil {
		respondStoreError(app, w, err, "adding site")
		return
	}
	app.Logger().Info("site added", "site_id", site.ID, "moderator_id", identity.ID)
	respondSnapshot(app, w, http.StatusCreated)
}

func HandleAdminEditSite(app App, w http.ResponseWriter, r *http.Request) {
	var req siteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := req.input()
	if msg := validateSiteInput(in); msg != "" {
		respondError(w, http.StatusBadRequest, CodeValidation, msg)
		return
	}

	identity := CurrentIdentity(r)
	if err := app.DB().EditSite(chi.URLParam(r, "siteID"), in, identity.ID); err != nil {
		respondStoreError(app, w, err, "editing site")
		return
	}
	respondSnapshot(app, w, http.StatusOK)
}

type statusRequest struct {
	Status string `json:"status"`
}

func HandleAdminSiteStatus(app App, w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !models.ValidToggleStatus(req.Status) {
		respondError(w, http.StatusBadRequest, CodeValidation, "status must be active or inactive")
		return
	}

	identity := CurrentIdentity(r)
	if err := app.DB().SetSiteStatus(chi.URLParam(r, "siteID"), req.Status, identity.ID); err != nil {
		respondStoreError(app, w, err, "setting site status")
		return
	}
	respondSnapshot(app, w, http.StatusOK)
}

func HandleAdminApproveSite(app App, w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	siteID := chi.URLParam(r, "siteID")
	if err := app.DB().ApproveSite(siteID, identity.ID); err != nil {
		respondStoreError(app, w, err, "approving site")
		return
	}
	app.Logger().Info("site approved", "site_id", siteID, "moderator_id", identity.ID)
	respondSnapshot(app, w, http.StatusOK)
}

func HandleAdminRejectSite(app App, w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	siteID := chi.URLParam(r, "siteID")
	if err := app.DB().RejectSite(siteID, identity.ID); err != nil {
		respondStoreError(app, w, err, "rejecting site")
		return
	}
	app.Logger().Info("site rejected", "site_id", siteID, "moderator_id", identity.ID)
	respondSnapshot(app, w, http.StatusOK)
}

func HandleAdminDeleteSite(app App, w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	if err := app.DB().DeleteSite(chi.URLParam(r, "siteID"), identity.ID); err != nil {
		respondStoreError(app, w, err, "deleting site")
		return
	}
	respondSnapshot(app, w, http.StatusOK)
}

func HandleAdminApproveComment(app App, w http.ResponseWriter, r *http.Request) {
	setCommentStatus(app, w, r, models.CommentStatusApproved)
}

func HandleAdminRejectComment(app App, w http.ResponseWriter, r *http.Request) {
	setCommentStatus(app, w, r, models.CommentStatusRejected)
}

func setCommentStatus(app App, w http.ResponseWriter, r *http.Request, status string) {
	identity := CurrentIdentity(r)
	commentID := chi.URLParam(r, "commentID")
	if err := app.DB().SetCommentStatus(commentID, status, identity.ID); err != nil {
		respondStoreError(app, w, err, "setting comment status")
		return
	}
	app.Logger().Info("comment moderated", "comment_id", commentID, "status", status,
		"moderator_id", identity.ID)
	respondSnapshot(app, w, http.StatusOK)
}

type editCommentRequest struct {
	Content string `json:"content"`
	Rating  string `json:"rating"`
}

// HandleAdminEditComment rewrites a review. An empty content is rejected
// before any store call, so the stored row is untouched.
func HandleAdminEditComment(app App, w http.ResponseWriter, r *http.Request) {
	var req editCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		respondError(w, http.StatusBadRequest, CodeValidation, "content is required")
		return
	}
	if len(content) > config.MaxContentLen {
		respondError(w, http.StatusBadRequest, CodeValidation, "content too long")
		return
	}

	identity := CurrentIdentity(r)
	if err := app.DB().EditComment(chi.URLParam(r, "commentID"), content, req.Rating, identity.ID); err != nil {
		respondStoreError(app, w, err, "editing comment")
		return
	}
	respondSnapshot(app, w, http.StatusOK)
}

func HandleAdminDeleteComment(app App, w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	if err := app.DB().DeleteComment(chi.URLParam(r, "commentID"), identity.ID); err != nil {
		respondStoreError(app, w, err, "deleting comment")
		return
	}
	respondSnapshot(app, w, http.StatusOK)
}

// HandleAdminBackup snapshots the database and hands the file to the
// configured backup store.
func HandleAdminBackup(app App, w http.ResponseWriter, r *http.Request) {
	path, err := app.DB().BackupDatabase(app.BackupDir())
	if err != nil {
		app.Logger().Error("backup failed", "error", err)
		respondError(w, http.StatusInternalServerError, CodeFetchFailed, "backup failed")
		return
	}
	location, err := app.Backups().Store(path)
	if err != nil {
		app.Logger().Error("storing backup failed", "error", err)
		respondError(w, http.StatusInternalServerError, CodeFetchFailed, "backup failed")
		return
	}
	identity := CurrentIdentity(r)
	app.Logger().Info("backup complete", "location", location, "moderator_id", identity.ID)
	respondJSON(w, http.StatusOK, map[string]any{"location": location})
}
