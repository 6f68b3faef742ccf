// govdir/handlers/sites.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"govdir/config"
	"govdir/database"
	"govdir/models"
)

type siteRequest struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Category    string `json:"category"`
	AuthorName  string `json:"author_name"`
	AuthorEmail string `json:"author_email"`
}

func (req *siteRequest) input() models.SiteInput {
	return models.SiteInput{
		Title:       strings.TrimSpace(req.Title),
		URL:         strings.TrimSpace(req.URL),
		Description: strings.TrimSpace(req.Description),
		Category:    strings.TrimSpace(req.Category),
	}
}

// validateSiteInput enforces presence and length limits. Returns a
// user-facing message, or "" when the input is fine.
func validateSiteInput(in models.SiteInput) string {
	switch {
	case in.Title == "":
		return "title is required"
	case len(in.Title) > config.MaxTitleLen:
		return fmt.Sprintf("title exceeds %d characters", config.MaxTitleLen)
	case in.URL == "":
		return "url is required"
	case len(in.URL) > config.MaxURLLen:
		return fmt.Sprintf("url exceeds %d characters", config.MaxURLLen)
	case !strings.HasPrefix(in.URL, "http://") && !strings.HasPrefix(in.URL, "https://"):
		return "url must start with http:// or https://"
	case in.Description == "":
		return "description is required"
	case len(in.Description) > config.MaxDescriptionLen:
		return fmt.Sprintf("description exceeds %d characters", config.MaxDescriptionLen)
	case in.Category == "":
		return "category is required"
	}
	return ""
}

func HandleListSites(app App, w http.ResponseWriter, r *http.Request) {
	sites, err := app.DB().LoadSites(database.ScopePublic)
	if err != nil {
		respondStoreError(app, w, err, "listing sites")
		return
	}
	term := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	if term != "" || category != "" {
		sites = models.FilterSites(sites, term, category)
	}
	respondJSON(w, http.StatusOK, map[string]any{"sites": sites})
}

// HandleSiteDetail returns an active listing with its approved reviews
// and their rating breakdown. Non-active sites look like missing ones to
// the public.
func HandleSiteDetail(app App, w http.ResponseWriter, r *http.Request) {
	site, err := app.DB().GetSite(chi.URLParam(r, "siteID"))
	if err != nil {
		respondStoreError(app, w, err, "loading site")
		return
	}
	if site.Status != models.SiteStatusActive {
		respondError(w, http.StatusNotFound, CodeNotFound, "not found")
		return
	}
	comments, err := app.DB().ApprovedComments(site.ID)
	if err != nil {
		respondStoreError(app, w, err, "loading site comments")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"site":     site,
		"comments": comments,
		"stats":    models.ComputeReviewStats(comments),
	})
}

// HandleProposeSite accepts a signed-in visitor's submission. The row is
// queued as pending whatever the caller claims about status.
func HandleProposeSite(app App, w http.ResponseWriter, r *http.Request) {
	var req siteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in := req.input()
	if msg := validateSiteInput(in); msg != "" {
		respondError(w, http.StatusBadRequest, CodeValidation, msg)
		return
	}
	if len(req.AuthorName) > config.MaxAuthorNameLen {
		respondError(w, http.StatusBadRequest, CodeValidation,
			fmt.Sprintf("author name exceeds %d characters", config.MaxAuthorNameLen))
		return
	}

	identity := CurrentIdentity(r)
	var authorName, authorEmail *string
	if v := strings.TrimSpace(req.AuthorName); v != "" {
		authorName = &v
	}
	if v := strings.TrimSpace(req.AuthorEmail); v != "" {
		authorEmail = &v
	}

	site, err := app.DB().ProposeSite(in, &identity.ID, authorName, authorEmail)
	if err != nil {
		respondStoreError(app, w, err, "proposing site")
		return
	}
	app.Logger().Info("site proposed", "site_id", site.ID, "user_id", identity.ID)
	respondJSON(w, http.StatusAccepted, map[string]any{"site": site})
}

func HandleSiteComments(app App, w http.ResponseWriter, r *http.Request) {
	site, err := app.DB().GetSite(chi.URLParam(r, "siteID"))
	if err != nil {
		respondStoreError(app, w, err, "loading site")
		return
	}
	if site.Status != models.SiteStatusActive {
		respondError(w, http.StatusNotFound, CodeNotFound, "not found")
		return
	}
	comments, err := app.DB().ApprovedComments(site.ID)
	if err != nil {
		respondStoreError(app, w, err, "loading site comments")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"comments": comments,
		"stats":    models.ComputeReviewStats(comments),
	})
}

type commentRequest struct {
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	Rating     string `json:"rating"`
}

// HandleAddComment queues a review for moderation. A 202 acknowledges the
// submission; it only becomes visible once approved.
func HandleAddComment(app App, w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	authorName := strings.TrimSpace(req.AuthorName)
	content := strings.TrimSpace(req.Content)
	switch {
	case authorName == "":
		respondError(w, http.StatusBadRequest, CodeValidation, "author name is required")
		return
	case len(authorName) > config.MaxAuthorNameLen:
		respondError(w, http.StatusBadRequest, CodeValidation,
			fmt.Sprintf("author name exceeds %d characters", config.MaxAuthorNameLen))
		return
	case content == "":
		respondError(w, http.StatusBadRequest, CodeValidation, "content is required")
		return
	case len(content) > config.MaxContentLen:
		respondError(w, http.StatusBadRequest, CodeValidation,
			fmt.Sprintf("content exceeds %d characters", config.MaxContentLen))
		return
	}

	identity := CurrentIdentity(r)
	comment, err := app.DB().AddComment(chi.URLParam(r, "siteID"), identity.ID, authorName, content, req.Rating)
	if err != nil {
		respondStoreError(app, w, err, "adding comment")
		return
	}
	app.Logger().Info("comment submitted", "comment_id", comment.ID, "site_id", comment.SiteID)
	respondJSON(w, http.StatusAccepted, map[string]any{"comment": comment})
}

func HandleGlobalComments(app App, w http.ResponseWriter, r *http.Request) {
	comments, err := app.DB().ApprovedComments("")
	if err != nil {
		respondStoreError(app, w, err, "loading comments")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// HandleStats serves the landing-page aggregates.
func HandleStats(app App, w http.ResponseWriter, r *http.Request) {
	sites, err := app.DB().LoadSites(database.ScopePublic)
	if err != nil {
		respondStoreError(app, w, err, "loading sites")
		return
	}
	comments, err := app.DB().ApprovedComments("")
	if err != nil {
		respondStoreError(app, w, err, "loading comments")
		return
	}
	stats := models.ComputeReviewStats(comments)
	respondJSON(w, http.StatusOK, map[string]any{
		"total_sites":      len(sites),
		"total_reviews":    stats.Total,
		"positive_reviews": stats.Positive,
	})
}

// HandleCategories returns the categories currently in use plus the
// fixed suggestion list shown on submission forms.
func HandleCategories(app App, w http.ResponseWriter, r *http.Request) {
	sites, err := app.DB().LoadSites(database.ScopePublic)
	if err != nil {
		respondStoreError(app, w, err, "loading sites")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"categories":  models.DistinctCategories(sites),
		"suggestions": config.Categories,
	})
}
