package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"
)

func TestListSitesPublic(t *testing.T) {
	_, ts := setupTestApp(t)

	status, body := doJSON(t, ts, http.MethodGet, "/api/sites", "", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	sites := body["sites"].([]any)
	if len(sites) == 0 {
		t.Fatal("expected seeded sites")
	}
	for _, raw := range sites {
		site := raw.(map[string]any)
		if site["status"] != "active" {
			t.Errorf("public listing contains %v site %v", site["status"], site["title"])
		}
	}
}

func TestListSitesFilter(t *testing.T) {
	_, ts := setupTestApp(t)

	// The search term matches case-insensitively on title or description.
	status, body := doJSON(t, ts, http.MethodGet, "/api/sites?q=FINANCE", "", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	sites := body["sites"].([]any)
	if len(sites) == 0 {
		t.Fatal("expected a match for FINANCE")
	}

	q := url.Values{"category": {"Energy"}}
	status, body = doJSON(t, ts, http.MethodGet, "/api/sites?"+q.Encode(), "", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	for _, raw := range body["sites"].([]any) {
		site := raw.(map[string]any)
		if site["category"] != "Energy" {
			t.Errorf("category filter leaked %v", site["category"])
		}
	}
}

func TestProposeSiteRequiresAuth(t *testing.T) {
	app, ts := setupTestApp(t)

	status, body := doJSON(t, ts, http.MethodPost, "/api/sites", "", map[string]any{
		"title":       "Anon Portal",
		"url":         "https://anon.example.gov",
		"description": "Should not be accepted.",
		"category":    "General Services",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if errCode(body) != CodeAuthRequired {
		t.Errorf("code = %q, want auth_required", errCode(body))
	}

	// No row was inserted.
	pending, err := app.db.PendingSites()
	if err != nil {
		t.Fatalf("PendingSites failed: %v", err)
	}
	if len(pending) != 0 {
		t.Error("anonymous submission created a row")
	}
}

func TestProposeSitePendingNotPublic(t *testing.T) {
	_, ts := setupTestApp(t)
	token := registerUser(t, ts, "citizen@example.org", "Citizen")

	status, body := doJSON(t, ts, http.MethodPost, "/api/sites", token, map[string]any{
		"title":       "New Grievance Portal",
		"url":         "https://grievance.example.gov",
		"description": "File and track public grievances.",
		"category":    "Citizen Engagement",
		"status":      "active",
	})
	if status != http.StatusAccepted {
		t.Fatalf("status = %d: %v", status, body)
	}
	site := body["site"].(map[string]any)
	if site["status"] != "pending" {
		t.Errorf("status = %v, want pending despite the caller's claim", site["status"])
	}

	// Invisible to the public listing and detail view.
	_, listing := doJSON(t, ts, http.MethodGet, "/api/sites", "", nil)
	for _, raw := range listing["sites"].([]any) {
		if raw.(map[string]any)["id"] == site["id"] {
			t.Fatal("pending submission visible publicly")
		}
	}
	detailStatus, _ := doJSON(t, ts, http.MethodGet, fmt.Sprintf("/api/sites/%v", site["id"]), "", nil)
	if detailStatus != http.StatusNotFound {
		t.Errorf("detail status = %d, want 404", detailStatus)
	}
}

func TestProposeSiteValidation(t *testing.T) {
	_, ts := setupTestApp(t)
	token := registerUser(t, ts, "citizen@example.org", "Citizen")

	status, body := doJSON(t, ts, http.MethodPost, "/api/sites", token, map[string]any{
		"title":       "",
		"url":         "https://x.example.gov",
		"description": "d",
		"category":    "c",
	})
	if status != http.StatusBadRequest || errCode(body) != CodeValidation {
		t.Errorf("empty title: status %d code %q", status, errCode(body))
	}

	status, body = doJSON(t, ts, http.MethodPost, "/api/sites", token, map[string]any{
		"title":       "T",
		"url":         "ftp://files.example.gov",
		"description": "d",
		"category":    "c",
	})
	if status != http.StatusBadRequest || errCode(body) != CodeValidation {
		t.Errorf("bad scheme: status %d code %q", status, errCode(body))
	}
}

func TestAddCommentRequiresAuth(t *testing.T) {
	app, ts := setupTestApp(t)

	_, listing := doJSON(t, ts, http.MethodGet, "/api/sites", "", nil)
	siteID := listing["sites"].([]any)[0].(map[string]any)["id"].(string)

	status, body := doJSON(t, ts, http.MethodPost, "/api/sites/"+siteID+"/comments", "", map[string]any{
		"author_name": "Anon",
		"content":     "Drive-by review.",
		"rating":      "positive",
	})
	if status != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", status)
	}
	if errCode(body) != CodeAuthRequired {
		t.Errorf("code = %q, want auth_required", errCode(body))
	}

	pending, err := app.db.PendingComments()
	if err != nil {
		t.Fatalf("PendingComments failed: %v", err)
	}
	if len(pending) != 0 {
		t.Error("anonymous comment created a row")
	}
}

func TestAddCommentPendingUntilApproved(t *testing.T) {
	_, ts := setupTestApp(t)
	token := registerUser(t, ts, "reviewer@example.org", "Reviewer")

	_, listing := doJSON(t, ts, http.MethodGet, "/api/sites", "", nil)
	siteID := listing["sites"].([]any)[0].(map[string]any)["id"].(string)

	status, body := doJSON(t, ts, http.MethodPost, "/api/sites/"+siteID+"/comments", token, map[string]any{
		"author_name": "Reviewer",
		"content":     "Very responsive service.",
		"rating":      "positive",
	})
	if status != http.StatusAccepted {
		t.Fatalf("status = %d: %v", status, body)
	}
	comment := body["comment"].(map[string]any)
	if comment["status"] != "pending" {
		t.Errorf("status = %v, want pending", comment["status"])
	}

	_, feed := doJSON(t, ts, http.MethodGet, "/api/sites/"+siteID+"/comments", "", nil)
	if len(feed["comments"].([]any)) != 0 {
		t.Error("pending comment visible in public feed")
	}
}

func TestAddCommentValidation(t *testing.T) {
	_, ts := setupTestApp(t)
	token := registerUser(t, ts, "reviewer@example.org", "Reviewer")

	_, listing := doJSON(t, ts, http.MethodGet, "/api/sites", "", nil)
	siteID := listing["sites"].([]any)[0].(map[string]any)["id"].(string)

	status, body := doJSON(t, ts, http.MethodPost, "/api/sites/"+siteID+"/comments", token, map[string]any{
		"author_name": "Reviewer",
		"content":     "   ",
	})
	if status != http.StatusBadRequest || errCode(body) != CodeValidation {
		t.Errorf("blank content: status %d code %q", status, errCode(body))
	}

	status, _ = doJSON(t, ts, http.MethodPost, "/api/sites/does-not-exist/comments", token, map[string]any{
		"author_name": "Reviewer",
		"content":     "text",
	})
	if status != http.StatusNotFound {
		t.Errorf("unknown site: status %d, want 404", status)
	}
}

func TestStatsAndCategories(t *testing.T) {
	_, ts := setupTestApp(t)

	status, body := doJSON(t, ts, http.MethodGet, "/api/stats", "", nil)
	if status != http.StatusOK {
		t.Fatalf("stats status = %d", status)
	}
	if body["total_sites"].(float64) == 0 {
		t.Error("expected seeded site count")
	}
	if body["total_reviews"].(float64) != 0 {
		t.Error("fresh database should have no approved reviews")
	}

	status, body = doJSON(t, ts, http.MethodGet, "/api/categories", "", nil)
	if status != http.StatusOK {
		t.Fatalf("categories status = %d", status)
	}
	cats := body["categories"].([]any)
	if len(cats) == 0 {
		t.Fatal("expected derived categories")
	}
	// Sorted, deduplicated.
	for i := 1; i < len(cats); i++ {
		if cats[i-1].(string) >= cats[i].(string) {
			t.Fatalf("categories not strictly sorted: %v >= %v", cats[i-1], cats[i])
		}
	}
}
