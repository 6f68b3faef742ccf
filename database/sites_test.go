package database

import (
	"testing"

	"govdir/models"
)

func TestProposeSiteForcedPending(t *testing.T) {
	svc := setupTestDB(t)

	name := "Jane Citizen"
	email := "jane@example.org"
	site, err := svc.ProposeSite(models.SiteInput{
		Title:       "  State Transport Portal ",
		URL:         "https://transport.example.gov",
		Description: "Vehicle registration and licensing.",
		Category:    "Transportation",
	}, nil, &name, &email)
	if err != nil {
		t.Fatalf("ProposeSite failed: %v", err)
	}
	if site.Status != models.SiteStatusPending {
		t.Errorf("status = %q, want pending", site.Status)
	}
	if site.Title != "State Transport Portal" {
		t.Errorf("title not trimmed: %q", site.Title)
	}
	if site.AuthorName == nil || *site.AuthorName != name {
		t.Error("author name not stored")
	}

	// Pending submissions never show up in the public listing.
	public, err := svc.LoadSites(ScopePublic)
	if err != nil {
		t.Fatalf("LoadSites failed: %v", err)
	}
	for _, s := range public {
		if s.ID == site.ID {
			t.Fatal("pending submission leaked into public listing")
		}
	}

	pending, err := svc.PendingSites()
	if err != nil {
		t.Fatalf("PendingSites failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != site.ID {
		t.Fatalf("pending queue = %d entries, want the new submission", len(pending))
	}
}

func TestAddSiteGoesLiveImmediately(t *testing.T) {
	svc := setupTestDB(t)
	mod := testModerator(t, svc)

	site, err := svc.AddSite(models.SiteInput{
		Title:    "Passport Seva",
		URL:      "https://passportindia.gov.in",
		Category: "General Services",
	}, mod.ID)
	if err != nil {
		t.Fatalf("AddSite failed: %v", err)
	}
	if site.Status != models.SiteStatusActive {
		t.Errorf("status = %q, want active", site.Status)
	}
	if site.CreatedBy == nil || *site.CreatedBy != mod.ID {
		t.Error("created_by not set to the moderator")
	}
	assertModAction(t, svc, "add_site", site.ID)
}

func TestApproveSite(t *testing.T) {
	svc := setupTestDB(t)
	mod := testModerator(t, svc)

	site, err := svc.ProposeSite(models.SiteInput{Title: "Aadhaar", URL: "https://uidai.gov.in"}, nil, nil, nil)
	if err != nil {
		t.Fatalf("ProposeSite failed: %v", err)
	}

	if err := svc.ApproveSite(site.ID, mod.ID); err != nil {
		t.Fatalf("ApproveSite failed: %v", err)
	}
	got, err := svc.GetSite(site.ID)
	if err != nil {
		t.Fatalf("GetSite failed: %v", err)
	}
	if got.Status != models.SiteStatusActive {
		t.Errorf("status = %q, want active", got.Status)
	}

	// Approving twice fails: the row is no longer pending.
	if err := svc.ApproveSite(site.ID, mod.ID); err != ErrNotFound {
		t.Errorf("second approve: expected ErrNotFound, got %v", err)
	}
	assertModAction(t, svc, "approve_site", site.ID)
}

func TestRejectSiteDeletesRow(t *testing.T) {
	svc := setupTestDB(t)
	mod := testModerator(t, svc)

	site, err := svc.ProposeSite(models.SiteInput{Title: "Spam Portal", URL: "https://spam.example"}, nil, nil, nil)
	if err != nil {
		t.Fatalf("ProposeSite failed: %v", err)
	}

	if err := svc.RejectSite(site.ID, mod.ID); err != nil {
		t.Fatalf("RejectSite failed: %v", err)
	}
	if _, err := svc.GetSite(site.ID); err != ErrNotFound {
		t.Errorf("rejected site still exists: %v", err)
	}

	// Rejecting a non-pending site is refused.
	active, err := svc.LoadSites(ScopePublic)
	if err != nil {
		t.Fatalf("LoadSites failed: %v", err)
	}
	if err := svc.RejectSite(active[0].ID, mod.ID); err != ErrNotFound {
		t.Errorf("rejecting active site: expected ErrNotFound, got %v", err)
	}
}

func TestSetSiteStatusToggle(t *testing.T) {
	svc := setupTestDB(t)
	mod := testModerator(t, svc)

	sites, err := svc.LoadSites(ScopePublic)
	if err != nil {
		t.Fatalf("LoadSites failed: %v", err)
	}
	target := sites[0]

	if err := svc.SetSiteStatus(target.ID, models.SiteStatusInactive, mod.ID); err != nil {
		t.Fatalf("SetSiteStatus failed: %v", err)
	}
	got, _ := svc.GetSite(target.ID)
	if got.Status != models.SiteStatusInactive {
		t.Errorf("status = %q, want inactive", got.Status)
	}

	// Inactive sites drop out of the public view but stay in the admin view.
	public, _ := svc.LoadSites(ScopePublic)
	for _, s := range public {
		if s.ID == target.ID {
			t.Fatal("inactive site still listed publicly")
		}
	}
	all, _ := svc.LoadSites(ScopeAll)
	found := false
	for _, s := range all {
		if s.ID == target.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("inactive site missing from admin view")
	}

	// Arbitrary statuses are refused.
	if err := svc.SetSiteStatus(target.ID, "banana", mod.ID); err == nil {
		t.Error("expected error for invalid status")
	}

	// Pending submissions cannot be toggled directly.
	prop, _ := svc.ProposeSite(models.SiteInput{Title: "P", URL: "https://p.example"}, nil, nil, nil)
	if err := svc.SetSiteStatus(prop.ID, models.SiteStatusActive, mod.ID); err != ErrNotFound {
		t.Errorf("toggling pending site: expected ErrNotFound, got %v", err)
	}
}

func TestEditSite(t *testing.T) {
	svc := setupTestDB(t)
	mod := testModerator(t, svc)

	sites, _ := svc.LoadSites(ScopePublic)
	target := sites[0]

	err := svc.EditSite(target.ID, models.SiteInput{
		Title:       "Renamed Portal",
		URL:         target.URL,
		Description: "Updated description.",
		Category:    target.Category,
	}, mod.ID)
	if err != nil {
		t.Fatalf("EditSite failed: %v", err)
	}
	got, _ := svc.GetSite(target.ID)
	if got.Title != "Renamed Portal" || got.Description != "Updated description." {
		t.Errorf("edit not applied: %+v", got)
	}
	if got.Status != target.Status {
		t.Error("edit changed the status")
	}

	if err := svc.EditSite("missing-id", models.SiteInput{Title: "X", URL: "https://x"}, mod.ID); err != ErrNotFound {
		t.Errorf("editing missing site: expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSiteRemovesComments(t *testing.T) {
	svc := setupTestDB(t)
	mod := testModerator(t, svc)
	user, err := svc.CreateUser("reviewer@example.org", "Reviewer", "h", models.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	sites, _ := svc.LoadSites(ScopePublic)
	target := sites[0]
	c, err := svc.AddComment(target.ID, user.ID, "Reviewer", "Useful site.", models.RatingPositive)
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	if err := svc.DeleteSite(target.ID, mod.ID); err != nil {
		t.Fatalf("DeleteSite failed: %v", err)
	}
	if _, err := svc.GetSite(target.ID); err != ErrNotFound {
		t.Error("deleted site still exists")
	}
	if _, err := svc.GetComment(c.ID); err != ErrNotFound {
		t.Error("comments of deleted site were not removed")
	}
}

func assertModAction(t *testing.T, svc *DatabaseService, action, targetID string) {
	t.Helper()
	var n int
	err := svc.DB.QueryRow(`SELECT COUNT(*) FROM mod_actions WHERE action = ? AND target_id = ?`,
		action, targetID).Scan(&n)
	if err != nil {
		t.Fatalf("querying mod_actions: %v", err)
	}
	if n == 0 {
		t.Errorf("no %q audit row for %s", action, targetID)
	}
}
