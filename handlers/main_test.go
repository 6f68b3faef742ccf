package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"govdir/database"
	"govdir/models"
	"govdir/utils"
)

// MockApplication satisfies App for handler tests: a real temp-dir
// database behind a throwaway session store and local backups.
type MockApplication struct {
	db        *database.DatabaseService
	sessions  *models.SessionStore
	backupDir string
	logger    *slog.Logger
}

func (m *MockApplication) DB() *database.DatabaseService  { return m.db }
func (m *MockApplication) Sessions() *models.SessionStore { return m.sessions }
func (m *MockApplication) Backups() models.BackupStore    { return utils.LocalBackups{} }
func (m *MockApplication) BackupDir() string              { return m.backupDir }
func (m *MockApplication) Logger() *slog.Logger           { return m.logger }

func setupTestApp(t *testing.T) (*MockApplication, *httptest.Server) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := database.InitDB(filepath.Join(dir, "test.db")+"?_journal_mode=WAL&_foreign_keys=on", logger)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	app := &MockApplication{
		db:        db,
		sessions:  models.NewSessionStore(time.Hour),
		backupDir: filepath.Join(dir, "backups"),
		logger:    logger,
	}
	ts := httptest.NewServer(SetupRouter(app))
	t.Cleanup(ts.Close)
	return app, ts
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, ts *httptest.Server, email, name string) string {
	t.Helper()
	status, body := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":        email,
		"display_name": name,
		"password":     "hunter2hunter2",
	})
	if status != http.StatusCreated {
		t.Fatalf("register returned %d: %v", status, body)
	}
	return body["token"].(string)
}

// loginAdmin seeds an admin account directly and logs in through the API.
func loginAdmin(t *testing.T, app *MockApplication, ts *httptest.Server) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("adminpass123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	if _, err := app.db.EnsureAdmin("admin@example.gov", "Admin", string(hash)); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	status, body := doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "admin@example.gov",
		"password": "adminpass123",
	})
	if status != http.StatusOK {
		t.Fatalf("admin login returned %d: %v", status, body)
	}
	return body["token"].(string)
}

// doJSON performs a request and decodes the JSON response body.
func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshaling payload: %v", err)
		}
		reqBody = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	body := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && err != io.EOF {
		t.Fatalf("decoding response from %s %s: %v", method, path, err)
	}
	return resp.StatusCode, body
}

func errCode(body map[string]any) string {
	code, _ := body["code"].(string)
	return code
}
