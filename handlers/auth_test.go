package handlers

import (
	"net/http"
	"testing"
)

func TestRegisterValidation(t *testing.T) {
	_, ts := setupTestApp(t)

	status, body := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":        "not-an-email",
		"display_name": "X",
		"password":     "hunter2hunter2",
	})
	if status != http.StatusBadRequest || errCode(body) != CodeValidation {
		t.Errorf("bad email: status %d code %q", status, errCode(body))
	}

	status, body = doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":        "short@example.org",
		"display_name": "X",
		"password":     "short",
	})
	if status != http.StatusBadRequest || errCode(body) != CodeValidation {
		t.Errorf("short password: status %d code %q", status, errCode(body))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, ts := setupTestApp(t)
	registerUser(t, ts, "dup@example.org", "First")

	status, body := doJSON(t, ts, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":        "dup@example.org",
		"display_name": "Second",
		"password":     "hunter2hunter2",
	})
	if status != http.StatusConflict {
		t.Errorf("duplicate email: status %d: %v", status, body)
	}
}

func TestLoginAndMe(t *testing.T) {
	_, ts := setupTestApp(t)
	registerUser(t, ts, "citizen@example.org", "Citizen")

	status, body := doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "citizen@example.org",
		"password": "wrong-password",
	})
	if status != http.StatusUnauthorized || errCode(body) != CodeAuthRequired {
		t.Errorf("wrong password: status %d code %q", status, errCode(body))
	}

	status, body = doJSON(t, ts, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "CITIZEN@example.org",
		"password": "hunter2hunter2",
	})
	if status != http.StatusOK {
		t.Fatalf("login status = %d: %v", status, body)
	}
	token := body["token"].(string)

	status, body = doJSON(t, ts, http.MethodGet, "/api/auth/me", token, nil)
	if status != http.StatusOK {
		t.Fatalf("me status = %d", status)
	}
	identity := body["identity"].(map[string]any)
	if identity["email"] != "citizen@example.org" || identity["role"] != "user" {
		t.Errorf("identity = %v", identity)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	_, ts := setupTestApp(t)
	token := registerUser(t, ts, "citizen@example.org", "Citizen")

	status, _ := doJSON(t, ts, http.MethodPost, "/api/auth/logout", token, nil)
	if status != http.StatusOK {
		t.Fatalf("logout status = %d", status)
	}
	status, body := doJSON(t, ts, http.MethodGet, "/api/auth/me", token, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("me after logout: status %d: %v", status, body)
	}
}
