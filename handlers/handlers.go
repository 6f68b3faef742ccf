// Package handlers implements the HTTP surface of the directory service.
// Handlers receive their dependencies through the App interface so tests
// can swap in a mock application.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"govdir/database"
	"govdir/models"
)

// App is the dependency surface handlers are written against.
type App interface {
	DB() *database.DatabaseService
	Sessions() *models.SessionStore
	Backups() models.BackupStore
	BackupDir() string
	Logger() *slog.Logger
}

// Error codes returned in the JSON error body. Every failure maps to
// exactly one of these.
const (
	CodeFetchFailed  = "fetch_failed"
	CodeValidation   = "validation"
	CodeAuthRequired = "auth_required"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}

// respondStoreError classifies a database error. Anything that is not a
// missing row is reported as a fetch failure without leaking internals.
func respondStoreError(app App, w http.ResponseWriter, err error, context string) {
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, CodeNotFound, "not found")
		return
	}
	app.Logger().Error(context, "error", err)
	respondError(w, http.StatusInternalServerError, CodeFetchFailed, "operation failed")
}

// MakeHandler binds an App to a handler function.
func MakeHandler(app App, fn func(App, http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(app, w, r)
	}
}

// decodeJSON reads a request body into dst. A false return means the
// validation error has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, "invalid JSON body")
		return false
	}
	return true
}
