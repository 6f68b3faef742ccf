// govdir/handlers/auth.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"govdir/config"
	"govdir/database"
	"govdir/models"
)

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func HandleRegister(app App, w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	email := strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		respondError(w, http.StatusBadRequest, CodeValidation, "invalid email address")
		return
	}
	if len(req.Password) < config.MinPasswordLen {
		respondError(w, http.StatusBadRequest, CodeValidation,
			fmt.Sprintf("password must be at least %d characters", config.MinPasswordLen))
		return
	}
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		respondError(w, http.StatusBadRequest, CodeValidation, "display name is required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		app.Logger().Error("hashing password", "error", err)
		respondError(w, http.StatusInternalServerError, CodeFetchFailed, "operation failed")
		return
	}

	user, err := app.DB().CreateUser(email, displayName, string(hash), models.RoleUser)
	if err != nil {
		if errors.Is(err, database.ErrEmailTaken) {
			respondError(w, http.StatusConflict, CodeValidation, "email already registered")
			return
		}
		respondStoreError(app, w, err, "creating user")
		return
	}

	token := app.Sessions().Create(user.ID)
	setSessionCookie(w, token)
	app.Logger().Info("user registered", "user_id", user.ID)
	respondJSON(w, http.StatusCreated, map[string]any{
		"token":    token,
		"identity": user.Identity(),
	})
}

func HandleLogin(app App, w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := app.DB().UserByEmail(req.Email)
	if err != nil {
		// Same response for unknown email and wrong password.
		respondError(w, http.StatusUnauthorized, CodeAuthRequired, "invalid credentials")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondError(w, http.StatusUnauthorized, CodeAuthRequired, "invalid credentials")
		return
	}

	token := app.Sessions().Create(user.ID)
	setSessionCookie(w, token)
	app.Logger().Info("user logged in", "user_id", user.ID)
	respondJSON(w, http.StatusOK, map[string]any{
		"token":    token,
		"identity": user.Identity(),
	})
}

func HandleLogout(app App, w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		app.Sessions().Destroy(token)
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func HandleMe(app App, w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	if identity == nil {
		respondError(w, http.StatusUnauthorized, CodeAuthRequired, "not signed in")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"identity": identity})
}
