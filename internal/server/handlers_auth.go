package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/omargad/userhub/internal/auth"
	"github.com/omargad/userhub/internal/store"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	// One message for unknown email, missing credential and wrong password.
	user, err := a.store.UserByEmail(req.Email)
	if err != nil || auth.VerifyPassword(req.Password, user.Password) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.SignHS256(a.secret, user.ID, user.Email, user.Role, a.tokenTTL)
	if err != nil {
		serverError(w, "signing token", err)
		return
	}

	// Audit row only; the token's embedded expiry is what the guard checks.
	now := time.Now().UTC()
	if _, err := a.store.CreateSession(store.Session{
		UserID:    user.ID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(a.tokenTTL),
	}); err != nil {
		serverError(w, "recording session", err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  authUser(user),
	})
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		if err := a.store.DeleteSession(token); err != nil && !errors.Is(err, store.ErrSessionNotFound) {
			serverError(w, "deleting session", err)
			return
		}
	}
	writeSuccess(w, http.StatusOK, map[string]any{"message": "Logged out successfully"})
}

func (a *App) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r)
	user, err := a.store.UserByID(claims.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"user": authUser(user)})
}

func (a *App) handleVerify(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]any{"valid": true})
}

// authUser is the trimmed identity payload auth endpoints return.
func authUser(u store.User) map[string]any {
	return map[string]any{
		"id":        u.ID,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"email":     u.Email,
		"role":      u.Role,
		"avatar":    u.Avatar,
	}
}
