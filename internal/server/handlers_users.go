package server

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/omargad/userhub/internal/auth"
	"github.com/omargad/userhub/internal/store"
)

var avatarColors = []string{"#3B82F6", "#8B5CF6", "#22C55E", "#F59E0B", "#EF4444", "#EC4899", "#06B6D4"}

func (a *App) handleListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := queryInt(q.Get("page"), 1)
	limit := queryInt(q.Get("limit"), 10)
	search := strings.ToLower(q.Get("search"))
	role := q.Get("role")
	status := q.Get("status")

	all := a.store.Users()
	filtered := all[:0:0]
	for _, u := range all {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.FirstName), search) &&
			!strings.Contains(strings.ToLower(u.LastName), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		if role != "" && u.Role != role {
			continue
		}
		if status != "" && u.Status != status {
			continue
		}
		filtered = append(filtered, u)
	}

	total := len(filtered)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	users := make([]store.User, 0, end-start)
	for _, u := range filtered[start:end] {
		users = append(users, u.Sanitized())
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"users": users,
		"pagination": map[string]any{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}

func (a *App) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := a.store.UserByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"user": user.Sanitized()})
}

type userRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

func (a *App) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "First name, last name, and email are required")
		return
	}

	var digest string
	if req.Password != "" {
		var err error
		digest, err = auth.HashPassword(req.Password)
		if err != nil {
			serverError(w, "hashing password", err)
			return
		}
	}
	if req.Role == "" {
		req.Role = "User"
	}
	if req.Status == "" {
		req.Status = store.StatusPending
	}

	user, err := a.store.CreateUser(store.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  digest,
		Role:      req.Role,
		Status:    req.Status,
		Joined:    time.Now().Format("2006-01-02"),
		Avatar:    avatarColors[rand.Intn(len(avatarColors))],
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			writeError(w, http.StatusBadRequest, "Email already exists")
			return
		}
		serverError(w, "creating user", err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"user":    user.Sanitized(),
		"message": "User created successfully",
	})
}

func (a *App) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upd := store.UserUpdate{
		FirstName: optional(req.FirstName),
		LastName:  optional(req.LastName),
		Email:     optional(req.Email),
		Role:      optional(req.Role),
		Status:    optional(req.Status),
	}
	if req.Password != "" {
		digest, err := auth.HashPassword(req.Password)
		if err != nil {
			serverError(w, "hashing password", err)
			return
		}
		upd.Password = &digest
	}

	user, err := a.store.UpdateUser(id, upd)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, store.ErrEmailExists):
			writeError(w, http.StatusBadRequest, "Email already exists")
		default:
			serverError(w, "updating user", err)
		}
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"user":    user.Sanitized(),
		"message": "User updated successfully",
	})
}

func (a *App) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, err := a.store.UserByID(id); err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if id == claimsFrom(r).UserID {
		writeError(w, http.StatusBadRequest, "Cannot delete your own account")
		return
	}
	if err := a.store.DeleteUser(id); err != nil {
		serverError(w, "deleting user", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"message": "User deleted successfully"})
}

func (a *App) handleBulkDeleteUsers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []int `json:"ids"`
	}
	if err := decodeJSON(r, &req); err != nil || len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "No user IDs provided")
		return
	}

	// The caller's own account is silently skipped even when listed.
	self := claimsFrom(r).UserID
	deleted := 0
	for _, id := range req.IDs {
		if id == self {
			continue
		}
		if err := a.store.DeleteUser(id); err == nil {
			deleted++
		} else if !errors.Is(err, store.ErrUserNotFound) {
			serverError(w, "bulk deleting users", err)
			return
		}
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"deletedCount": deleted,
		"message":      fmt.Sprintf("%d users deleted", deleted),
	})
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}

func queryInt(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
