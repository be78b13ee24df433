package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/omargad/userhub/internal/store"
)

// roleResponse decorates a role with how many users currently carry it.
type roleResponse struct {
	store.Role
	UsersCount int `json:"usersCount"`
}

func (a *App) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles := a.store.Roles()
	out := make([]roleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, roleResponse{Role: role, UsersCount: a.store.CountUsersByRole(role.Name)})
	}
	writeSuccess(w, http.StatusOK, map[string]any{"roles": out})
}

func (a *App) handleGetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	role, err := a.store.RoleByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Role not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"role": roleResponse{Role: role, UsersCount: a.store.CountUsersByRole(role.Name)},
	})
}

type roleRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Permissions []string `json:"permissions"`
	Color       string   `json:"color"`
}

func (a *App) handleCreateRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Role name is required")
		return
	}
	if len(req.Permissions) == 0 {
		req.Permissions = []string{"read"}
	}
	if req.Color == "" {
		req.Color = "#64748B"
	}
	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	role, err := a.store.CreateRole(store.Role{
		Name:        req.Name,
		Description: description,
		Permissions: req.Permissions,
		Color:       req.Color,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrRoleExists) {
			writeError(w, http.StatusBadRequest, "Role already exists")
			return
		}
		serverError(w, "creating role", err)
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{
		"role":    role,
		"message": "Role created successfully",
	})
}

func (a *App) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req roleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Renames cascade to users inside the store.
	role, err := a.store.UpdateRole(id, store.RoleUpdate{
		Name:        optional(req.Name),
		Description: req.Description,
		Permissions: req.Permissions,
		Color:       optional(req.Color),
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRoleNotFound):
			writeError(w, http.StatusNotFound, "Role not found")
		case errors.Is(err, store.ErrRoleExists):
			writeError(w, http.StatusBadRequest, "Role name already exists")
		default:
			serverError(w, "updating role", err)
		}
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"role":    role,
		"message": "Role updated successfully",
	})
}

func (a *App) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	role, err := a.store.RoleByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Role not found")
		return
	}
	if err := a.store.DeleteRole(id); err != nil {
		if errors.Is(err, store.ErrRoleInUse) {
			count := a.store.CountUsersByRole(role.Name)
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Cannot delete role with %d assigned users", count))
			return
		}
		serverError(w, "deleting role", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"message": "Role deleted successfully"})
}
