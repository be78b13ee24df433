// Package server exposes the JSON-over-HTTP API: bearer-token auth, CRUD for
// users/roles/settings and read-only analytics, all backed by an injected
// store. Route handlers translate store results and typed failures into the
// {success, ...} response envelope.
package server

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/omargad/userhub/internal/auth"
	"github.com/omargad/userhub/internal/config"
	"github.com/omargad/userhub/internal/logger"
	"github.com/omargad/userhub/internal/store"
)

type App struct {
	secret   []byte
	tokenTTL time.Duration
	store    *store.Store
}

func NewApp(cfg *config.Config, st *store.Store) (*App, error) {
	secretText := cfg.JWTSecret
	if secretText == "" {
		// Generate ephemeral secret if not configured.
		s, err := auth.NewRandomSecretB64(32)
		if err != nil {
			return nil, err
		}
		secretText = s
		logger.Warn("USERHUB_JWT_SECRET not set; issued tokens will not survive a restart")
	}
	secretRaw, err := base64.RawURLEncoding.DecodeString(secretText)
	if err != nil {
		// Fallback: accept raw string.
		secretRaw = []byte(secretText)
	}
	if len(secretRaw) < 16 {
		// Avoid trivially weak secrets.
		pad := make([]byte, 16)
		copy(pad, secretRaw)
		secretRaw = pad
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = auth.DefaultTokenTTL
	}

	return &App{secret: secretRaw, tokenTTL: ttl, store: st}, nil
}

func (a *App) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(logRequests)
	r.Use(allowCORS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("{\"ok\":true}\n"))
		})

		r.Post("/auth/login", a.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(a.requireAuth)

			r.Post("/auth/logout", a.handleLogout)
			r.Get("/auth/me", a.handleMe)
			r.Get("/auth/verify", a.handleVerify)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", a.handleListUsers)
				r.Post("/", a.handleCreateUser)
				r.Post("/bulk-delete", a.handleBulkDeleteUsers)
				r.Get("/{id}", a.handleGetUser)
				r.Put("/{id}", a.handleUpdateUser)
				r.Delete("/{id}", a.handleDeleteUser)
			})

			r.Route("/roles", func(r chi.Router) {
				r.Get("/", a.handleListRoles)
				r.Post("/", a.handleCreateRole)
				r.Get("/{id}", a.handleGetRole)
				r.Put("/{id}", a.handleUpdateRole)
				r.Delete("/{id}", a.handleDeleteRole)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", a.handleListSettings)
				r.Post("/bulk", a.handleBulkSetSettings)
				r.Get("/{key}", a.handleGetSetting)
				r.Put("/{key}", a.handleSetSetting)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/stats", a.handleStats)
				r.Get("/growth", a.handleGrowth)
				r.Get("/monthly-trends", a.handleMonthlyTrends)
				r.Get("/roles-distribution", a.handleRolesDistribution)
				r.Get("/status-distribution", a.handleStatusDistribution)
				r.Get("/recent-activity", a.handleRecentActivity)
			})
		})
	})

	return r
}
