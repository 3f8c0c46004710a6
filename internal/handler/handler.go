// Package handler contains the HTTP handlers for all four surfaces. Handlers
// validate input, call the policy layer and the scoped accessor, and shape
// JSON; status-code translation lives in the error handler.
package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/apperr"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/middleware"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/scope"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/session"
	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/config"
)

// Handler bundles the dependencies shared by all routes.
type Handler struct {
	db       *gorm.DB
	sessions *session.Service
	cfg      *config.Config
}

// New creates the handler set.
func New(db *gorm.DB, sessions *session.Service, cfg *config.Config) *Handler {
	return &Handler{db: db, sessions: sessions, cfg: cfg}
}

// mustAuth returns the resolved AuthContext or an Unauthenticated error.
// Gates normally run first; this is the in-handler backstop.
func mustAuth(c echo.Context) (*session.AuthContext, error) {
	auth := middleware.AuthFromEcho(c)
	if auth == nil {
		return nil, apperr.Unauthenticated()
	}
	return auth, nil
}

// tenantScope returns a data accessor bound to the caller's active tenant.
// The tenant id always comes from the session, never from the request.
func (h *Handler) tenantScope(auth *session.AuthContext) *scope.Handle {
	return scope.For(h.db, auth.TenantID)
}

// pathID parses a numeric id path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation(map[string]string{name: "must be a positive integer"})
	}
	return uint(id), nil
}
