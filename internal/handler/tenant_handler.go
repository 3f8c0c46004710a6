package handler

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/apperr"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/authz"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/model"
	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/logger"
	"github.com/randy-gonzalez/faith-interactive-sub006/prometheus"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// ListMyTenants lists the caller's active memberships.
func (h *Handler) ListMyTenants(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	prometheus.RecordTenantOperation("list")

	memberships, err := h.sessions.Memberships(c.Request().Context(), auth.UserID)
	if err != nil {
		return err
	}

	type tenantEntry struct {
		ID        uint   `json:"id"`
		Name      string `json:"name"`
		Slug      string `json:"slug"`
		Status    string `json:"status"`
		Role      string `json:"role"`
		IsDefault bool   `json:"is_default"`
	}
	entries := make([]tenantEntry, 0, len(memberships))
	for _, m := range memberships {
		entries = append(entries, tenantEntry{
			ID:        m.TenantID,
			Name:      m.Tenant.Name,
			Slug:      m.Tenant.Slug,
			Status:    m.Tenant.Status,
			Role:      m.Role,
			IsDefault: m.IsDefault,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"tenants": entries})
}

// SelectTenant sets the session's active tenant. Also used for switching.
func (h *Handler) SelectTenant(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}

	var req struct {
		TenantID uint `json:"tenant_id"`
	}
	if err := c.Bind(&req); err != nil || req.TenantID == 0 {
		return apperr.Validation(map[string]string{"tenant_id": "required"})
	}

	prometheus.RecordTenantOperation("select")
	refreshed, err := h.sessions.SelectTenant(c.Request().Context(), auth.Token, req.TenantID)
	if err != nil {
		prometheus.RecordAuthError("tenant_access_denied")
		return err
	}

	logger.FromEcho(c).Info("Tenant selected",
		zap.Uint("tenant_id", refreshed.TenantID),
		zap.String("tenant_slug", refreshed.TenantSlug))

	return c.JSON(http.StatusOK, loginResponse(refreshed))
}

// CreateTenant provisions a church and makes the caller its first admin.
func (h *Handler) CreateTenant(c echo.Context) error {
	log := logger.FromEcho(c)
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	prometheus.RecordTenantOperation("create")

	var req struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "malformed JSON"})
	}

	fields := map[string]string{}
	name := strings.TrimSpace(req.Name)
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if name == "" {
		fields["name"] = "required"
	}
	if !slugPattern.MatchString(slug) {
		fields["slug"] = "lowercase letters, digits, and hyphens only"
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}

	var existing model.Tenant
	if err := h.db.WithContext(c.Request().Context()).Where("slug = ?", slug).First(&existing).Error; err == nil {
		return apperr.Conflict("slug already in use")
	}

	tenant := model.Tenant{
		Name:   name,
		Slug:   slug,
		Status: model.TenantStatusActive,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	err = h.db.WithContext(c.Request().Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		membership := model.Membership{
			UserID:    auth.UserID,
			TenantID:  tenant.ID,
			Role:      string(authz.RoleAdmin),
			IsDefault: true,
			Active:    true,
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}

	// A caller with no active tenant starts working in the new one at once.
	resp := loginResponse(auth)
	if !auth.HasTenant() {
		refreshed, err := h.sessions.SelectTenant(c.Request().Context(), auth.Token, tenant.ID)
		if err == nil {
			resp = loginResponse(refreshed)
		}
	}

	log.Info("Tenant created",
		zap.String("name", tenant.Name),
		zap.String("slug", tenant.Slug),
		zap.Uint("id", tenant.ID))

	resp["tenant_created"] = echo.Map{
		"id":   tenant.ID,
		"name": tenant.Name,
		"slug": tenant.Slug,
	}
	return c.JSON(http.StatusCreated, resp)
}

// CurrentTenant returns the caller's active tenant record.
func (h *Handler) CurrentTenant(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	if !auth.HasTenant() {
		return apperr.Conflict("tenant selection required")
	}

	var tenant model.Tenant
	if err := h.db.WithContext(c.Request().Context()).First(&tenant, auth.TenantID).Error; err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, tenant)
}
