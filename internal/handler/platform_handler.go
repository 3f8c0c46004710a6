package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/apperr"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/model"
	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/logger"
	"github.com/randy-gonzalez/faith-interactive-sub006/prometheus"
)

// PlatformListTenants lists every tenant for operator tooling, optionally by
// status.
func (h *Handler) PlatformListTenants(c echo.Context) error {
	q := h.db.WithContext(c.Request().Context()).Model(&model.Tenant{}).Order("created_at asc")
	if status := c.QueryParam("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var tenants []model.Tenant
	if err := q.Find(&tenants).Error; err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tenants": tenants})
}

// PlatformGetTenant fetches one tenant for operator tooling.
func (h *Handler) PlatformGetTenant(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var tenant model.Tenant
	if err := h.db.WithContext(c.Request().Context()).First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound()
		}
		return apperr.Internal(err)
	}

	var members int64
	h.db.WithContext(c.Request().Context()).Model(&model.Membership{}).
		Where("tenant_id = ? AND active = ?", tenant.ID, true).
		Count(&members)

	return c.JSON(http.StatusOK, echo.Map{
		"tenant":         tenant,
		"active_members": members,
	})
}

// PlatformSuspendTenant takes a tenant offline. Platform admin only.
func (h *Handler) PlatformSuspendTenant(c echo.Context) error {
	return h.setTenantStatus(c, model.TenantStatusSuspended, "suspend")
}

// PlatformReactivateTenant brings a suspended tenant back. Platform admin
// only.
func (h *Handler) PlatformReactivateTenant(c echo.Context) error {
	return h.setTenantStatus(c, model.TenantStatusActive, "reactivate")
}

func (h *Handler) setTenantStatus(c echo.Context, status, operation string) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	res := h.db.WithContext(c.Request().Context()).
		Model(&model.Tenant{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound()
	}

	prometheus.RecordTenantOperation(operation)
	logger.FromEcho(c).Info("Tenant status changed",
		zap.Uint("tenant_id", id),
		zap.String("status", status))

	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}
