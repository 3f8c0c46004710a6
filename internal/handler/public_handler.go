package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/apperr"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/middleware"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/model"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/scope"
	"github.com/randy-gonzalez/faith-interactive-sub006/prometheus"
)

// publicScope binds the accessor to the tenant resolved from the host.
func (h *Handler) publicScope(c echo.Context) (*scope.Handle, error) {
	tenant := middleware.PublicTenantFromEcho(c)
	if tenant == nil {
		return nil, apperr.NotFound()
	}
	return scope.For(h.db, tenant.ID), nil
}

// SitePages lists the published pages of the church resolved from the host.
func (h *Handler) SitePages(c echo.Context) error {
	sc, err := h.publicScope(c)
	if err != nil {
		return err
	}

	var pages []model.Page
	err = scope.Query[model.Page](sc).
		Where("published = ?", true).
		Order("title asc").
		Find(&pages).Error
	if err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"pages": pages})
}

// SitePage fetches one published page by slug.
func (h *Handler) SitePage(c echo.Context) error {
	sc, err := h.publicScope(c)
	if err != nil {
		return err
	}

	slug := strings.ToLower(c.Param("slug"))
	var page model.Page
	err = scope.First(sc, &page, "slug = ? AND published = ?", slug, true)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound()
		}
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, page)
}

// SiteSermons lists the published sermons of the resolved church.
func (h *Handler) SiteSermons(c echo.Context) error {
	sc, err := h.publicScope(c)
	if err != nil {
		return err
	}

	var sermons []model.Sermon
	err = scope.Query[model.Sermon](sc).
		Where("published = ?", true).
		Order("delivered_on desc").
		Find(&sermons).Error
	if err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"sermons": sermons})
}

// SiteEvents lists the published events of the resolved church.
func (h *Handler) SiteEvents(c echo.Context) error {
	sc, err := h.publicScope(c)
	if err != nil {
		return err
	}

	var events []model.Event
	err = scope.Query[model.Event](sc).
		Where("published = ?", true).
		Order("starts_at asc").
		Find(&events).Error
	if err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// SubmitForm stores a visitor form submission for the resolved church.
// Unauthenticated and rate-limited.
func (h *Handler) SubmitForm(c echo.Context) error {
	sc, err := h.publicScope(c)
	if err != nil {
		return err
	}
	prometheus.RecordContentOperation("form_submission", "create")

	var req struct {
		Form   string            `json:"form"`
		Fields map[string]string `json:"fields"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "malformed JSON"})
	}

	fields := map[string]string{}
	form := strings.TrimSpace(req.Form)
	if form == "" {
		fields["form"] = "required"
	}
	if len(req.Fields) == 0 {
		fields["fields"] = "required"
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}

	payload, err := json.Marshal(req.Fields)
	if err != nil {
		return apperr.Validation(map[string]string{"fields": "must be a flat object"})
	}

	submission := model.FormSubmission{
		FormName: form,
		Payload:  string(payload),
	}
	if err := scope.Create(sc, &submission); err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "submission received"})
}
