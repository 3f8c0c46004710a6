package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/apperr"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/model"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/scope"
	"github.com/randy-gonzalez/faith-interactive-sub006/prometheus"
)

// ListPages lists all pages of the active tenant, drafts included.
func (h *Handler) ListPages(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	prometheus.RecordContentOperation("page", "list")

	sc := h.tenantScope(auth)
	var pages []model.Page
	if err := scope.Query[model.Page](sc).Order("updated_at desc").Find(&pages).Error; err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"pages": pages})
}

// CreatePage creates a draft page.
func (h *Handler) CreatePage(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	prometheus.RecordContentOperation("page", "create")

	var req struct {
		Slug  string `json:"slug"`
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "malformed JSON"})
	}

	fields := map[string]string{}
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !slugPattern.MatchString(slug) {
		fields["slug"] = "lowercase letters, digits, and hyphens only"
	}
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "required"
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}

	sc := h.tenantScope(auth)
	var n int64
	if err := scope.Query[model.Page](sc).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return apperr.Internal(err)
	}
	if n > 0 {
		return apperr.Conflict("a page with this slug already exists")
	}

	page := model.Page{
		Slug:  slug,
		Title: strings.TrimSpace(req.Title),
		Body:  req.Body,
	}
	if err := scope.Create(sc, &page); err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusCreated, page)
}

// GetPage fetches one page of the active tenant. An id owned by another
// tenant reads as not found.
func (h *Handler) GetPage(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var page model.Page
	if err := scope.First(h.tenantScope(auth), &page, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound()
		}
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, page)
}

// UpdatePage edits a page's slug, title, or body.
func (h *Handler) UpdatePage(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	prometheus.RecordContentOperation("page", "update")

	var req struct {
		Slug  *string `json:"slug"`
		Title *string `json:"title"`
		Body  *string `json:"body"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "malformed JSON"})
	}

	values := map[string]interface{}{}
	if req.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*req.Slug))
		if !slugPattern.MatchString(slug) {
			return apperr.Validation(map[string]string{"slug": "lowercase letters, digits, and hyphens only"})
		}
		values["slug"] = slug
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return apperr.Validation(map[string]string{"title": "must not be empty"})
		}
		values["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Body != nil {
		values["body"] = *req.Body
	}
	if len(values) == 0 {
		return apperr.Validation(map[string]string{"body": "no fields to update"})
	}

	rows, err := scope.Updates[model.Page](h.tenantScope(auth), id, values)
	if err != nil {
		return apperr.Internal(err)
	}
	if rows == 0 {
		return apperr.NotFound()
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "updated": true})
}

// PublishPage makes a page visible on the public site.
func (h *Handler) PublishPage(c echo.Context) error {
	return h.setPagePublished(c, true)
}

// UnpublishPage pulls a page back to draft.
func (h *Handler) UnpublishPage(c echo.Context) error {
	return h.setPagePublished(c, false)
}

func (h *Handler) setPagePublished(c echo.Context, published bool) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	prometheus.RecordContentOperation("page", "publish")

	values := map[string]interface{}{"published": published}
	if published {
		now := time.Now()
		values["published_at"] = &now
	} else {
		values["published_at"] = nil
	}

	rows, err := scope.Updates[model.Page](h.tenantScope(auth), id, values)
	if err != nil {
		return apperr.Internal(err)
	}
	if rows == 0 {
		return apperr.NotFound()
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "published": published})
}

// DeletePage removes a page.
func (h *Handler) DeletePage(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	prometheus.RecordContentOperation("page", "delete")

	rows, err := scope.Delete[model.Page](h.tenantScope(auth), id)
	if err != nil {
		return apperr.Internal(err)
	}
	if rows == 0 {
		return apperr.NotFound()
	}
	return c.NoContent(http.StatusNoContent)
}
