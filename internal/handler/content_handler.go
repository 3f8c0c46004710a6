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

// ListSermons lists the active tenant's sermons, newest first.
func (h *Handler) ListSermons(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	prometheus.RecordContentOperation("sermon", "list")

	var sermons []model.Sermon
	err = scope.Query[model.Sermon](h.tenantScope(auth)).
		Order("delivered_on desc").
		Find(&sermons).Error
	if err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"sermons": sermons})
}

// CreateSermon creates a sermon entry.
func (h *Handler) CreateSermon(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	prometheus.RecordContentOperation("sermon", "create")

	var req struct {
		Title       string     `json:"title"`
		Speaker     string     `json:"speaker"`
		Scripture   string     `json:"scripture"`
		VideoURL    string     `json:"video_url"`
		DeliveredOn *time.Time `json:"delivered_on"`
		Published   bool       `json:"published"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "malformed JSON"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return apperr.Validation(map[string]string{"title": "required"})
	}

	sermon := model.Sermon{
		Title:       strings.TrimSpace(req.Title),
		Speaker:     strings.TrimSpace(req.Speaker),
		Scripture:   strings.TrimSpace(req.Scripture),
		VideoURL:    strings.TrimSpace(req.VideoURL),
		DeliveredOn: req.DeliveredOn,
		Published:   req.Published,
	}
	if err := scope.Create(h.tenantScope(auth), &sermon); err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusCreated, sermon)
}

// GetSermon fetches one sermon of the active tenant.
func (h *Handler) GetSermon(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var sermon model.Sermon
	if err := scope.First(h.tenantScope(auth), &sermon, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound()
		}
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, sermon)
}

// UpdateSermon edits a sermon, including its published flag.
func (h *Handler) UpdateSermon(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	prometheus.RecordContentOperation("sermon", "update")

	var req struct {
		Title       *string    `json:"title"`
		Speaker     *string    `json:"speaker"`
		Scripture   *string    `json:"scripture"`
		VideoURL    *string    `json:"video_url"`
		DeliveredOn *time.Time `json:"delivered_on"`
		Published   *bool      `json:"published"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "malformed JSON"})
	}

	values := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return apperr.Validation(map[string]string{"title": "must not be empty"})
		}
		values["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Speaker != nil {
		values["speaker"] = strings.TrimSpace(*req.Speaker)
	}
	if req.Scripture != nil {
		values["scripture"] = strings.TrimSpace(*req.Scripture)
	}
	if req.VideoURL != nil {
		values["video_url"] = strings.TrimSpace(*req.VideoURL)
	}
	if req.DeliveredOn != nil {
		values["delivered_on"] = req.DeliveredOn
	}
	if req.Published != nil {
		values["published"] = *req.Published
	}
	if len(values) == 0 {
		return apperr.Validation(map[string]string{"body": "no fields to update"})
	}

	rows, err := scope.Updates[model.Sermon](h.tenantScope(auth), id, values)
	if err != nil {
		return apperr.Internal(err)
	}
	if rows == 0 {
		return apperr.NotFound()
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "updated": true})
}

// DeleteSermon removes a sermon.
func (h *Handler) DeleteSermon(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	prometheus.RecordContentOperation("sermon", "delete")

	rows, err := scope.Delete[model.Sermon](h.tenantScope(auth), id)
	if err != nil {
		return apperr.Internal(err)
	}
	if rows == 0 {
		return apperr.NotFound()
	}
	return c.NoContent(http.StatusNoContent)
}

// ListEvents lists the active tenant's events by start time.
func (h *Handler) ListEvents(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	prometheus.RecordContentOperation("event", "list")

	var events []model.Event
	err = scope.Query[model.Event](h.tenantScope(auth)).
		Order("starts_at asc").
		Find(&events).Error
	if err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// CreateEvent creates a calendar event.
func (h *Handler) CreateEvent(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	prometheus.RecordContentOperation("event", "create")

	var req struct {
		Title     string     `json:"title"`
		Location  string     `json:"location"`
		StartsAt  *time.Time `json:"starts_at"`
		EndsAt    *time.Time `json:"ends_at"`
		Published bool       `json:"published"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "malformed JSON"})
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "required"
	}
	if req.StartsAt == nil {
		fields["starts_at"] = "required"
	} else if req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		fields["ends_at"] = "must not be before starts_at"
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}

	event := model.Event{
		Title:     strings.TrimSpace(req.Title),
		Location:  strings.TrimSpace(req.Location),
		StartsAt:  *req.StartsAt,
		EndsAt:    req.EndsAt,
		Published: req.Published,
	}
	if err := scope.Create(h.tenantScope(auth), &event); err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusCreated, event)
}

// GetEvent fetches one event of the active tenant.
func (h *Handler) GetEvent(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var event model.Event
	if err := scope.First(h.tenantScope(auth), &event, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound()
		}
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, event)
}

// DeleteEvent removes an event.
func (h *Handler) DeleteEvent(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	prometheus.RecordContentOperation("event", "delete")

	rows, err := scope.Delete[model.Event](h.tenantScope(auth), id)
	if err != nil {
		return apperr.Internal(err)
	}
	if rows == 0 {
		return apperr.NotFound()
	}
	return c.NoContent(http.StatusNoContent)
}

// ListFormSubmissions lists visitor form submissions, optionally filtered by
// form name.
func (h *Handler) ListFormSubmissions(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	prometheus.RecordContentOperation("form_submission", "list")

	q := scope.Query[model.FormSubmission](h.tenantScope(auth)).Order("created_at desc")
	if form := c.QueryParam("form"); form != "" {
		q = q.Where("form_name = ?", form)
	}

	var submissions []model.FormSubmission
	if err := q.Find(&submissions).Error; err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"submissions": submissions})
}
