package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/apperr"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/model"
	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/logger"
	"github.com/randy-gonzalez/faith-interactive-sub006/prometheus"
)

// CreateLead captures a sales lead from the marketing site. Unauthenticated
// and under the strict rate limit.
func (h *Handler) CreateLead(c echo.Context) error {
	var req struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		ChurchName string `json:"church_name"`
		Message    string `json:"message"`
		Source     string `json:"source"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "malformed JSON"})
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "required"
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}

	lead := model.Lead{
		Name:       strings.TrimSpace(req.Name),
		Email:      email,
		ChurchName: strings.TrimSpace(req.ChurchName),
		Message:    req.Message,
		Source:     strings.TrimSpace(req.Source),
		Status:     model.LeadStatusNew,
	}
	if err := h.db.WithContext(c.Request().Context()).Create(&lead).Error; err != nil {
		return apperr.Internal(err)
	}

	prometheus.LeadCounter.Inc()
	logger.FromEcho(c).Info("Lead captured", zap.String("source", lead.Source))

	return c.JSON(http.StatusCreated, echo.Map{"message": "thanks, we'll be in touch"})
}

// ListLeads lists CRM leads for platform staff, optionally by status.
func (h *Handler) ListLeads(c echo.Context) error {
	q := h.db.WithContext(c.Request().Context()).Model(&model.Lead{}).Order("created_at desc")
	if status := c.QueryParam("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var leads []model.Lead
	if err := q.Find(&leads).Error; err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"leads": leads})
}

// UpdateLeadStatus moves a lead through the pipeline.
func (h *Handler) UpdateLeadStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "malformed JSON"})
	}
	switch req.Status {
	case model.LeadStatusNew, model.LeadStatusContacted, model.LeadStatusConverted, model.LeadStatusClosed:
	default:
		return apperr.Validation(map[string]string{"status": "unknown status"})
	}

	res := h.db.WithContext(c.Request().Context()).
		Model(&model.Lead{}).
		Where("id = ?", id).
		Update("status", req.Status)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound()
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}
