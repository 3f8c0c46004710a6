package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/apperr"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/authz"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/invite"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/model"
	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/logger"
	"github.com/randy-gonzalez/faith-interactive-sub006/prometheus"
)

// ListMembers lists the active tenant's team.
func (h *Handler) ListMembers(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}

	var memberships []model.Membership
	err = h.db.WithContext(c.Request().Context()).
		Preload("User").
		Where("tenant_id = ?", auth.TenantID).
		Order("created_at asc").
		Find(&memberships).Error
	if err != nil {
		return apperr.Internal(err)
	}

	type memberEntry struct {
		UserID uint   `json:"user_id"`
		Email  string `json:"email"`
		Name   string `json:"name"`
		Role   string `json:"role"`
		Active bool   `json:"active"`
	}
	entries := make([]memberEntry, 0, len(memberships))
	for _, m := range memberships {
		entries = append(entries, memberEntry{
			UserID: m.UserID,
			Email:  m.User.Email,
			Name:   m.User.Name,
			Role:   m.Role,
			Active: m.Active,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"members": entries})
}

// InviteMember issues an invitation token for an email and role. Delivery is
// outside this service; the token is returned to the inviter.
func (h *Handler) InviteMember(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}

	var req struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "malformed JSON"})
	}

	fields := map[string]string{}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email is required"
	}
	role, ok := authz.ParseRole(req.Role)
	if !ok {
		fields["role"] = "must be one of ADMIN, EDITOR, VIEWER"
	}
	if len(fields) > 0 {
		return apperr.Validation(fields)
	}

	token, err := invite.Generate(email, auth.TenantID, string(role))
	if err != nil {
		return apperr.Internal(err)
	}

	logger.FromEcho(c).Info("Member invited",
		zap.String("invitee", email),
		zap.String("role", string(role)))
	prometheus.RecordTenantOperation("invite")

	return c.JSON(http.StatusCreated, echo.Map{
		"invite_token": token,
		"email":        email,
		"role":         role,
	})
}

// AcceptInvite redeems an invitation token for the logged-in user. The
// token's email must match the caller's account.
func (h *Handler) AcceptInvite(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := c.Bind(&req); err != nil || req.Token == "" {
		return apperr.Validation(map[string]string{"token": "required"})
	}

	claims, err := invite.Validate(req.Token)
	if err != nil {
		prometheus.RecordAuthError("invalid_invite")
		return apperr.Validation(map[string]string{"token": "invalid or expired"})
	}
	if !strings.EqualFold(claims.Email, auth.Email) {
		prometheus.RecordAuthError("invite_email_mismatch")
		return apperr.Forbidden()
	}

	ctx := c.Request().Context()
	var membership model.Membership
	err = h.db.WithContext(ctx).
		Where("user_id = ? AND tenant_id = ?", auth.UserID, claims.TenantID).
		First(&membership).Error
	switch {
	case err == nil:
		membership.Role = claims.Role
		membership.Active = true
		if err := h.db.WithContext(ctx).Save(&membership).Error; err != nil {
			return apperr.Internal(err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		membership = model.Membership{
			UserID:   auth.UserID,
			TenantID: claims.TenantID,
			Role:     claims.Role,
			Active:   true,
		}
		if err := h.db.WithContext(ctx).Create(&membership).Error; err != nil {
			return apperr.Internal(err)
		}
	default:
		return apperr.Internal(err)
	}

	logger.FromEcho(c).Info("Invite accepted",
		zap.Uint("tenant_id", claims.TenantID),
		zap.String("role", claims.Role))
	prometheus.RecordTenantOperation("invite_accepted")

	return c.JSON(http.StatusOK, echo.Map{
		"tenant_id": claims.TenantID,
		"role":      claims.Role,
	})
}

// UpdateMemberRole changes a member's role. Members cannot change their own
// role, so a tenant always keeps at least one acting admin.
func (h *Handler) UpdateMemberRole(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}

	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	if userID == auth.UserID {
		return apperr.Forbidden()
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return apperr.Validation(map[string]string{"body": "malformed JSON"})
	}
	role, ok := authz.ParseRole(req.Role)
	if !ok {
		return apperr.Validation(map[string]string{"role": "must be one of ADMIN, EDITOR, VIEWER"})
	}

	res := h.db.WithContext(c.Request().Context()).
		Model(&model.Membership{}).
		Where("user_id = ? AND tenant_id = ?", userID, auth.TenantID).
		Update("role", string(role))
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound()
	}

	prometheus.RecordTenantOperation("role_change")
	return c.JSON(http.StatusOK, echo.Map{"user_id": userID, "role": role})
}

// DeactivateMember revokes a member's access without deleting anything.
// Self-deactivation is rejected for the same lockout reason as role changes.
func (h *Handler) DeactivateMember(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}

	userID, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	if userID == auth.UserID {
		return apperr.Forbidden()
	}

	res := h.db.WithContext(c.Request().Context()).
		Model(&model.Membership{}).
		Where("user_id = ? AND tenant_id = ?", userID, auth.TenantID).
		Update("active", false)
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound()
	}

	prometheus.RecordTenantOperation("deactivate_member")
	return c.NoContent(http.StatusNoContent)
}
