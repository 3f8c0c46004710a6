package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/apperr"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/model"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/session"
	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/logger"
	"github.com/randy-gonzalez/faith-interactive-sub006/prometheus"
)

// Login verifies credentials and issues the session cookie.
func (h *Handler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		TenantID *uint  `json:"tenant_id,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return apperr.Validation(map[string]string{"body": "malformed JSON"})
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "required"
	}
	if req.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		prometheus.RecordAuthError("incomplete_login")
		return apperr.Validation(fields)
	}

	sess, auth, err := h.sessions.Login(c.Request().Context(), session.Credentials{
		Email:    req.Email,
		Password: req.Password,
		TenantID: req.TenantID,
	})
	if err != nil {
		prometheus.RecordAuthError("invalid_credentials")
		return err
	}

	c.SetCookie(session.NewCookie(&h.cfg.Session, sess.Token, h.cfg.IsProduction()))
	prometheus.IncreaseActiveSessions()

	log.Info("User logged in",
		zap.String("email", auth.Email),
		zap.Uint("tenant_id", auth.TenantID))

	return c.JSON(http.StatusOK, loginResponse(auth))
}

// Logout destroys the session and clears the cookie. Always succeeds, even
// without a session.
func (h *Handler) Logout(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(h.cfg.Session.CookieName); err == nil {
		token = cookie.Value
	}
	if token != "" {
		if err := h.sessions.Logout(c.Request().Context(), token); err != nil {
			return err
		}
		prometheus.DecreaseActiveSessions()
	}

	c.SetCookie(session.ExpiredCookie(&h.cfg.Session, h.cfg.IsProduction()))
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Register creates an account. Tenant access comes later, via tenant
// creation or an invitation.
func (h *Handler) Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return apperr.Validation(map[string]string{"body": "malformed JSON"})
	}

	fields := map[string]string{}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(req.Password) < 8 {
		fields["password"] = "must be at least 8 characters"
	}
	if len(fields) > 0 {
		prometheus.RecordAuthError("incomplete_registration")
		return apperr.Validation(fields)
	}

	var existing model.User
	err := h.db.WithContext(c.Request().Context()).Where("email = ?", email).First(&existing).Error
	if err == nil {
		prometheus.RecordAuthError("email_already_exists")
		return apperr.Conflict("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Internal(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(err)
	}

	user := model.User{
		Email:    email,
		Password: string(hashed),
		Name:     strings.TrimSpace(req.Name),
	}
	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.db.WithContext(c.Request().Context()).Create(&user).Error; err != nil {
		return apperr.Internal(err)
	}

	log.Info("User registered", zap.String("email", user.Email))
	return c.JSON(http.StatusCreated, echo.Map{
		"user": echo.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// Profile returns the caller's resolved identity.
func (h *Handler) Profile(c echo.Context) error {
	auth, err := mustAuth(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse(auth))
}

// loginResponse shapes an AuthContext for the client.
func loginResponse(auth *session.AuthContext) echo.Map {
	resp := echo.Map{
		"user": echo.Map{
			"id":    auth.UserID,
			"email": auth.Email,
			"name":  auth.Name,
		},
		"needs_tenant_selection": auth.NeedsTenantSelection,
	}
	if auth.PlatformRole != "" {
		resp["platform_role"] = auth.PlatformRole
	}
	if auth.HasTenant() {
		resp["tenant"] = echo.Map{
			"id":     auth.TenantID,
			"name":   auth.TenantName,
			"slug":   auth.TenantSlug,
			"status": auth.TenantStatus,
			"role":   auth.Role,
		}
	}
	return resp
}
