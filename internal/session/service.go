// Package session owns the login/logout lifecycle and the resolution of an
// opaque cookie token into an AuthContext. Session rows are written by this
// package only.
package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/randy-gonzalez/faith-interactive-sub006/internal/apperr"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/authz"
	"github.com/randy-gonzalez/faith-interactive-sub006/internal/model"
	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/config"
)

// Service resolves session tokens and manages session rows.
type Service struct {
	db  *gorm.DB
	cfg *config.SessionConfig
	now func() time.Time
}

// NewService creates a session service. A nil clock means time.Now.
func NewService(db *gorm.DB, cfg *config.SessionConfig, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{db: db, cfg: cfg, now: clock}
}

// Credentials is the login input. TenantID optionally pre-selects the active
// tenant; the user must hold an active membership there.
type Credentials struct {
	Email    string
	Password string
	TenantID *uint
}

// Login verifies the credentials, picks the active tenant, and creates a
// session row. Tenant selection order: explicit request tenant, then the
// user's default membership, then a sole active membership; otherwise the
// session starts without a tenant and the client must select one.
func (s *Service) Login(ctx context.Context, creds Credentials) (*model.Session, *AuthContext, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same failure as a bad password so the response does not
			// reveal which accounts exist.
			return nil, nil, apperr.Unauthenticated()
		}
		return nil, nil, apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return nil, nil, apperr.Unauthenticated()
	}

	tenantID, err := s.pickTenant(ctx, &user, creds.TenantID)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	sess := &model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		TenantID:  tenantID,
		ExpiresAt: now.Add(s.cfg.Duration()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(sess).Error; err != nil {
		return nil, nil, apperr.Internal(err)
	}

	auth, err := s.buildContext(ctx, sess, &user)
	if err != nil {
		return nil, nil, err
	}
	return sess, auth, nil
}

// pickTenant resolves the tenant for a new session. Returns nil when no
// single tenant is resolvable.
func (s *Service) pickTenant(ctx context.Context, user *model.User, requested *uint) (*uint, error) {
	if requested != nil {
		var m model.Membership
		err := s.db.WithContext(ctx).
			Where("user_id = ? AND tenant_id = ? AND active = ?", user.ID, *requested, true).
			First(&m).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Forbidden()
			}
			return nil, apperr.Internal(err)
		}
		return requested, nil
	}

	var memberships []model.Membership
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", user.ID, true).
		Find(&memberships).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}

	switch {
	case len(memberships) == 0:
		return nil, nil
	case len(memberships) == 1:
		return &memberships[0].TenantID, nil
	}

	for i := range memberships {
		m := &memberships[i]
		if m.IsDefault || (user.DefaultTenantID != nil && *user.DefaultTenantID == m.TenantID) {
			return &m.TenantID, nil
		}
	}
	return nil, nil
}

// Resolve is the soft loader: a missing, unknown, expired, or malformed
// token yields (nil, nil), never an error. Expired rows are deleted lazily.
func (s *Service) Resolve(ctx context.Context, token string) (*AuthContext, error) {
	if token == "" {
		return nil, nil
	}

	var sess model.Session
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperr.Internal(err)
	}

	if sess.Expired(s.now()) {
		s.db.WithContext(ctx).Delete(&model.Session{}, "token = ?", sess.Token)
		return nil, nil
	}

	var user model.User
	err = s.db.WithContext(ctx).First(&user, sess.UserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Orphaned session; treat as unauthenticated.
			return nil, nil
		}
		return nil, apperr.Internal(err)
	}

	return s.buildContext(ctx, &sess, &user)
}

// ResolveStrict is the hard loader: identical to Resolve for a valid token,
// but a missing or invalid one fails with Unauthenticated.
func (s *Service) ResolveStrict(ctx context.Context, token string) (*AuthContext, error) {
	auth, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if auth == nil {
		return nil, apperr.Unauthenticated()
	}
	return auth, nil
}

// SelectTenant rewrites the session's active tenant after verifying the
// user holds an active membership there. Used both for the initial selection
// and for switching.
func (s *Service) SelectTenant(ctx context.Context, token string, tenantID uint) (*AuthContext, error) {
	auth, err := s.ResolveStrict(ctx, token)
	if err != nil {
		return nil, err
	}

	var m model.Membership
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND tenant_id = ? AND active = ?", auth.UserID, tenantID, true).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Forbidden()
		}
		return nil, apperr.Internal(err)
	}

	err = s.db.WithContext(ctx).Model(&model.Session{}).
		Where("token = ?", token).
		Update("tenant_id", tenantID).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return s.ResolveStrict(ctx, token)
}

// Logout destroys the session row. Clearing the cookie is the handler's job.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.db.WithContext(ctx).Delete(&model.Session{}, "token = ?", token).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Memberships lists the user's active memberships with tenants preloaded.
func (s *Service) Memberships(ctx context.Context, userID uint) ([]model.Membership, error) {
	var memberships []model.Membership
	err := s.db.WithContext(ctx).
		Preload("Tenant").
		Where("user_id = ? AND active = ?", userID, true).
		Find(&memberships).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return memberships, nil
}

// buildContext assembles the AuthContext for a session. A selected tenant
// whose membership has since been deactivated is treated as unselected.
func (s *Service) buildContext(ctx context.Context, sess *model.Session, user *model.User) (*AuthContext, error) {
	auth := &AuthContext{
		Token:  sess.Token,
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}
	if user.PlatformRole != nil {
		auth.PlatformRole = *user.PlatformRole
	}

	if sess.TenantID != nil {
		var m model.Membership
		err := s.db.WithContext(ctx).
			Preload("Tenant").
			Where("user_id = ? AND tenant_id = ? AND active = ?", user.ID, *sess.TenantID, true).
			First(&m).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal(err)
		}
		if err == nil {
			auth.TenantID = m.TenantID
			auth.TenantName = m.Tenant.Name
			auth.TenantSlug = m.Tenant.Slug
			auth.TenantStatus = m.Tenant.Status
			if role, ok := authz.ParseRole(m.Role); ok {
				auth.Role = role
			}
			return auth, nil
		}
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&model.Membership{}).
		Where("user_id = ? AND active = ?", user.ID, true).
		Count(&count).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	auth.NeedsTenantSelection = count > 0

	return auth, nil
}
