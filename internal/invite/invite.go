// Package invite issues and validates signed tenant-invitation tokens.
// Unlike sessions, which are opaque database rows, an invitation has to
// travel outside the system (pasted into an email or a link), so it is a
// self-contained HS256 token.
package invite

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/config"
)

var (
	secret []byte
	ttl    = 72 * time.Hour
)

// Initialize configures the signing key and token lifetime.
func Initialize(cfg *config.InviteConfig) {
	secret = []byte(cfg.SigningKey)
	if cfg.ExpirationHours > 0 {
		ttl = time.Duration(cfg.ExpirationHours) * time.Hour
	}
}

// Claims carries who is invited, into which tenant, and with which role.
type Claims struct {
	Email    string `json:"email"`
	TenantID uint   `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Generate creates an invitation token for the given email, tenant, and role.
func Generate(email string, tenantID uint, role string) (string, error) {
	claims := Claims{
		Email:    email,
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Validate parses and verifies an invitation token.
func Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
