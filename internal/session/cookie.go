package session

import (
	"net/http"

	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/config"
)

// NewCookie builds the session cookie for a freshly created session. The
// value is the opaque token; no claims are parsed client-side. Secure is set
// only in production so local development over plain HTTP keeps working.
func NewCookie(cfg *config.SessionConfig, token string, production bool) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   cfg.Days * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredCookie builds a cookie that clears the session on the client.
func ExpiredCookie(cfg *config.SessionConfig, production bool) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteLaxMode,
	}
}
