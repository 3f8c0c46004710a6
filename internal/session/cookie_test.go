package session

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCookie(t *testing.T) {
	cfg := testCfg()

	c := NewCookie(cfg, "opaque-token", false)
	assert.Equal(t, "fi_session", c.Name)
	assert.Equal(t, "opaque-token", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, 7*24*60*60, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure, "plain HTTP must work in development")
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	c = NewCookie(cfg, "opaque-token", true)
	assert.True(t, c.Secure, "production cookies are HTTPS-only")
}

func TestExpiredCookie(t *testing.T) {
	c := ExpiredCookie(testCfg(), true)
	assert.Equal(t, "fi_session", c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
}
