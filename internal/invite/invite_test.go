package invite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randy-gonzalez/faith-interactive-sub006/pkg/config"
)

func TestGenerateAndValidate(t *testing.T) {
	Initialize(&config.InviteConfig{SigningKey: "test-signing-key", ExpirationHours: 72})

	token, err := Generate("new.editor@gracechurch.org", 42, "EDITOR")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "new.editor@gracechurch.org", claims.Email)
	assert.Equal(t, uint(42), claims.TenantID)
	assert.Equal(t, "EDITOR", claims.Role)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	Initialize(&config.InviteConfig{SigningKey: "test-signing-key", ExpirationHours: 72})

	token, err := Generate("new.editor@gracechurch.org", 42, "EDITOR")
	require.NoError(t, err)

	_, err = Validate(token + "x")
	assert.Error(t, err)

	_, err = Validate("not-a-token")
	assert.Error(t, err)
}

func TestValidateRejectsForeignKey(t *testing.T) {
	Initialize(&config.InviteConfig{SigningKey: "key-one", ExpirationHours: 72})
	token, err := Generate("new.editor@gracechurch.org", 42, "EDITOR")
	require.NoError(t, err)

	Initialize(&config.InviteConfig{SigningKey: "key-two", ExpirationHours: 72})
	_, err = Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	Initialize(&config.InviteConfig{SigningKey: "test-signing-key", ExpirationHours: 72})
	old := ttl
	ttl = -time.Hour
	defer func() { ttl = old }()

	token, err := Generate("new.editor@gracechurch.org", 42, "EDITOR")
	require.NoError(t, err)

	_, err = Validate(token)
	assert.Error(t, err)
}
