package security_test

import (
	"testing"
	"time"

	"github.com/formgate/formgate/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", time.Hour)

	token, err := manager.GenerateToken("bot-1", []string{"ws-1", "ws-2"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "bot-1", claims.ActorID)
	assert.Equal(t, []string{"ws-1", "ws-2"}, claims.Workspaces)

	assert.True(t, claims.AllowsWorkspace("ws-1"))
	assert.False(t, claims.AllowsWorkspace("ws-3"))
}

func TestJWTManager_UnscopedTokenAllowsAllWorkspaces(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", time.Hour)

	token, err := manager.GenerateToken("bot-1", nil)
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.AllowsWorkspace("anything"))
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", time.Hour)
	other := security.NewJWTManager("another-secret-key-entirely!!!!!", time.Hour)

	token, err := manager.GenerateToken("bot-1", nil)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", -time.Minute)

	token, err := manager.GenerateToken("bot-1", nil)
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}
