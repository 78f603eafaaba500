package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPasscode(t *testing.T) {
	hash, err := HashPasscode("2518")
	require.NoError(t, err)
	assert.NotEqual(t, "2518", hash)

	assert.NoError(t, CheckPasscode("2518", hash))
	assert.ErrorIs(t, CheckPasscode("0000", hash), ErrPasscodeMismatch)
}

func TestHashPasscodeEmpty(t *testing.T) {
	_, err := HashPasscode("")
	assert.Error(t, err)
}

func TestCheckPasscodeGarbageHash(t *testing.T) {
	err := CheckPasscode("2518", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPasscodeMismatch)
}

func TestGenerateAndValidateToken(t *testing.T) {
	manager := NewJWTManager("test-secret", 12*time.Hour)

	token, err := manager.GenerateToken("session-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.Session)
	assert.Equal(t, "firecheckpoint-api", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a", time.Hour).GenerateToken("s")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute)

	token, err := manager.GenerateToken("s")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	token, err := ExtractToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractToken("")
	assert.Error(t, err)

	_, err = ExtractToken("Basic dXNlcg==")
	assert.Error(t, err)

	_, err = ExtractToken("Bearer")
	assert.Error(t, err)
}
