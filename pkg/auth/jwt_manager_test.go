package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	userID := uuid.New().String()

	token, err := manager.Generate(userID)
	require.NoError(t, err)

	claims, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)

	exp, err := manager.Expiry(token)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("one", time.Hour).Generate("user")
	require.NoError(t, err)

	_, err = NewJWTManager("another", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := NewJWTManager("secret", -time.Minute)

	token, err := manager.Generate("user")
	require.NoError(t, err)

	_, err = manager.Verify(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	r, err := http.NewRequest(http.MethodGet, "/", nil)
	require.NoError(t, err)

	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	token, err := ExtractTokenFromHeader(r)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	r.Header.Set("Authorization", "Token abc")
	_, err = ExtractTokenFromHeader(r)
	assert.Error(t, err)

	r.Header.Del("Authorization")
	_, err = ExtractTokenFromHeader(r)
	assert.Error(t, err)
}
