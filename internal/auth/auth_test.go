package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, key []byte, userID, tenantID string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:   userID,
		TenantID: tenantID,
	})
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestVerifyToken(t *testing.T) {
	key := []byte("test-signing-key")
	Init(key)

	r := httptest.NewRequest("GET", "/v1/matters", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, key, "user-1", "tenant-1"))

	userID, tenantID, err := VerifyToken(r)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "tenant-1", tenantID)
}

func TestVerifyToken_MissingHeader(t *testing.T) {
	Init([]byte("test-signing-key"))

	r := httptest.NewRequest("GET", "/v1/matters", nil)
	_, _, err := VerifyToken(r)
	assert.Error(t, err)
}

func TestVerifyToken_WrongKey(t *testing.T) {
	Init([]byte("test-signing-key"))

	r := httptest.NewRequest("GET", "/v1/matters", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, []byte("other-key"), "user-1", "tenant-1"))

	_, _, err := VerifyToken(r)
	assert.Error(t, err)
}

func TestVerifyToken_MissingTenant(t *testing.T) {
	key := []byte("test-signing-key")
	Init(key)

	r := httptest.NewRequest("GET", "/v1/matters", nil)
	r.Header.Set("Authorization", "Bearer "+signToken(t, key, "user-1", ""))

	_, _, err := VerifyToken(r)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
