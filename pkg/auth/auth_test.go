package auth

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHMACServiceRoundTrip(t *testing.T) {
	svc := NewHMACService("test-secret", time.Hour)

	token, exp, err := svc.Generate(42, "admin@example.com", "Admin", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestHMACServiceExpired(t *testing.T) {
	svc := NewHMACService("test-secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.Generate(1, "a@b.co", "A", "user")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACServiceRejectsForeignSecretAndAlg(t *testing.T) {
	issuer := NewHMACService("other-secret", time.Hour)
	token, _, err := issuer.Generate(1, "a@b.co", "A", "user")
	require.NoError(t, err)

	svc := NewHMACService("test-secret", time.Hour)
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	none := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{UserID: 1})
	unsigned, err := none.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Validate(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACServiceWithoutSecret(t *testing.T) {
	_, _, err := NewHMACService("", time.Hour).Generate(1, "a@b.co", "A", "user")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", hash)
	assert.True(t, h.Compare(hash, "Secret123"))
	assert.False(t, h.Compare(hash, "secret123"))
}

func TestPasswordHasherClampsCost(t *testing.T) {
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(99).cost)
	assert.Equal(t, DefaultBcryptCost, NewPasswordHasher(0).cost)
}
