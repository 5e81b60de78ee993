package auth

import (
	"errors"
	"testing"
	"time"

	"igram/internal/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("super-secret", time.Hour)

	tok, err := m.Issue("user-123", "creator")
	require.NoError(t, err)

	claims, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "creator", claims.Role)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("secret", -1*time.Second)

	tok, err := m.Issue("u1", "creator")
	require.NoError(t, err)

	_, err = m.Verify(tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))
	assert.Equal(t, "Token expired", err.Error())
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenManager("right-secret", time.Hour).Issue("u2", "consumer")
	require.NoError(t, err)

	_, err = NewTokenManager("wrong-secret", time.Hour).Verify(tok)
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("k", time.Hour).Verify("not.a.jwt")
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UID: "u3"}).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenManager("k", time.Hour).Verify(tok)
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))
}

func TestVerify_FallsBackToSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "from-sub",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}).SignedString(secret)
	require.NoError(t, err)

	claims, err := NewTokenManager("k", time.Hour).Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "from-sub", claims.UID)
}
