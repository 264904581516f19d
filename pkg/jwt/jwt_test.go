package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("test-secret-key-for-testing-only-32b!", 15, 1440)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateAccessToken("member-1", "보인")
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "member-1", claims.MemberID())
	assert.Equal(t, "보인", claims.Nickname)
}

func TestVerifyToken_RejectsRefreshToken(t *testing.T) {
	m := newTestManager()

	refresh, err := m.GenerateRefreshToken("member-1")
	require.NoError(t, err)

	_, err = m.VerifyToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := m.VerifyRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "member-1", claims.MemberID())
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := newTestManager().GenerateAccessToken("member-1", "")
	require.NoError(t, err)

	other := NewManager("another-secret", 15, 1440)
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	m := newTestManager()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "member-1",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		TokenType: tokenTypeAccess,
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(m.secret)
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	_, err := newTestManager().VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
