package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensRoundTrip(t *testing.T) {
	tokens, err := NewTokens([]byte("secret"), time.Hour)
	require.NoError(t, err)

	token, err := tokens.Sign("abc")
	require.NoError(t, err)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.SessionID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokensRejectForeign(t *testing.T) {
	tokens, err := NewTokens([]byte("secret"), time.Hour)
	require.NoError(t, err)
	other, err := NewTokens([]byte("other secret"), time.Hour)
	require.NoError(t, err)

	token, err := other.Sign("abc")
	require.NoError(t, err)
	_, err = tokens.Parse(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, err = tokens.Parse("not.a.token")
	assert.Error(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &SessionClaims{
		SessionID: "abc",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = tokens.Parse(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestNewTokensValidates(t *testing.T) {
	_, err := NewTokens(nil, time.Hour)
	assert.Error(t, err)
	_, err = NewTokens([]byte("x"), 0)
	assert.Error(t, err)
}
