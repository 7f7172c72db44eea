package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret        = "test-secret-key-12345"
	testRefreshSecret = "test-refresh-secret-67890"
)

var coach = Identity{CustomerID: 42, Email: "coach@example.com", Role: RoleStaff}

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	i, err := NewIssuer(testSecret, testRefreshSecret)
	require.NoError(t, err)
	return i
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("correctPassword")
	require.NoError(t, err)
	assert.NotEqual(t, "correctPassword", hashed)

	again, err := HashPassword("correctPassword")
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again)

	assert.True(t, CheckPassword(hashed, "correctPassword"))
	assert.False(t, CheckPassword(hashed, "wrongPassword"))
	assert.False(t, CheckPassword(hashed, ""))
}

func TestNewIssuer(t *testing.T) {
	_, err := NewIssuer("", "refresh")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)

	i, err := NewIssuer(testSecret, "")
	require.NoError(t, err)
	assert.Equal(t, i.accessSecret, i.refreshSecret)
}

func TestPair(t *testing.T) {
	i := newTestIssuer(t)

	pair, err := i.Pair(coach)
	require.NoError(t, err)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	access, err := i.ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, coach, access.Identity())
	assert.Equal(t, TokenAccess, access.TokenType)
	assert.Equal(t, jwtIssuer, access.Issuer)

	refresh, err := i.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, coach, refresh.Identity())
	assert.WithinDuration(t, time.Now().Add(RefreshTokenTTL), refresh.ExpiresAt.Time, 2*time.Second)
}

func TestParseRejectsWrongTokenType(t *testing.T) {
	i, err := NewIssuer(testSecret, testSecret)
	require.NoError(t, err)
	pair, err := i.Pair(coach)
	require.NoError(t, err)

	_, err = i.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = i.ParseRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	i := newTestIssuer(t)
	pair, err := i.Pair(coach)
	require.NoError(t, err)

	_, err = i.ParseAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewIssuer("another-secret", "")
	require.NoError(t, err)
	_, err = other.ParseAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseExpired(t *testing.T) {
	i := newTestIssuer(t)
	i.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := i.Access(coach)
	require.NoError(t, err)

	i.now = time.Now
	_, err = i.ParseAccess(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseRejectsForeignIssuerAndAlgorithm(t *testing.T) {
	i := newTestIssuer(t)

	t.Run("wrong issuer", func(t *testing.T) {
		claims := &Claims{
			CustomerID: 1,
			TokenType:  TokenAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				Audience:  []string{jwtAudience},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = i.ParseAccess(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := &Claims{
			CustomerID:       1,
			TokenType:        TokenAccess,
			RegisteredClaims: jwt.RegisteredClaims{Issuer: jwtIssuer, Audience: []string{jwtAudience}},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = i.ParseAccess(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned", func(t *testing.T) {
		claims := &Claims{
			CustomerID: 1,
			TokenType:  TokenAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    jwtIssuer,
				Audience:  []string{jwtAudience},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = i.ParseAccess(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := i.ParseAccess("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
