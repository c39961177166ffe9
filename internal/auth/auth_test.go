package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenIssuer_IssueAndParse(t *testing.T) {
	t.Parallel()

	iss := NewTokenIssuer([]byte("super-secret"), "go-auth-backend", time.Hour)
	tok, err := iss.Issue("user-123", "alina")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "alina", claims.Username)
	assert.Equal(t, "go-auth-backend", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, time.Hour, iss.TTL())
}

func TestTokenIssuer_Expired(t *testing.T) {
	t.Parallel()

	iss := NewTokenIssuer([]byte("secret"), "", time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := iss.Issue("u1", "")
	require.NoError(t, err)

	iss.now = time.Now
	_, err = iss.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenIssuer([]byte("right"), "", time.Hour).Issue("u2", "")
	require.NoError(t, err)

	_, err = NewTokenIssuer([]byte("wrong"), "", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_WrongIssuer(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenIssuer([]byte("s"), "a", time.Hour).Issue("u3", "")
	require.NoError(t, err)

	_, err = NewTokenIssuer([]byte("s"), "b", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsOtherAlgorithmsAndGarbage(t *testing.T) {
	t.Parallel()

	iss := NewTokenIssuer([]byte("s"), "", time.Hour)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "u"})
	raw, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = iss.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = iss.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_MissingSubject(t *testing.T) {
	t.Parallel()

	iss := NewTokenIssuer([]byte("s"), "", time.Hour)
	tok, err := iss.Issue("", "")
	require.NoError(t, err)

	_, err = iss.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHasher(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	ok, err := h.Verify("s3cret-pass", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = h.Verify("x", "not-a-hash")
	assert.Error(t, err)

	_, err = h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestNewPasswordHasher_CostFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(99).cost)
	assert.Equal(t, 12, NewPasswordHasher(12).cost)
}
