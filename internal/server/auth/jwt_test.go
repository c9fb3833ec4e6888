package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIssuer(t *testing.T, secret string, validity time.Duration) *Issuer {
	t.Helper()
	i, err := NewIssuer([]byte(secret), validity)
	require.NoError(t, err)
	return i
}

func TestNewIssuer_EmptySecret(t *testing.T) {
	_, err := NewIssuer(nil, time.Hour)
	require.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	i := newIssuer(t, "super-secret", time.Hour)

	tok, err := i.Issue("user-123")
	require.NoError(t, err)

	got, err := i.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func TestIssue_NoExpiryWhenValidityZero(t *testing.T) {
	t.Parallel()

	i := newIssuer(t, "k", 0)
	tok, err := i.Issue("u1")
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)

	got, err := i.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", got)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	i := newIssuer(t, "secret", time.Minute)
	i.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, err := i.Issue("u1")
	require.NoError(t, err)

	i.now = time.Now
	_, err = i.Verify(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
	assert.ErrorIs(t, err, common.ErrAuthentication)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := newIssuer(t, "right-secret", time.Hour).Issue("u2")
	require.NoError(t, err)

	_, err = newIssuer(t, "wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_Tampered(t *testing.T) {
	t.Parallel()

	i := newIssuer(t, "k", time.Hour)
	tok, err := i.Issue("u1")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	other, err := i.Issue("someone-else")
	require.NoError(t, err)
	forged := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

	_, err = i.Verify(forged)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := newIssuer(t, "k", time.Hour).Verify("not-a-jwt")
	assert.ErrorIs(t, err, common.ErrMalformedToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{UserID: "u1"}).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = newIssuer(t, "k", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_EmptyUserID(t *testing.T) {
	t.Parallel()

	i := newIssuer(t, "k", time.Hour)
	tok, err := i.Issue("")
	require.NoError(t, err)

	_, err = i.Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
