package cryptox

import (
	"testing"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalt(t *testing.T) {
	a, err := NewSalt()
	require.NoError(t, err)
	b, err := NewSalt()
	require.NoError(t, err)

	assert.Len(t, a, SaltSize)
	assert.NotEqual(t, a, b)
}

func TestHashPassword_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")

	d1, err := HashPassword("pw1", salt)
	require.NoError(t, err)
	d2, err := HashPassword("pw1", salt)
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 32)
	assert.NotEqual(t, []byte("pw1"), d1)
}

func TestHashPassword_SaltChangesDigest(t *testing.T) {
	d1, err := HashPassword("pw1", []byte("salt-one--------"))
	require.NoError(t, err)
	d2, err := HashPassword("pw1", []byte("salt-two--------"))
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
}

func TestHashPassword_Errors(t *testing.T) {
	_, err := HashPassword("pw", nil)
	assert.ErrorIs(t, err, common.ErrHash)

	_, err = HashPassword(string([]byte{0xff, 0xfe}), []byte("salt"))
	assert.ErrorIs(t, err, common.ErrHash)
}

func TestVerifyPassword(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	digest, err := HashPassword("correct horse", salt)
	require.NoError(t, err)

	ok, err := VerifyPassword("correct horse", salt, digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong", salt, digest)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyPassword("correct horse", nil, digest)
	assert.ErrorIs(t, err, common.ErrHash)
}
