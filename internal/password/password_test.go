package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "authstore/internal/errors"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Password1")
	require.NoError(t, err)
	assert.NotEqual(t, "Password1", hash)

	ok, err := Verify("Password1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("Password2", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHash_Salted(t *testing.T) {
	first, err := Hash("Password1")
	require.NoError(t, err)
	second, err := Hash("Password1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerify_MalformedHashIsCryptoError(t *testing.T) {
	ok, err := Verify("Password1", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.True(t, apperrors.IsKind(err, apperrors.KindCrypto))
}

func TestRandToken(t *testing.T) {
	for _, n := range []int{0, 1, 32, 64} {
		token, err := RandToken(n)
		require.NoError(t, err)
		assert.Len(t, token, n)
		for _, c := range token {
			assert.True(t, strings.ContainsRune(tokenAlphabet, c))
		}
	}
}

func TestRandToken_Distinct(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		token, err := RandToken(32)
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}
