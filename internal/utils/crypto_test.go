// internal/utils/crypto_test.go
package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandomString(t *testing.T) {
	a, err := GenerateRandomString(32)
	require.NoError(t, err)
	assert.Len(t, a, 32)

	b, err := GenerateRandomString(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHashStringIsDeterministic(t *testing.T) {
	assert.Equal(t, HashString("hello"), HashString("hello"))
	assert.NotEqual(t, HashString("hello"), HashString("world"))
	assert.Len(t, HashString("hello"), 64)
}

func TestGenerateAPIKey(t *testing.T) {
	key, err := GenerateAPIKey()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "lk_"))
	assert.Len(t, key, 35)
}

func TestValidateFileHash(t *testing.T) {
	data := []byte("portfolio image bytes")
	hash := HashString(string(data))

	assert.True(t, ValidateFileHash(data, hash))
	assert.False(t, ValidateFileHash([]byte("tampered"), hash))
}
