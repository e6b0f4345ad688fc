package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("S3curePass!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "S3curePass!", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt hash")

	assert.True(t, CheckPassword(hash, "S3curePass!"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
	assert.False(t, CheckPassword("not-a-hash", "S3curePass!"))
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := HashPassword("S3curePass!")
	require.NoError(t, err)
	second, err := HashPassword("S3curePass!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
