package credentials

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigest(t *testing.T) {
	d1 := Digest("1234", "pepper")
	d2 := Digest("1234", "pepper")

	require.Equal(t, d1, d2)
	require.Len(t, d1, 64) // hex SHA-256

	// pepper and password both change the digest
	require.NotEqual(t, d1, Digest("1234", "other"))
	require.NotEqual(t, d1, Digest("4321", "pepper"))
}

func TestVerify(t *testing.T) {
	stored := Digest("1234", "pepper")

	require.True(t, Verify("1234", "pepper", stored))
	require.False(t, Verify("4321", "pepper", stored))
	require.False(t, Verify("1234", "other", stored))
	require.False(t, Verify("1234", "pepper", ""))
}
