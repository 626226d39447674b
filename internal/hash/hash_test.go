package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("password")
	require.NoError(t, err)
	require.NotEmpty(t, hashed)
	require.NotEqual(t, "password", hashed)

	require.True(t, CheckPassword(hashed, "password"))
	require.False(t, CheckPassword(hashed, "wrong_password"))
}

func TestCheckPasswordDifferentHash(t *testing.T) {
	hashed, err := HashPassword("other_password")
	require.NoError(t, err)

	require.False(t, CheckPassword(hashed, "password"))
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	require.False(t, CheckPassword("not-a-bcrypt-hash", "password"))
	require.False(t, CheckPassword("", "password"))
	require.False(t, CheckPassword("$2a$broken", "password"))
}
