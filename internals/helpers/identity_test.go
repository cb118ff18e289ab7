// internals/helpers/identity_test.go
package helper

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeIdentityRoundTrip(t *testing.T) {
	subject := EncodeIdentity("student", 42)
	assert.Equal(t, "student:42", subject)

	id, err := DecodeIdentity(subject, "student")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestDecodeIdentityAnyRole(t *testing.T) {
	id, err := DecodeIdentity("teacher:7", "")
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestDecodeIdentityRoleMismatch(t *testing.T) {
	_, err := DecodeIdentity("student:42", "teacher")
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusForbidden, fe.Code)
}

func TestDecodeIdentityMalformed(t *testing.T) {
	for _, subject := range []string{"", "student", "student:", "student:abc"} {
		_, err := DecodeIdentity(subject, "")
		require.Error(t, err, "subject %q", subject)
		fe, ok := err.(*fiber.Error)
		require.True(t, ok)
		assert.Equal(t, fiber.StatusUnauthorized, fe.Code, "subject %q", subject)
	}
}

func TestIdentityRole(t *testing.T) {
	assert.Equal(t, "admin", IdentityRole("admin:3"))
	assert.Equal(t, "", IdentityRole("no-separator"))
}
