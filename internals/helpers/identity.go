// internals/helpers/identity.go
package helper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// EncodeIdentity builds the JWT subject string for a role-tagged user id.
func EncodeIdentity(role string, id uint) string {
	return fmt.Sprintf("%s:%d", role, id)
}

// DecodeIdentity parses a "role:id" subject back into its numeric id.
// When expectedRole is non-empty the role segment must match it.
// Failures are authorization problems, never server errors.
func DecodeIdentity(subject, expectedRole string) (uint, error) {
	role, idStr, ok := strings.Cut(subject, ":")
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "invalid identity")
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "invalid identity")
	}
	if expectedRole != "" && role != expectedRole {
		return 0, fiber.NewError(fiber.StatusForbidden, expectedRole+" access only")
	}
	return uint(id), nil
}

// IdentityRole returns just the role segment, "" when the subject is malformed.
func IdentityRole(subject string) string {
	role, _, ok := strings.Cut(subject, ":")
	if !ok {
		return ""
	}
	return role
}
