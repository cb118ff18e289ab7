package auth

import (
	"github.com/gofiber/fiber/v2"

	helper "unihomework_backend/internals/helpers"
)

// RequireRole rejects requests whose verified identity is not of the given
// role. Must run after AuthMiddleware.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject, err := helper.GetIdentityFromLocals(c)
		if err != nil {
			return err
		}
		if _, err := helper.DecodeIdentity(subject, role); err != nil {
			return err
		}
		return c.Next()
	}
}

// UserID returns the numeric id stored by AuthMiddleware.
func UserID(c *fiber.Ctx) (uint, error) {
	id, ok := c.Locals(helper.LocUserID).(uint)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "missing identity")
	}
	return id, nil
}
