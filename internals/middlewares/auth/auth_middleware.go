// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"unihomework_backend/internals/configs"
	helper "unihomework_backend/internals/helpers"
)

// AuthMiddleware verifies the bearer token and stores the decoded identity
// ("role:id" subject, role, numeric id) in Locals for downstream handlers.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := helper.GetRawAccessToken(c)
		if tokenString == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		if configs.JWTSecret == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "missing JWT secret")
		}

		claims := jwt.RegisteredClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(configs.JWTSecret), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		// Decode without a role filter; route guards narrow it down.
		id, err := helper.DecodeIdentity(claims.Subject, "")
		if err != nil {
			return err
		}

		c.Locals(helper.LocIdentity, claims.Subject)
		c.Locals(helper.LocRole, helper.IdentityRole(claims.Subject))
		c.Locals(helper.LocUserID, id)
		return c.Next()
	}
}
