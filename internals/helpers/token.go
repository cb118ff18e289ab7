// internals/helpers/token.go
package helper

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"unihomework_backend/internals/configs"
)

// Locals keys set by the auth middleware.
const (
	LocIdentity = "identity" // raw "role:id" subject
	LocRole     = "role"
	LocUserID   = "user_id"
)

// GetRawAccessToken reads the bearer token from the Authorization header,
// falling back to the access_token cookie.
func GetRawAccessToken(c *fiber.Ctx) string {
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	return ""
}

// IssueAccessToken signs an HS256 token whose subject is the composite
// identity string, expiring after the configured number of seconds.
func IssueAccessToken(role string, id uint) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   EncodeIdentity(role, id),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(configs.JWTExpirySeconds) * time.Second)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(configs.JWTSecret))
}

// GetIdentityFromLocals returns the verified subject stored by the middleware.
func GetIdentityFromLocals(c *fiber.Ctx) (string, error) {
	v, ok := c.Locals(LocIdentity).(string)
	if !ok || v == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "missing identity")
	}
	return v, nil
}
