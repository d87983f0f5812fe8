package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"retail-bi/models"
	"retail-bi/utils"
)

// ErrNoClaims is returned by ExtractClaims on a request the JWT middleware has not seen.
var ErrNoClaims = errors.New("no authenticated user on request")

// NewJWTMiddleware validates the JWT token provided in the Authorization header
// against secret and stores the caller's id and normalized role in Locals.
func NewJWTMiddleware(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Missing or malformed JWT"})
		}

		claims := &models.JwtClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fiber.ErrUnauthorized
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid or expired JWT"})
		}

		role, ok := utils.ValidateAndNormalizeRole(claims.Role)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Unknown role in token"})
		}

		c.Locals("userID", claims.UserID)
		c.Locals("userRole", role)

		return c.Next()
	}
}

// ExtractClaims returns the caller set by the JWT middleware.
func ExtractClaims(c *fiber.Ctx) (string, models.Role, error) {
	role, ok := c.Locals("userRole").(models.Role)
	if !ok {
		return "", "", ErrNoClaims
	}
	userID, _ := c.Locals("userID").(string)
	return userID, role, nil
}

// ViewRequired only lets through callers whose role grants view.
func ViewRequired(view models.View) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, role, err := ExtractClaims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Authentication required"})
		}
		if !role.Can(view) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": string(role) + " role cannot access " + string(view)})
		}
		return c.Next()
	}
}

// RoleRequired only lets through callers holding one of roles.
func RoleRequired(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, role, err := ExtractClaims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Authentication required"})
		}
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Insufficient permissions"})
	}
}
