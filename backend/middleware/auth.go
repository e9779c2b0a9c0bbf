package middleware

import (
	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthMiddleware verifies the JWT and stashes the user id in c.Locals("userId")
// so downstream handlers get a trusted, typed identity.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ExtractUserIDFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}
		c.Locals("userId", userID)
		return c.Next()
	}
}

// RoleMiddleware loads the authenticated user and rejects the request unless
// their role is one of the allowed ones. Admins pass every role gate.
func RoleMiddleware(db *gorm.DB, cfg *config.Config, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			var err error
			userID, err = utils.ExtractUserIDFromToken(c, cfg)
			if err != nil {
				return utils.Unauthorized(c, "Unauthorized")
			}
			c.Locals("userId", userID)
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		if user.Role == models.RoleAdmin {
			c.Locals("userRole", user.Role)
			return c.Next()
		}
		for _, role := range roles {
			if user.Role == role {
				c.Locals("userRole", user.Role)
				return c.Next()
			}
		}
		return utils.Forbidden(c, "Insufficient permissions")
	}
}

// AdminMiddleware restricts a route to admins.
func AdminMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return RoleMiddleware(db, cfg)
}

// InstructorMiddleware restricts a route to instructors (and admins).
func InstructorMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return RoleMiddleware(db, cfg, models.RoleInstructor)
}
