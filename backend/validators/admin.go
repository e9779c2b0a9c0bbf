package validators

import (
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// CategoryInput is the body for creating or updating a category.
type CategoryInput struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=100"`
	Slug     string `json:"slug" validate:"omitempty,min=2,max=100"`
	ParentID *uint  `json:"parent_id"`
}

// RoleInput is the body for an admin role change.
type RoleInput struct {
	Role string `json:"role" validate:"required,oneof=user instructor admin"`
}

// StatusInput is the body for an admin course status override.
type StatusInput struct {
	Status string `json:"status" validate:"required,oneof=draft published completed"`
}

func CategoryBody(create bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(CategoryInput)
		if err := c.BodyParser(input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
		if create && (input.Name == "" || input.Slug == "") {
			return utils.ValidationError(c, map[string]string{
				"name": "Name and slug are required",
			})
		}
		if err := validate.Struct(input); err != nil {
			return utils.ValidationError(c, fieldErrors(err))
		}
		c.Locals("categoryInput", input)
		return c.Next()
	}
}

func RoleBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(RoleInput)
		if err := c.BodyParser(input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
		if err := validate.Struct(input); err != nil {
			return utils.ValidationError(c, fieldErrors(err))
		}
		c.Locals("roleInput", input)
		return c.Next()
	}
}

func StatusBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(StatusInput)
		if err := c.BodyParser(input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
		if err := validate.Struct(input); err != nil {
			return utils.ValidationError(c, fieldErrors(err))
		}
		c.Locals("statusInput", input)
		return c.Next()
	}
}
