package validators

import (
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ProgressInput is the body of POST /api/learn/:lessonId/progress.
type ProgressInput struct {
	WatchedSec int  `json:"watched_sec" validate:"min=0"`
	Completed  bool `json:"completed"`
}

// UpdateProgress validates watch-time reports from the player.
func UpdateProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(ProgressInput)
		if err := c.BodyParser(input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
		if err := validate.Struct(input); err != nil {
			return utils.ValidationError(c, fieldErrors(err))
		}
		c.Locals("progressInput", input)
		return c.Next()
	}
}
