package validators

import (
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// ReviewInput is the body of POST /api/courses/:id/reviews.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=4000"`
}

// AddReview rejects malformed or out-of-range review bodies so the review
// service only ever sees 1..5 ratings.
func AddReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(ReviewInput)
		if err := c.BodyParser(input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
		if err := validate.Struct(input); err != nil {
			return utils.ValidationError(c, fieldErrors(err))
		}
		c.Locals("reviewInput", input)
		return c.Next()
	}
}
