package validators

import (
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// CourseInput is the body for creating or updating a course. Update requests
// may leave fields empty to keep the stored value.
type CourseInput struct {
	Title       string   `json:"title" validate:"omitempty,min=3,max=200"`
	ShortDesc   string   `json:"short_desc" validate:"max=500"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
	SalePrice   *float64 `json:"sale_price" validate:"omitempty,min=0"`
	CategoryID  uint     `json:"category_id"`
	CoverURL    string   `json:"cover_url" validate:"omitempty,url"`
}

// SectionInput is the body for creating or updating a section.
type SectionInput struct {
	Title      string `json:"title" validate:"omitempty,min=1,max=200"`
	OrderIndex *int   `json:"order_index"`
}

// LessonInput is the body for creating or updating a lesson.
type LessonInput struct {
	Title       string `json:"title" validate:"omitempty,min=1,max=200"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
	IsPreview   *bool  `json:"is_preview"`
	DurationSec *int   `json:"duration_sec" validate:"omitempty,min=0"`
	OrderIndex  *int   `json:"order_index"`
}

func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(CourseInput)
		if err := c.BodyParser(input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
		if input.Title == "" {
			return utils.ValidationError(c, map[string]string{"title": "Title is required"})
		}
		if input.CategoryID == 0 {
			return utils.ValidationError(c, map[string]string{"category_id": "Category is required"})
		}
		if err := validate.Struct(input); err != nil {
			return utils.ValidationError(c, fieldErrors(err))
		}
		c.Locals("courseInput", input)
		return c.Next()
	}
}

func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(CourseInput)
		if err := c.BodyParser(input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
		if err := validate.Struct(input); err != nil {
			return utils.ValidationError(c, fieldErrors(err))
		}
		c.Locals("courseInput", input)
		return c.Next()
	}
}

func SectionBody(create bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(SectionInput)
		if err := c.BodyParser(input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
		if create && input.Title == "" {
			return utils.ValidationError(c, map[string]string{"title": "Title is required"})
		}
		if err := validate.Struct(input); err != nil {
			return utils.ValidationError(c, fieldErrors(err))
		}
		c.Locals("sectionInput", input)
		return c.Next()
	}
}

func LessonBody(create bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(LessonInput)
		if err := c.BodyParser(input); err != nil {
			return utils.BadRequest(c, "Cannot parse JSON")
		}
		if create && input.Title == "" {
			return utils.ValidationError(c, map[string]string{"title": "Title is required"})
		}
		if err := validate.Struct(input); err != nil {
			return utils.ValidationError(c, fieldErrors(err))
		}
		c.Locals("lessonInput", input)
		return c.Next()
	}
}
