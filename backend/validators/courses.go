package validators

import (
	"strconv"
	"strings"

	"project/backend/config"
	"project/backend/services"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
)

// CourseList normalizes the course listing query string into a typed
// services.CourseListQuery before it reaches any service code. The sort
// parameter may arrive once ("sort=a,b") or duplicated ("sort=a&sort=b");
// both collapse into one ordered rule list.
func CourseList(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := services.CourseListQuery{
			Page:     1,
			PageSize: cfg.PageSize,
			Search:   strings.TrimSpace(c.Query("q")),
		}

		if raw := c.Query("page"); raw != "" {
			page, err := strconv.Atoi(raw)
			if err != nil || page < 1 {
				return utils.ValidationError(c, map[string]string{
					"page": "Page must be a positive integer",
				})
			}
			q.Page = page
		}

		if raw := c.Query("category"); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil || id == 0 {
				return utils.ValidationError(c, map[string]string{
					"category": "Category must be a valid id",
				})
			}
			categoryID := uint(id)
			q.CategoryID = &categoryID
		}

		var sortParts []string
		for _, value := range c.Context().QueryArgs().PeekMulti("sort") {
			sortParts = append(sortParts, string(value))
		}
		q.Sort = services.ParseSortList(strings.Join(sortParts, ","))

		c.Locals("courseListQuery", q)
		return c.Next()
	}
}
