package validators

import (
	"net/http/httptest"
	"testing"

	"project/backend/config"
	"project/backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listQueryFor(t *testing.T, target string) (services.CourseListQuery, int) {
	t.Helper()

	cfg := &config.Config{PageSize: 12}
	var captured services.CourseListQuery
	var hit bool

	app := fiber.New()
	app.Get("/courses", CourseList(cfg), func(c *fiber.Ctx) error {
		captured = c.Locals("courseListQuery").(services.CourseListQuery)
		hit = true
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	if !hit {
		return services.CourseListQuery{}, resp.StatusCode
	}
	return captured, resp.StatusCode
}

func TestCourseListDefaults(t *testing.T) {
	q, status := listQueryFor(t, "/courses")
	require.Equal(t, fiber.StatusOK, status)

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 12, q.PageSize)
	assert.Nil(t, q.CategoryID)
	assert.Empty(t, q.Search)
	assert.Equal(t, []services.SortRule{{Field: services.SortFieldRating, Direction: services.SortDesc}}, q.Sort)
}

func TestCourseListNormalizesDuplicatedSortParam(t *testing.T) {
	// sort may arrive as one comma-separated value or as repeated parameters;
	// both collapse into the same ordered rule list.
	q1, status := listQueryFor(t, "/courses?sort=rating_desc,price_asc")
	require.Equal(t, fiber.StatusOK, status)
	q2, status := listQueryFor(t, "/courses?sort=rating_desc&sort=price_asc")
	require.Equal(t, fiber.StatusOK, status)

	assert.Equal(t, q1.Sort, q2.Sort)
	assert.Equal(t, []services.SortRule{
		{Field: services.SortFieldRating, Direction: services.SortDesc},
		{Field: services.SortFieldPrice, Direction: services.SortAsc},
	}, q1.Sort)
}

func TestCourseListRejectsBadPage(t *testing.T) {
	_, status := listQueryFor(t, "/courses?page=0")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	_, status = listQueryFor(t, "/courses?page=abc")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestCourseListParsesFilters(t *testing.T) {
	q, status := listQueryFor(t, "/courses?page=3&category=7&q=%20rust%20")
	require.Equal(t, fiber.StatusOK, status)

	assert.Equal(t, 3, q.Page)
	require.NotNil(t, q.CategoryID)
	assert.EqualValues(t, 7, *q.CategoryID)
	assert.Equal(t, "rust", q.Search)
}
