package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:                  "testsecret",
		PageSize:                   12,
		NewCourseWindowDays:        30,
		WeeklyBestsellerThreshold:  5,
		AllTimeBestsellerThreshold: 100,
		AutoCompletePercent:        95,
	}

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, utils.Migrate(db))
	t.Cleanup(func() { sqlDB.Close() })

	app := fiber.New()
	SetupRoutes(app, db, cfg)
	return &testEnv{app: app, db: db, cfg: cfg}
}

// newUser creates a user with the given role and returns their JWT.
func (env *testEnv) newUser(t *testing.T, username, role string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, env.db.Create(&user).Error)

	token, err := utils.GenerateJWTToken(user.ID, env.cfg)
	require.NoError(t, err)
	return user, token
}

func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*fiber.Map, int) {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(jsonData)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)

	var result fiber.Map
	json.NewDecoder(resp.Body).Decode(&result)
	return &result, resp.StatusCode
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	result, status := env.request(t, "POST", "/api/auth/register", "", fiber.Map{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, (*result)["token"])

	result, status = env.request(t, "POST", "/api/auth/login", "", fiber.Map{
		"username": "newuser",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, (*result)["token"])

	_, status = env.request(t, "POST", "/api/auth/login", "", fiber.Map{
		"username": "newuser",
		"password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

// setupCourse drives the instructor authoring flow and returns the course and
// lesson ids.
func setupCourse(t *testing.T, env *testEnv, instructorToken, adminToken string) (uint, uint) {
	result, status := env.request(t, "POST", "/api/admin/categories", adminToken, fiber.Map{
		"name": "Development", "slug": "development",
	})
	require.Equal(t, fiber.StatusCreated, status)
	categoryID := uint((*result)["data"].(map[string]interface{})["ID"].(float64))

	result, status = env.request(t, "POST", "/api/teach/courses/", instructorToken, fiber.Map{
		"title":       "Go From Scratch",
		"short_desc":  "Everything about Go",
		"category_id": categoryID,
		"price":       49.0,
	})
	require.Equal(t, fiber.StatusCreated, status)
	courseID := uint((*result)["data"].(map[string]interface{})["ID"].(float64))

	result, status = env.request(t, "POST", fmt.Sprintf("/api/teach/courses/%d/sections", courseID), instructorToken, fiber.Map{
		"title": "Getting Started",
	})
	require.Equal(t, fiber.StatusCreated, status)
	sectionID := uint((*result)["data"].(map[string]interface{})["ID"].(float64))

	result, status = env.request(t, "POST", fmt.Sprintf("/api/teach/courses/%d/sections/%d/lessons", courseID, sectionID), instructorToken, fiber.Map{
		"title":        "Installing Go",
		"duration_sec": 300,
	})
	require.Equal(t, fiber.StatusCreated, status)
	lessonID := uint((*result)["data"].(map[string]interface{})["ID"].(float64))

	_, status = env.request(t, "POST", fmt.Sprintf("/api/teach/courses/%d/publish", courseID), instructorToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	return courseID, lessonID
}

func TestCatalogEnrollLearnReviewFlow(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.newUser(t, "admin", models.RoleAdmin)
	_, instructorToken := env.newUser(t, "teacher", models.RoleInstructor)
	_, studentToken := env.newUser(t, "student", models.RoleUser)

	courseID, lessonID := setupCourse(t, env, instructorToken, adminToken)

	// The published course shows up in the catalog.
	result, status := env.request(t, "GET", "/api/courses?sort=newest", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, (*result)["total"])

	// Learning is gated until the student enrolls.
	_, status = env.request(t, "GET", fmt.Sprintf("/api/learn/%d", lessonID), studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	_, status = env.request(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", courseID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	// Enrolling again is success, not an error.
	_, status = env.request(t, "POST", fmt.Sprintf("/api/courses/%d/enroll", courseID), studentToken, nil)
	assert.Equal(t, fiber.StatusOK, status)

	// No watch-time reported yet: the player still loads, with zero progress.
	result, status = env.request(t, "GET", fmt.Sprintf("/api/learn/%d", lessonID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	lessonData := (*result)["data"].(map[string]interface{})
	assert.EqualValues(t, 0, lessonData["progress"].(map[string]interface{})["watched_sec"])

	// 290 of 300 seconds crosses the auto-complete threshold.
	result, status = env.request(t, "POST", fmt.Sprintf("/api/learn/%d/progress", lessonID), studentToken, fiber.Map{
		"watched_sec": 290,
	})
	require.Equal(t, fiber.StatusOK, status)
	progressData := (*result)["data"].(map[string]interface{})
	assert.Equal(t, true, progressData["completed"])

	result, status = env.request(t, "GET", fmt.Sprintf("/api/my/courses/%d/progress", courseID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	summary := (*result)["data"].(map[string]interface{})
	assert.EqualValues(t, 100, summary["percentage"])

	// Reviews require enrollment; the instructor has none.
	_, status = env.request(t, "POST", fmt.Sprintf("/api/courses/%d/reviews", courseID), instructorToken, fiber.Map{
		"rating": 5,
	})
	assert.Equal(t, fiber.StatusForbidden, status)

	_, status = env.request(t, "POST", fmt.Sprintf("/api/courses/%d/reviews", courseID), studentToken, fiber.Map{
		"rating": 6,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	_, status = env.request(t, "POST", fmt.Sprintf("/api/courses/%d/reviews", courseID), studentToken, fiber.Map{
		"rating":  5,
		"comment": "Great course",
	})
	require.Equal(t, fiber.StatusOK, status)

	result, status = env.request(t, "GET", fmt.Sprintf("/api/courses/%d", courseID), "", nil)
	require.Equal(t, fiber.StatusOK, status)
	detail := (*result)["data"].(map[string]interface{})
	stats := detail["stats"].(map[string]interface{})
	assert.Equal(t, "5.0", stats["avg_rating"])
	assert.EqualValues(t, 1, stats["total_reviews"])
}

func TestWatchlistRoutes(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.newUser(t, "admin", models.RoleAdmin)
	_, instructorToken := env.newUser(t, "teacher", models.RoleInstructor)
	_, studentToken := env.newUser(t, "student", models.RoleUser)

	courseID, _ := setupCourse(t, env, instructorToken, adminToken)

	_, status := env.request(t, "POST", fmt.Sprintf("/api/watchlist/%d", courseID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	result, status := env.request(t, "GET", "/api/watchlist/", studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, (*result)["data"], 1)

	_, status = env.request(t, "DELETE", fmt.Sprintf("/api/watchlist/%d", courseID), studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	result, status = env.request(t, "GET", "/api/watchlist/", studentToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, (*result)["data"], 0)
}

func TestAdminGuards(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.newUser(t, "admin", models.RoleAdmin)
	student, studentToken := env.newUser(t, "student", models.RoleUser)

	// Students cannot reach admin routes.
	_, status := env.request(t, "GET", "/api/admin/users", studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	// Admins can promote users.
	_, status = env.request(t, "PUT", fmt.Sprintf("/api/admin/users/%d/role", student.ID), adminToken, fiber.Map{
		"role": "instructor",
	})
	require.Equal(t, fiber.StatusOK, status)

	var reloaded models.User
	require.NoError(t, env.db.First(&reloaded, student.ID).Error)
	assert.Equal(t, models.RoleInstructor, reloaded.Role)
}

func TestCategoryPageSortParamForms(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.newUser(t, "admin", models.RoleAdmin)

	result, status := env.request(t, "POST", "/api/admin/categories", adminToken, fiber.Map{
		"name": "Development", "slug": "development",
	})
	require.Equal(t, fiber.StatusCreated, status)
	categoryID := uint((*result)["data"].(map[string]interface{})["ID"].(float64))

	cheap := models.Course{Title: "cheap", CategoryID: categoryID, Price: 10, RatingAvg: 4.5, Status: models.CourseStatusPublished}
	pricey := models.Course{Title: "pricey", CategoryID: categoryID, Price: 50, RatingAvg: 4.5, Status: models.CourseStatusPublished}
	require.NoError(t, env.db.Create(&cheap).Error)
	require.NoError(t, env.db.Create(&pricey).Error)

	titlesFor := func(target string) []string {
		result, status := env.request(t, "GET", target, "", nil)
		require.Equal(t, fiber.StatusOK, status)
		rows := (*result)["data"].(map[string]interface{})["courses"].([]interface{})
		titles := make([]string, len(rows))
		for i, row := range rows {
			titles[i] = row.(map[string]interface{})["title"].(string)
		}
		return titles
	}

	// One comma-separated value and repeated parameters must order the same.
	comma := titlesFor(fmt.Sprintf("/api/categories/%d?sort=rating_desc,price_asc", categoryID))
	repeated := titlesFor(fmt.Sprintf("/api/categories/%d?sort=rating_desc&sort=price_asc", categoryID))
	assert.Equal(t, []string{"cheap", "pricey"}, comma)
	assert.Equal(t, comma, repeated)
}

func TestCategoryDeleteGuards(t *testing.T) {
	env := newTestEnv(t)
	_, adminToken := env.newUser(t, "admin", models.RoleAdmin)

	result, status := env.request(t, "POST", "/api/admin/categories", adminToken, fiber.Map{
		"name": "Parent", "slug": "parent",
	})
	require.Equal(t, fiber.StatusCreated, status)
	parentID := uint((*result)["data"].(map[string]interface{})["ID"].(float64))

	_, status = env.request(t, "POST", "/api/admin/categories", adminToken, fiber.Map{
		"name": "Child", "slug": "child", "parent_id": parentID,
	})
	require.Equal(t, fiber.StatusCreated, status)

	// A category with children cannot be deleted.
	_, status = env.request(t, "DELETE", fmt.Sprintf("/api/admin/categories/%d", parentID), adminToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
