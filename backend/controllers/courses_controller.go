package controllers

import (
	"errors"
	"strconv"

	"project/backend/config"
	"project/backend/models"
	"project/backend/services"
	"project/backend/utils"
	"project/backend/validators"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CoursesController struct {
	DB          *gorm.DB
	Cfg         *config.Config
	Catalog     *services.CatalogService
	Enrollments *services.EnrollmentService
	Reviews     *services.ReviewService
	Progress    *services.ProgressService
}

func NewCoursesController(db *gorm.DB, cfg *config.Config) *CoursesController {
	return &CoursesController{
		DB:          db,
		Cfg:         cfg,
		Catalog:     services.NewCatalogService(db, cfg),
		Enrollments: services.NewEnrollmentService(db),
		Reviews:     services.NewReviewService(db),
		Progress:    services.NewProgressService(db, cfg),
	}
}

// List godoc
// @Summary List published courses
// @Description Paged course catalog with search, category filter and multi-key sort
// @Tags courses
// @Produce json
// @Param page query int false "1-based page"
// @Param sort query string false "comma-separated sort tokens"
// @Param category query int false "category id (non-recursive)"
// @Param q query string false "search over title and short description"
// @Success 200 {object} utils.PaginatedResponse
// @Router /courses [get]
func (cc *CoursesController) List(c *fiber.Ctx) error {
	query := c.Locals("courseListQuery").(services.CourseListQuery)

	courses, total, err := cc.Catalog.FindPaged(query)
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch courses")
	}

	cards, err := cc.Catalog.Enrich(courses)
	if err != nil {
		return utils.InternalServerError(c, "Failed to enrich courses")
	}

	return utils.Paginate(c, cards, total, query.Page, query.PageSize)
}

// Detail godoc
// @Summary Course detail page data
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /courses/{id} [get]
func (cc *CoursesController) Detail(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	err = cc.DB.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("sections.order_index ASC")
	}).Preload("Sections.Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("lessons.order_index ASC")
	}).First(&course, courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	// Explicit write, separate from the read-only enrichment below.
	if err := cc.Catalog.IncrementViews(course.ID); err != nil {
		return utils.InternalServerError(c, "Could not update view counter")
	}

	cards, err := cc.Catalog.Enrich([]models.Course{course})
	if err != nil {
		return utils.InternalServerError(c, "Failed to enrich course")
	}

	stats, err := cc.Reviews.GetCourseStats(course.ID)
	if err != nil {
		return utils.InternalServerError(c, "Failed to compute review stats")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"course": cards[0],
		"stats":  stats,
	})
}

// Enroll godoc
// @Summary Enroll the authenticated user in a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/enroll [post]
func (cc *CoursesController) Enroll(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := cc.DB.Where("status = ?", models.CourseStatusPublished).
		First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	enrollment, err := cc.Enrollments.Enroll(userID, course.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not enroll")
	}
	return utils.Success(c, fiber.StatusOK, enrollment)
}

// Unenroll deactivates the caller's enrollment.
func (cc *CoursesController) Unenroll(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	if err := cc.Enrollments.Unenroll(userID, uint(courseID)); err != nil {
		return utils.InternalServerError(c, "Could not unenroll")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"unenrolled": true})
}

// MyCourses lists the caller's enrolled courses with per-course completion.
func (cc *CoursesController) MyCourses(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	courses, err := cc.Enrollments.EnrolledCourses(userID)
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch courses")
	}

	result := make([]fiber.Map, 0, len(courses))
	for _, course := range courses {
		progress, err := cc.Progress.GetCourseProgress(userID, course.ID)
		if err != nil {
			return utils.InternalServerError(c, "Failed to compute progress")
		}
		result = append(result, fiber.Map{
			"course":   course,
			"progress": progress,
		})
	}
	return utils.Success(c, fiber.StatusOK, result)
}

// AddReview lets an enrolled user rate a course. Resubmitting replaces the
// previous review.
func (cc *CoursesController) AddReview(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	input := c.Locals("reviewInput").(*validators.ReviewInput)

	enrolled, err := cc.Enrollments.IsEnrolled(userID, uint(courseID))
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}
	if !enrolled {
		return utils.Forbidden(c, "Only enrolled users can review a course")
	}

	var user models.User
	if err := cc.DB.First(&user, userID).Error; err != nil {
		return utils.NotFound(c, "User not found")
	}

	review, err := cc.Reviews.AddReview(userID, uint(courseID), input.Rating, input.Comment, user.Username)
	if err != nil {
		return utils.InternalServerError(c, "Could not save review")
	}
	return utils.Success(c, fiber.StatusOK, review)
}

// ListReviews returns a course's reviews with the aggregated stats.
func (cc *CoursesController) ListReviews(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	reviews, err := cc.Reviews.ListReviews(uint(courseID))
	if err != nil {
		return utils.InternalServerError(c, "Could not fetch reviews")
	}
	stats, err := cc.Reviews.GetCourseStats(uint(courseID))
	if err != nil {
		return utils.InternalServerError(c, "Failed to compute review stats")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"reviews": reviews,
		"stats":   stats,
	})
}

// DeleteReview removes the caller's own review.
func (cc *CoursesController) DeleteReview(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	if err := cc.Reviews.DeleteReview(userID, uint(courseID)); err != nil {
		return utils.InternalServerError(c, "Could not delete review")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
