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

type LearnController struct {
	DB          *gorm.DB
	Cfg         *config.Config
	Progress    *services.ProgressService
	Enrollments *services.EnrollmentService
}

func NewLearnController(db *gorm.DB, cfg *config.Config) *LearnController {
	return &LearnController{
		DB:          db,
		Cfg:         cfg,
		Progress:    services.NewProgressService(db, cfg),
		Enrollments: services.NewEnrollmentService(db),
	}
}

// lessonCourseID resolves the course a lesson belongs to.
func (lc *LearnController) lessonCourseID(lessonID uint) (uint, error) {
	var section models.Section
	err := lc.DB.
		Select("sections.*").
		Joins("JOIN lessons ON lessons.section_id = sections.id").
		Where("lessons.id = ?", lessonID).
		First(&section).Error
	return section.CourseID, err
}

// GetLesson returns the lesson player data. Enrollment gates everything
// except preview lessons.
func (lc *LearnController) GetLesson(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := lc.DB.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	courseID, err := lc.lessonCourseID(lesson.ID)
	if err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	if !lesson.IsPreview {
		enrolled, err := lc.Enrollments.IsEnrolled(userID, courseID)
		if err != nil {
			return utils.InternalServerError(c, "Could not query database")
		}
		if !enrolled {
			return utils.Forbidden(c, "Enroll in the course to watch this lesson")
		}
	}

	// Absence is fine (zero progress); anything else is a real failure.
	var progress models.Progress
	if err := lc.DB.Where("user_id = ? AND lesson_id = ?", userID, lesson.ID).
		First(&progress).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.InternalServerError(c, "Could not query database")
	}

	courseProgress, err := lc.Progress.GetCourseProgress(userID, courseID)
	if err != nil {
		return utils.InternalServerError(c, "Failed to compute progress")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"lesson":          lesson,
		"progress":        progress,
		"course_progress": courseProgress,
	})
}

// UpdateProgress godoc
// @Summary Record a watch-time report for a lesson
// @Tags learn
// @Accept json
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /learn/{lessonId}/progress [post]
func (lc *LearnController) UpdateProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}
	input := c.Locals("progressInput").(*validators.ProgressInput)

	if ok, resp := lc.requireEnrollment(c, userID, uint(lessonID)); !ok {
		return resp
	}

	progress, err := lc.Progress.UpdateProgress(userID, uint(lessonID), input.WatchedSec, input.Completed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not save progress")
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

// Complete force-completes a lesson.
func (lc *LearnController) Complete(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	if ok, resp := lc.requireEnrollment(c, userID, uint(lessonID)); !ok {
		return resp
	}

	progress, err := lc.Progress.MarkCompleted(userID, uint(lessonID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not save progress")
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

// Uncomplete resets a lesson's progress to zero.
func (lc *LearnController) Uncomplete(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	if ok, resp := lc.requireEnrollment(c, userID, uint(lessonID)); !ok {
		return resp
	}

	progress, err := lc.Progress.MarkUncompleted(userID, uint(lessonID))
	if err != nil {
		return utils.InternalServerError(c, "Could not save progress")
	}
	if progress == nil {
		return utils.Success(c, fiber.StatusOK, fiber.Map{"reset": false})
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

// CourseProgress returns the caller's completion summary for a course.
func (lc *LearnController) CourseProgress(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	progress, err := lc.Progress.GetCourseProgress(userID, uint(courseID))
	if err != nil {
		return utils.InternalServerError(c, "Failed to compute progress")
	}
	return utils.Success(c, fiber.StatusOK, progress)
}

// requireEnrollment writes the error response itself when the caller is
// not allowed; the returned bool says whether the handler may continue.
func (lc *LearnController) requireEnrollment(c *fiber.Ctx, userID, lessonID uint) (bool, error) {
	courseID, err := lc.lessonCourseID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, utils.NotFound(c, "Lesson not found")
		}
		return false, utils.InternalServerError(c, "Could not query database")
	}

	enrolled, err := lc.Enrollments.IsEnrolled(userID, courseID)
	if err != nil {
		return false, utils.InternalServerError(c, "Could not query database")
	}
	if !enrolled {
		return false, utils.Forbidden(c, "Enroll in the course to track progress")
	}
	return true, nil
}
