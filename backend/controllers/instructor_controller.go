package controllers

import (
	"errors"
	"strconv"

	"project/backend/config"
	"project/backend/models"
	"project/backend/utils"
	"project/backend/validators"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InstructorController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewInstructorController(db *gorm.DB, cfg *config.Config) *InstructorController {
	return &InstructorController{DB: db, Cfg: cfg}
}

// ownedCourse loads a course and checks the caller teaches it. Admins may
// edit any course.
func (ic *InstructorController) ownedCourse(c *fiber.Ctx, courseID int) (*models.Course, error) {
	userID := c.Locals("userId").(uint)
	role, _ := c.Locals("userRole").(string)

	var course models.Course
	if err := ic.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound(c, "Course not found")
		}
		return nil, utils.InternalServerError(c, "Could not query database")
	}

	if course.InstructorID != userID && role != models.RoleAdmin {
		return nil, utils.Forbidden(c, "You don't have permission to edit this course")
	}
	return &course, nil
}

// MyCourses lists the courses the caller teaches, drafts included.
func (ic *InstructorController) MyCourses(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	var courses []models.Course
	if err := ic.DB.Where("instructor_id = ?", userID).
		Order("created_at DESC").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch courses")
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

// CreateCourse creates a new draft course owned by the caller.
func (ic *InstructorController) CreateCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	input := c.Locals("courseInput").(*validators.CourseInput)

	var category models.Category
	if err := ic.DB.First(&category, input.CategoryID).Error; err != nil {
		return utils.BadRequest(c, "Unknown category")
	}

	course := models.Course{
		Title:        input.Title,
		ShortDesc:    input.ShortDesc,
		Description:  input.Description,
		CategoryID:   category.ID,
		InstructorID: userID,
		Status:       models.CourseStatusDraft,
		CoverURL:     input.CoverURL,
		SalePrice:    input.SalePrice,
	}
	if input.Price != nil {
		course.Price = *input.Price
	}

	if err := ic.DB.Create(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not create course")
	}
	return utils.Success(c, fiber.StatusCreated, course)
}

// UpdateCourse edits course fields; empty fields keep their stored value.
func (ic *InstructorController) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, ferr := ic.ownedCourse(c, courseID)
	if course == nil {
		return ferr
	}
	input := c.Locals("courseInput").(*validators.CourseInput)

	if input.Title != "" {
		course.Title = input.Title
	}
	if input.ShortDesc != "" {
		course.ShortDesc = input.ShortDesc
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Price != nil {
		course.Price = *input.Price
	}
	if input.SalePrice != nil {
		course.SalePrice = input.SalePrice
	}
	if input.CoverURL != "" {
		course.CoverURL = input.CoverURL
	}
	if input.CategoryID != 0 {
		var category models.Category
		if err := ic.DB.First(&category, input.CategoryID).Error; err != nil {
			return utils.BadRequest(c, "Unknown category")
		}
		course.CategoryID = category.ID
	}

	if err := ic.DB.Save(course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}
	return utils.Success(c, fiber.StatusOK, course)
}

// Publish moves a draft course into the public catalog.
func (ic *InstructorController) Publish(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, ferr := ic.ownedCourse(c, courseID)
	if course == nil {
		return ferr
	}

	var lessons int64
	ic.DB.Model(&models.Lesson{}).
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id = ?", course.ID).
		Count(&lessons)
	if lessons == 0 {
		return utils.BadRequest(c, "A course needs at least one lesson before publishing")
	}

	course.Status = models.CourseStatusPublished
	if err := ic.DB.Save(course).Error; err != nil {
		return utils.InternalServerError(c, "Could not publish course")
	}
	return utils.Success(c, fiber.StatusOK, course)
}

// AddSection appends a section to the course outline. New sections land at
// the end of the current order.
func (ic *InstructorController) AddSection(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, ferr := ic.ownedCourse(c, courseID)
	if course == nil {
		return ferr
	}
	input := c.Locals("sectionInput").(*validators.SectionInput)

	section := models.Section{
		CourseID: course.ID,
		Title:    input.Title,
	}
	if input.OrderIndex != nil {
		section.OrderIndex = *input.OrderIndex
	} else {
		var count int64
		ic.DB.Model(&models.Section{}).Where("course_id = ?", course.ID).Count(&count)
		section.OrderIndex = int(count) + 1
	}

	if err := ic.DB.Create(&section).Error; err != nil {
		return utils.InternalServerError(c, "Could not create section")
	}
	return utils.Success(c, fiber.StatusCreated, section)
}

// UpdateSection edits a section's title or position.
func (ic *InstructorController) UpdateSection(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, ferr := ic.ownedCourse(c, courseID)
	if course == nil {
		return ferr
	}

	sectionID, err := strconv.Atoi(c.Params("sectionId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid section ID")
	}
	input := c.Locals("sectionInput").(*validators.SectionInput)

	var section models.Section
	if err := ic.DB.Where("id = ? AND course_id = ?", sectionID, course.ID).
		First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Section not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Title != "" {
		section.Title = input.Title
	}
	if input.OrderIndex != nil {
		section.OrderIndex = *input.OrderIndex
	}

	if err := ic.DB.Save(&section).Error; err != nil {
		return utils.InternalServerError(c, "Could not update section")
	}
	return utils.Success(c, fiber.StatusOK, section)
}

// DeleteSection removes a section and its lessons.
func (ic *InstructorController) DeleteSection(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, ferr := ic.ownedCourse(c, courseID)
	if course == nil {
		return ferr
	}

	sectionID, err := strconv.Atoi(c.Params("sectionId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid section ID")
	}

	var section models.Section
	if err := ic.DB.Where("id = ? AND course_id = ?", sectionID, course.ID).
		First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Section not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err = ic.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", section.ID).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		return tx.Delete(&section).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete section")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// AddLesson appends a lesson to a section of the caller's course.
func (ic *InstructorController) AddLesson(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, ferr := ic.ownedCourse(c, courseID)
	if course == nil {
		return ferr
	}

	sectionID, err := strconv.Atoi(c.Params("sectionId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid section ID")
	}
	input := c.Locals("lessonInput").(*validators.LessonInput)

	var section models.Section
	if err := ic.DB.Where("id = ? AND course_id = ?", sectionID, course.ID).
		First(&section).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Section not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	lesson := models.Lesson{
		SectionID: section.ID,
		Title:     input.Title,
		VideoURL:  input.VideoURL,
	}
	if input.IsPreview != nil {
		lesson.IsPreview = *input.IsPreview
	}
	if input.DurationSec != nil {
		lesson.DurationSec = *input.DurationSec
	}
	if input.OrderIndex != nil {
		lesson.OrderIndex = *input.OrderIndex
	} else {
		var count int64
		ic.DB.Model(&models.Lesson{}).Where("section_id = ?", section.ID).Count(&count)
		lesson.OrderIndex = int(count) + 1
	}

	if err := ic.DB.Create(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not create lesson")
	}
	return utils.Success(c, fiber.StatusCreated, lesson)
}

// UpdateLesson edits a lesson of the caller's course.
func (ic *InstructorController) UpdateLesson(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, ferr := ic.ownedCourse(c, courseID)
	if course == nil {
		return ferr
	}

	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}
	input := c.Locals("lessonInput").(*validators.LessonInput)

	var lesson models.Lesson
	if err := ic.DB.
		Select("lessons.*").
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("lessons.id = ? AND sections.course_id = ?", lessonID, course.ID).
		First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Title != "" {
		lesson.Title = input.Title
	}
	if input.VideoURL != "" {
		lesson.VideoURL = input.VideoURL
	}
	if input.IsPreview != nil {
		lesson.IsPreview = *input.IsPreview
	}
	if input.DurationSec != nil {
		lesson.DurationSec = *input.DurationSec
	}
	if input.OrderIndex != nil {
		lesson.OrderIndex = *input.OrderIndex
	}

	if err := ic.DB.Save(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not update lesson")
	}
	return utils.Success(c, fiber.StatusOK, lesson)
}

// DeleteLesson removes a lesson from the caller's course.
func (ic *InstructorController) DeleteLesson(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	course, ferr := ic.ownedCourse(c, courseID)
	if course == nil {
		return ferr
	}

	lessonID, err := strconv.Atoi(c.Params("lessonId"))
	if err != nil {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := ic.DB.
		Select("lessons.*").
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("lessons.id = ? AND sections.course_id = ?", lessonID, course.ID).
		First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := ic.DB.Delete(&lesson).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete lesson")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
