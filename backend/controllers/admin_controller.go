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

type AdminController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{DB: db, Cfg: cfg}
}

// ListUsers returns all users, newest first.
func (ac *AdminController) ListUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := ac.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch users")
	}
	return utils.Success(c, fiber.StatusOK, users)
}

// UpdateUserRole changes a user's role.
func (ac *AdminController) UpdateUserRole(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}
	input := c.Locals("roleInput").(*validators.RoleInput)

	var user models.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "User not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	user.Role = input.Role
	if err := ac.DB.Save(&user).Error; err != nil {
		return utils.InternalServerError(c, "Could not update user")
	}
	return utils.Success(c, fiber.StatusOK, user)
}

// DeleteUser removes a user account.
func (ac *AdminController) DeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	if err := ac.DB.Delete(&models.User{}, userID).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete user")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// CreateCategory adds a category. The parent, when given, must exist.
func (ac *AdminController) CreateCategory(c *fiber.Ctx) error {
	input := c.Locals("categoryInput").(*validators.CategoryInput)

	if input.ParentID != nil {
		var parent models.Category
		if err := ac.DB.First(&parent, *input.ParentID).Error; err != nil {
			return utils.BadRequest(c, "Unknown parent category")
		}
	}

	category := models.Category{
		Name:     input.Name,
		Slug:     input.Slug,
		ParentID: input.ParentID,
	}
	if err := ac.DB.Create(&category).Error; err != nil {
		return utils.BadRequest(c, "Could not create category")
	}
	return utils.Success(c, fiber.StatusCreated, category)
}

// UpdateCategory edits name/slug/parent. Re-parenting a category under itself
// is rejected outright; deeper cycles in pre-existing data are tolerated by
// the tree builder.
func (ac *AdminController) UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid category ID")
	}
	input := c.Locals("categoryInput").(*validators.CategoryInput)

	var category models.Category
	if err := ac.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	if input.Slug != "" {
		category.Slug = input.Slug
	}
	if input.ParentID != nil {
		if *input.ParentID == category.ID {
			return utils.BadRequest(c, "A category cannot be its own parent")
		}
		var parent models.Category
		if err := ac.DB.First(&parent, *input.ParentID).Error; err != nil {
			return utils.BadRequest(c, "Unknown parent category")
		}
		category.ParentID = input.ParentID
	}

	if err := ac.DB.Save(&category).Error; err != nil {
		return utils.InternalServerError(c, "Could not update category")
	}
	return utils.Success(c, fiber.StatusOK, category)
}

// DeleteCategory refuses to delete a category that still has child
// categories or courses.
func (ac *AdminController) DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid category ID")
	}

	var category models.Category
	if err := ac.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	var children int64
	ac.DB.Model(&models.Category{}).Where("parent_id = ?", category.ID).Count(&children)
	if children > 0 {
		return utils.BadRequest(c, "Category still has child categories")
	}

	var courses int64
	ac.DB.Model(&models.Course{}).Where("category_id = ?", category.ID).Count(&courses)
	if courses > 0 {
		return utils.BadRequest(c, "Category still has courses")
	}

	if err := ac.DB.Delete(&category).Error; err != nil {
		return utils.InternalServerError(c, "Could not delete category")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

// ListCourses returns every course regardless of status.
func (ac *AdminController) ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := ac.DB.Order("created_at DESC").Find(&courses).Error; err != nil {
		return utils.InternalServerError(c, "Failed to fetch courses")
	}
	return utils.Success(c, fiber.StatusOK, courses)
}

// UpdateCourseStatus overrides a course's status (e.g. unpublishing a
// reported course).
func (ac *AdminController) UpdateCourseStatus(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}
	input := c.Locals("statusInput").(*validators.StatusInput)

	var course models.Course
	if err := ac.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	course.Status = input.Status
	if err := ac.DB.Save(&course).Error; err != nil {
		return utils.InternalServerError(c, "Could not update course")
	}
	return utils.Success(c, fiber.StatusOK, course)
}

// DeleteCourse removes a course with its outline.
func (ac *AdminController) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := ac.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	err = ac.DB.Transaction(func(tx *gorm.DB) error {
		var sectionIDs []uint
		if err := tx.Model(&models.Section{}).Where("course_id = ?", course.ID).
			Pluck("id", &sectionIDs).Error; err != nil {
			return err
		}
		if len(sectionIDs) > 0 {
			if err := tx.Where("section_id IN ?", sectionIDs).Delete(&models.Lesson{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", course.ID).Delete(&models.Section{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&course).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not delete course")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}
