package controllers

import (
	"errors"
	"strconv"

	"project/backend/config"
	"project/backend/models"
	"project/backend/services"
	"project/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoriesController struct {
	DB         *gorm.DB
	Cfg        *config.Config
	Categories *services.CategoryService
	Catalog    *services.CatalogService
}

func NewCategoriesController(db *gorm.DB, cfg *config.Config) *CategoriesController {
	return &CategoriesController{
		DB:         db,
		Cfg:        cfg,
		Categories: services.NewCategoryService(db),
		Catalog:    services.NewCatalogService(db, cfg),
	}
}

// Tree returns the full category forest with per-node course counts.
func (cc *CategoriesController) Tree(c *fiber.Ctx) error {
	tree, err := cc.Categories.Tree()
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch categories")
	}
	return utils.Success(c, fiber.StatusOK, tree)
}

// Courses returns the category page: the category itself plus a paged listing
// of courses in the category or any of its descendants.
func (cc *CategoriesController) Courses(c *fiber.Ctx) error {
	categoryID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid category ID")
	}

	var category models.Category
	if err := cc.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Category not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	// Same normalized query as the main listing, so sort and page behave
	// identically on both surfaces. The category filter is the path param.
	query := c.Locals("courseListQuery").(services.CourseListQuery)

	courses, total, err := cc.Categories.CoursesInCategoryTree(category.ID, query.Page, query.PageSize, query.Sort)
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch courses")
	}

	cards, err := cc.Catalog.Enrich(courses)
	if err != nil {
		return utils.InternalServerError(c, "Failed to enrich courses")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"category": category,
		"courses":  cards,
	}, fiber.Map{
		"total":    total,
		"page":     query.Page,
		"pageSize": query.PageSize,
	})
}
