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

type WatchlistController struct {
	DB          *gorm.DB
	Cfg         *config.Config
	Enrollments *services.EnrollmentService
	Catalog     *services.CatalogService
}

func NewWatchlistController(db *gorm.DB, cfg *config.Config) *WatchlistController {
	return &WatchlistController{
		DB:          db,
		Cfg:         cfg,
		Enrollments: services.NewEnrollmentService(db),
		Catalog:     services.NewCatalogService(db, cfg),
	}
}

// Add puts a course on the caller's watchlist. Adding twice is a no-op.
func (wc *WatchlistController) Add(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	var course models.Course
	if err := wc.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Course not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if err := wc.Enrollments.AddToWatchlist(userID, course.ID); err != nil {
		return utils.InternalServerError(c, "Could not update watchlist")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"watchlisted": true})
}

// Remove takes a course off the caller's watchlist.
func (wc *WatchlistController) Remove(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	courseID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "Invalid course ID")
	}

	if err := wc.Enrollments.RemoveFromWatchlist(userID, uint(courseID)); err != nil {
		return utils.InternalServerError(c, "Could not update watchlist")
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"watchlisted": false})
}

// List returns the caller's watchlisted courses as enriched cards.
func (wc *WatchlistController) List(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	courses, err := wc.Enrollments.ListWatchlist(userID)
	if err != nil {
		return utils.InternalServerError(c, "Failed to fetch watchlist")
	}

	cards, err := wc.Catalog.Enrich(courses)
	if err != nil {
		return utils.InternalServerError(c, "Failed to enrich courses")
	}
	return utils.Success(c, fiber.StatusOK, cards)
}
