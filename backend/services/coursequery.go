package services

import (
	"strings"

	"project/backend/config"
	"project/backend/models"

	"gorm.io/gorm"
)

// CourseListQuery is the normalized, validated form of the course listing
// query string. Controllers never hand raw query parameters to the service;
// the validators package builds this struct.
type CourseListQuery struct {
	Page       int
	PageSize   int
	Sort       []SortRule
	CategoryID *uint
	Search     string
}

type CatalogService struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewCatalogService(db *gorm.DB, cfg *config.Config) *CatalogService {
	return &CatalogService{DB: db, Cfg: cfg}
}

// FindPaged returns one page of published courses matching the query, plus
// the total match count so callers can derive the page count. Filtering by
// category here is non-recursive; the category page uses
// CategoryService.CoursesInCategoryTree for the descendant-inclusive view.
// Pages past the end return an empty slice, not an error.
func (cs *CatalogService) FindPaged(q CourseListQuery) ([]models.Course, int64, error) {
	query := cs.DB.Model(&models.Course{}).
		Where("status = ?", models.CourseStatusPublished)

	if q.CategoryID != nil {
		query = query.Where("category_id = ?", *q.CategoryID)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(short_desc) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	for _, clause := range OrderClauses(q.Sort) {
		query = query.Order(clause)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = cs.Cfg.PageSize
	}

	var courses []models.Course
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// IncrementViews bumps the course view counter. Kept separate from the
// read-only enrichment path; only the detail page calls it.
func (cs *CatalogService) IncrementViews(courseID uint) error {
	return cs.DB.Model(&models.Course{}).
		Where("id = ?", courseID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}
