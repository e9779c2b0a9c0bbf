package models

import "gorm.io/gorm"

const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
	CourseStatusCompleted = "completed"
)

type Course struct {
	gorm.Model
	Title        string   `gorm:"not null" json:"title"`
	ShortDesc    string   `json:"short_desc"`
	Description  string   `json:"description"`
	Price        float64  `gorm:"default:0" json:"price"`
	SalePrice    *float64 `json:"sale_price"`
	RatingAvg    float64  `gorm:"default:0" json:"rating_avg"`   // derived cache, see services.ReviewService
	RatingCount  int      `gorm:"default:0" json:"rating_count"` // derived cache
	Views        int64    `gorm:"default:0" json:"views"`
	CategoryID   uint     `gorm:"index" json:"category_id"`
	InstructorID uint     `gorm:"index" json:"instructor_id"`
	Status       string   `gorm:"default:draft;index" json:"status"` // draft, published, completed
	CoverURL     string   `json:"cover_url"`
	Sections     []Section `json:"sections,omitempty"`
}

type Section struct {
	gorm.Model
	CourseID   uint     `gorm:"index;not null" json:"course_id"`
	Title      string   `gorm:"not null" json:"title"`
	OrderIndex int      `json:"order_index"`
	Lessons    []Lesson `json:"lessons,omitempty"`
}

type Lesson struct {
	gorm.Model
	SectionID   uint   `gorm:"index;not null" json:"section_id"`
	Title       string `gorm:"not null" json:"title"`
	VideoURL    string `json:"video_url"`
	IsPreview   bool   `gorm:"default:false" json:"is_preview"`
	DurationSec int    `gorm:"default:0" json:"duration_sec"`
	OrderIndex  int    `json:"order_index"`
}
