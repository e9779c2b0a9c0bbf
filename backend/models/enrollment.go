package models

import (
	"time"

	"gorm.io/gorm"
)

type Enrollment struct {
	gorm.Model
	UserID      uint      `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"user_id"`
	CourseID    uint      `gorm:"uniqueIndex:idx_enrollment_user_course;index;not null" json:"course_id"`
	// No column default: a default on a bool makes Create silently drop an
	// explicit false. Enroll sets Active itself.
	Active      bool      `json:"active"`
	PurchasedAt time.Time `json:"purchased_at"`
}

type Watchlist struct {
	gorm.Model
	UserID   uint `gorm:"uniqueIndex:idx_watchlist_user_course;not null" json:"user_id"`
	CourseID uint `gorm:"uniqueIndex:idx_watchlist_user_course;index;not null" json:"course_id"`
}
