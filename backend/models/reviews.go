package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	UserID   uint   `gorm:"uniqueIndex:idx_review_user_course;not null" json:"user_id"`
	CourseID uint   `gorm:"uniqueIndex:idx_review_user_course;index;not null" json:"course_id"`
	Rating   int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment  string `gorm:"type:text" json:"comment"`
	UserName string `json:"user_name"`
}
