package models

import "gorm.io/gorm"

// Progress is created on the first watch-time report for a lesson. WatchedSec
// only moves forward (stale client reports are dropped) except on an explicit
// uncomplete, which resets it to 0.
type Progress struct {
	gorm.Model
	UserID     uint `gorm:"uniqueIndex:idx_progress_user_lesson;not null" json:"user_id"`
	LessonID   uint `gorm:"uniqueIndex:idx_progress_user_lesson;index;not null" json:"lesson_id"`
	WatchedSec int  `gorm:"default:0" json:"watched_sec"`
	Completed  bool `gorm:"default:false" json:"completed"`
}
