package services

import (
	"errors"
	"math"

	"project/backend/config"
	"project/backend/models"

	"gorm.io/gorm"
)

// CourseProgress is the per-user completion summary of one course.
type CourseProgress struct {
	Total      int64 `json:"total"`
	Completed  int64 `json:"completed"`
	Percentage int   `json:"percentage"`
}

type ProgressService struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewProgressService(db *gorm.DB, cfg *config.Config) *ProgressService {
	return &ProgressService{DB: db, Cfg: cfg}
}

// UpdateProgress records a watch-time report for a lesson. The lesson
// auto-completes once the watched share reaches the configured percentage of
// its duration (or the full duration); zero-duration lessons only complete
// via an explicit completed flag. Reports with a lower watched_sec than what
// is stored are dropped unless they complete the lesson, which keeps stale
// or out-of-order client reports from rolling progress back. Completed is
// sticky here; only MarkUncompleted clears it.
func (ps *ProgressService) UpdateProgress(userID, lessonID uint, watchedSec int, completed bool) (*models.Progress, error) {
	var lesson models.Lesson
	if err := ps.DB.First(&lesson, lessonID).Error; err != nil {
		return nil, err
	}

	if watchedSec < 0 {
		watchedSec = 0
	}

	shouldComplete := completed
	if lesson.DurationSec > 0 {
		watchedShare := float64(watchedSec) / float64(lesson.DurationSec) * 100
		if watchedShare >= float64(ps.Cfg.AutoCompletePercent) || watchedSec >= lesson.DurationSec {
			shouldComplete = true
		}
	}

	var progress models.Progress
	err := ps.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		progress = models.Progress{
			UserID:     userID,
			LessonID:   lessonID,
			WatchedSec: watchedSec,
			Completed:  shouldComplete,
		}
		if err := ps.DB.Create(&progress).Error; err != nil {
			return nil, err
		}
		return &progress, nil
	}

	if watchedSec <= progress.WatchedSec && !shouldComplete {
		return &progress, nil
	}

	progress.WatchedSec = watchedSec
	progress.Completed = progress.Completed || shouldComplete
	if err := ps.DB.Save(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// MarkCompleted force-completes a lesson at its full duration.
func (ps *ProgressService) MarkCompleted(userID, lessonID uint) (*models.Progress, error) {
	var lesson models.Lesson
	if err := ps.DB.First(&lesson, lessonID).Error; err != nil {
		return nil, err
	}
	return ps.UpdateProgress(userID, lessonID, lesson.DurationSec, true)
}

// MarkUncompleted fully resets a lesson: watched seconds back to zero,
// completed flag cleared. Missing progress rows are a no-op.
func (ps *ProgressService) MarkUncompleted(userID, lessonID uint) (*models.Progress, error) {
	var progress models.Progress
	err := ps.DB.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	progress.WatchedSec = 0
	progress.Completed = false
	if err := ps.DB.Save(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetCourseProgress aggregates a user's completion across every lesson of a
// course. A course with no lessons reports zero percent.
func (ps *ProgressService) GetCourseProgress(userID, courseID uint) (*CourseProgress, error) {
	var total int64
	if err := ps.DB.Model(&models.Lesson{}).
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id = ?", courseID).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var completed int64
	if err := ps.DB.Model(&models.Progress{}).
		Joins("JOIN lessons ON lessons.id = progresses.lesson_id").
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id = ? AND progresses.user_id = ? AND progresses.completed = ?", courseID, userID, true).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	result := &CourseProgress{Total: total, Completed: completed}
	if total > 0 {
		result.Percentage = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return result, nil
}
