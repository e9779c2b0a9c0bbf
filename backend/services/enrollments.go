package services

import (
	"errors"
	"strings"
	"time"

	"project/backend/models"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	DB *gorm.DB
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{DB: db}
}

// isUniqueViolation matches the duplicate-key errors postgres and sqlite
// report for the (user_id, course_id) unique indexes.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

// Enroll creates (or reactivates) the caller's enrollment in a course.
// Idempotent: enrolling twice is success, not an error.
func (es *EnrollmentService) Enroll(userID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := es.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err == nil {
		if !enrollment.Active {
			enrollment.Active = true
			if err := es.DB.Save(&enrollment).Error; err != nil {
				return nil, err
			}
		}
		return &enrollment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment = models.Enrollment{
		UserID:      userID,
		CourseID:    courseID,
		Active:      true,
		PurchasedAt: time.Now(),
	}
	if err := es.DB.Create(&enrollment).Error; err != nil {
		if isUniqueViolation(err) {
			// Concurrent enroll beat us to it; fetch the winner.
			if ferr := es.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
				First(&enrollment).Error; ferr == nil {
				return &enrollment, nil
			}
		}
		return nil, err
	}
	return &enrollment, nil
}

// Unenroll deactivates the enrollment; the row is kept for purchase history.
func (es *EnrollmentService) Unenroll(userID, courseID uint) error {
	return es.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Update("active", false).Error
}

// IsEnrolled reports whether the user holds an active enrollment. The learn
// and review endpoints gate on this.
func (es *EnrollmentService) IsEnrolled(userID, courseID uint) (bool, error) {
	var count int64
	err := es.DB.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND active = ?", userID, courseID, true).
		Count(&count).Error
	return count > 0, err
}

// EnrolledCourses lists the user's active enrollments with course rows.
func (es *EnrollmentService) EnrolledCourses(userID uint) ([]models.Course, error) {
	var courses []models.Course
	err := es.DB.
		Select("courses.*").
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.user_id = ? AND enrollments.active = ?", userID, true).
		Order("enrollments.created_at DESC").
		Find(&courses).Error
	return courses, err
}

// AddToWatchlist is idempotent like Enroll.
func (es *EnrollmentService) AddToWatchlist(userID, courseID uint) error {
	var existing models.Watchlist
	err := es.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	entry := models.Watchlist{UserID: userID, CourseID: courseID}
	if err := es.DB.Create(&entry).Error; err != nil && !isUniqueViolation(err) {
		return err
	}
	return nil
}

func (es *EnrollmentService) RemoveFromWatchlist(userID, courseID uint) error {
	// Hard delete: a soft-deleted row would keep occupying the unique index
	// and block re-adding the course later.
	return es.DB.Unscoped().
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&models.Watchlist{}).Error
}

func (es *EnrollmentService) ListWatchlist(userID uint) ([]models.Course, error) {
	var courses []models.Course
	err := es.DB.
		Select("courses.*").
		Joins("JOIN watchlists ON watchlists.course_id = courses.id").
		Where("watchlists.user_id = ?", userID).
		Order("watchlists.created_at DESC").
		Find(&courses).Error
	return courses, err
}
