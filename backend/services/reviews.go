package services

import (
	"errors"
	"fmt"
	"math"

	"project/backend/models"

	"gorm.io/gorm"
)

// CourseStats is the aggregated review picture of one course.
type CourseStats struct {
	AvgRating          string        `json:"avg_rating"`
	TotalReviews       int64         `json:"total_reviews"`
	RatingDistribution map[int]int64 `json:"rating_distribution"`
}

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

// GetCourseStats computes the rating average and 1..5 distribution from the
// raw review rows. A course without reviews reports "0.0" and empty buckets.
// Ratings outside 1..5 are filtered upstream; if one slips through it simply
// lands in no bucket.
func (rs *ReviewService) GetCourseStats(courseID uint) (*CourseStats, error) {
	stats := &CourseStats{
		AvgRating:          "0.0",
		RatingDistribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	type ratingRow struct {
		Rating int
		Count  int64
	}
	var rows []ratingRow
	if err := rs.DB.Model(&models.Review{}).
		Select("rating, COUNT(*) as count").
		Where("course_id = ?", courseID).
		Group("rating").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	var sum int64
	for _, row := range rows {
		stats.TotalReviews += row.Count
		if row.Rating >= 1 && row.Rating <= 5 {
			stats.RatingDistribution[row.Rating] = row.Count
			sum += int64(row.Rating) * row.Count
		}
	}

	if stats.TotalReviews > 0 {
		avg := float64(sum) / float64(stats.TotalReviews)
		stats.AvgRating = fmt.Sprintf("%.1f", math.Round(avg*10)/10)
	}
	return stats, nil
}

// ListReviews returns the reviews of a course, newest first.
func (rs *ReviewService) ListReviews(courseID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := rs.DB.Where("course_id = ?", courseID).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error
	return reviews, err
}

// AddReview writes or replaces the caller's review of a course and recomputes
// the course's cached rating_avg/rating_count in the same transaction, so the
// cache can never drift from the review set on this path. One review per
// (user, course): resubmitting edits the existing row, backed by a unique
// index.
func (rs *ReviewService) AddReview(userID, courseID uint, rating int, comment, userName string) (*models.Review, error) {
	var review models.Review
	err := rs.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&review).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			review = models.Review{
				UserID:   userID,
				CourseID: courseID,
				Rating:   rating,
				Comment:  comment,
				UserName: userName,
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
		} else {
			review.Rating = rating
			review.Comment = comment
			if err := tx.Save(&review).Error; err != nil {
				return err
			}
		}
		return recomputeRatingCache(tx, courseID)
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes a user's review and refreshes the course cache.
func (rs *ReviewService) DeleteReview(userID, courseID uint) error {
	return rs.DB.Transaction(func(tx *gorm.DB) error {
		// Hard delete so the (user_id, course_id) unique index does not keep
		// a soft-deleted row that would block a later re-review.
		if err := tx.Unscoped().
			Where("user_id = ? AND course_id = ?", userID, courseID).
			Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return recomputeRatingCache(tx, courseID)
	})
}

// RecomputeRatingCache refreshes the derived rating columns of one course
// from its review rows. The cron reconciliation job also uses this for
// courses whose cache drifted (e.g. reviews removed out of band).
func (rs *ReviewService) RecomputeRatingCache(courseID uint) error {
	return recomputeRatingCache(rs.DB, courseID)
}

// ReconcileRatingCaches refreshes the rating cache of every course. Run
// periodically; the transactional review path keeps caches fresh on its own,
// this catches drift from manual data fixes.
func (rs *ReviewService) ReconcileRatingCaches() (int, error) {
	var courseIDs []uint
	if err := rs.DB.Model(&models.Course{}).Pluck("id", &courseIDs).Error; err != nil {
		return 0, err
	}
	for i, id := range courseIDs {
		if err := recomputeRatingCache(rs.DB, id); err != nil {
			return i, err
		}
	}
	return len(courseIDs), nil
}

func recomputeRatingCache(tx *gorm.DB, courseID uint) error {
	var agg struct {
		Avg   float64
		Count int64
	}
	if err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("course_id = ?", courseID).
		Scan(&agg).Error; err != nil {
		return err
	}

	return tx.Model(&models.Course{}).
		Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"rating_avg":   agg.Avg,
			"rating_count": agg.Count,
		}).Error
}
