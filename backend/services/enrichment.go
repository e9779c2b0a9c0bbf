package services

import (
	"time"

	"project/backend/models"
)

// CourseCard is a course row annotated with the derived catalog badges.
//
// IsBestseller is the weekly badge: enrollments in the trailing 7 days
// measured against WeeklyBestsellerThreshold. IsAllTimeBestseller is a
// different claim with a different window: total active enrollments against
// AllTimeBestsellerThreshold. List cards show the weekly badge; detail pages
// additionally show the all-time one. The two must not be conflated.
type CourseCard struct {
	models.Course
	IsNew               bool  `json:"is_new"`
	IsBestseller        bool  `json:"is_bestseller"`
	IsAllTimeBestseller bool  `json:"is_all_time_bestseller"`
	WeeklyEnrollments   int64 `json:"weekly_enrollments"`
	EnrollmentCount     int64 `json:"enrollment_count"`
}

// Enrich annotates a page of course rows with badges and enrollment counts.
// Read-only: view counting is an explicit separate write.
func (cs *CatalogService) Enrich(courses []models.Course) ([]CourseCard, error) {
	cards := make([]CourseCard, 0, len(courses))
	if len(courses) == 0 {
		return cards, nil
	}

	ids := make([]uint, len(courses))
	for i, course := range courses {
		ids[i] = course.ID
	}

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)

	type countRow struct {
		CourseID uint
		Count    int64
	}

	var weekly []countRow
	if err := cs.DB.Model(&models.Enrollment{}).
		Select("course_id, COUNT(*) as count").
		Where("course_id IN ? AND active = ? AND purchased_at >= ?", ids, true, weekAgo).
		Group("course_id").
		Scan(&weekly).Error; err != nil {
		return nil, err
	}

	var allTime []countRow
	if err := cs.DB.Model(&models.Enrollment{}).
		Select("course_id, COUNT(*) as count").
		Where("course_id IN ? AND active = ?", ids, true).
		Group("course_id").
		Scan(&allTime).Error; err != nil {
		return nil, err
	}

	weeklyByID := make(map[uint]int64, len(weekly))
	for _, row := range weekly {
		weeklyByID[row.CourseID] = row.Count
	}
	totalByID := make(map[uint]int64, len(allTime))
	for _, row := range allTime {
		totalByID[row.CourseID] = row.Count
	}

	newCutoff := now.AddDate(0, 0, -cs.Cfg.NewCourseWindowDays)
	for _, course := range courses {
		card := CourseCard{
			Course:            course,
			IsNew:             course.CreatedAt.After(newCutoff),
			WeeklyEnrollments: weeklyByID[course.ID],
			EnrollmentCount:   totalByID[course.ID],
		}
		card.IsBestseller = card.WeeklyEnrollments >= int64(cs.Cfg.WeeklyBestsellerThreshold)
		card.IsAllTimeBestseller = card.EnrollmentCount >= int64(cs.Cfg.AllTimeBestsellerThreshold)
		cards = append(cards, card)
	}
	return cards, nil
}
