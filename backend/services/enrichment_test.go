package services

import (
	"testing"
	"time"

	"project/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichBadges(t *testing.T) {
	db := newTestDB(t)
	now := time.Now()

	fresh := models.Course{Title: "fresh", Status: models.CourseStatusPublished}
	fresh.CreatedAt = now.AddDate(0, 0, -5)
	require.NoError(t, db.Create(&fresh).Error)

	stale := models.Course{Title: "stale", Status: models.CourseStatusPublished}
	stale.CreatedAt = now.AddDate(0, 0, -60)
	require.NoError(t, db.Create(&stale).Error)

	// Five enrollments this week make "stale" a weekly bestseller.
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.Enrollment{
			UserID:      uint(i + 1),
			CourseID:    stale.ID,
			Active:      true,
			PurchasedAt: now.AddDate(0, 0, -2),
		}).Error)
	}
	// Old and inactive enrollments count toward the all-time number only if
	// active; neither counts toward the weekly window.
	require.NoError(t, db.Create(&models.Enrollment{
		UserID: 100, CourseID: stale.ID, Active: true, PurchasedAt: now.AddDate(0, 0, -30),
	}).Error)
	require.NoError(t, db.Create(&models.Enrollment{
		UserID: 101, CourseID: stale.ID, Active: false, PurchasedAt: now.AddDate(0, 0, -1),
	}).Error)

	catalog := NewCatalogService(db, testConfig())
	cards, err := catalog.Enrich([]models.Course{fresh, stale})
	require.NoError(t, err)
	require.Len(t, cards, 2)

	assert.True(t, cards[0].IsNew)
	assert.False(t, cards[0].IsBestseller)
	assert.EqualValues(t, 0, cards[0].EnrollmentCount)

	assert.False(t, cards[1].IsNew)
	assert.True(t, cards[1].IsBestseller)
	assert.EqualValues(t, 5, cards[1].WeeklyEnrollments)
	assert.EqualValues(t, 6, cards[1].EnrollmentCount)
	// The all-time badge has its own, much higher threshold.
	assert.False(t, cards[1].IsAllTimeBestseller)
}

func TestEnrichEmptyPage(t *testing.T) {
	db := newTestDB(t)
	catalog := NewCatalogService(db, testConfig())
	cards, err := catalog.Enrich(nil)
	require.NoError(t, err)
	assert.Empty(t, cards)
}
