package services

import (
	"testing"

	"project/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newCourseWithLessons creates a published course with one section and one
// lesson per duration, returning the course id and lesson ids.
func newCourseWithLessons(t *testing.T, db *gorm.DB, durations ...int) (uint, []uint) {
	t.Helper()

	course := models.Course{Title: "course", Status: models.CourseStatusPublished}
	require.NoError(t, db.Create(&course).Error)
	section := models.Section{CourseID: course.ID, Title: "section", OrderIndex: 1}
	require.NoError(t, db.Create(&section).Error)

	lessonIDs := make([]uint, len(durations))
	for i, duration := range durations {
		lesson := models.Lesson{
			SectionID:   section.ID,
			Title:       "lesson",
			DurationSec: duration,
			OrderIndex:  i + 1,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessonIDs[i] = lesson.ID
	}
	return course.ID, lessonIDs
}

func TestUpdateProgressAutoComplete(t *testing.T) {
	db := newTestDB(t)
	_, lessons := newCourseWithLessons(t, db, 100)
	ps := NewProgressService(db, testConfig())

	// 50 of 100 seconds: not completed.
	progress, err := ps.UpdateProgress(1, lessons[0], 50, false)
	require.NoError(t, err)
	assert.Equal(t, 50, progress.WatchedSec)
	assert.False(t, progress.Completed)

	// 96 of 100 seconds crosses the 95% threshold.
	progress, err = ps.UpdateProgress(1, lessons[0], 96, false)
	require.NoError(t, err)
	assert.Equal(t, 96, progress.WatchedSec)
	assert.True(t, progress.Completed)
}

func TestUpdateProgressMonotonicGuard(t *testing.T) {
	db := newTestDB(t)
	_, lessons := newCourseWithLessons(t, db, 200)
	ps := NewProgressService(db, testConfig())

	_, err := ps.UpdateProgress(1, lessons[0], 80, false)
	require.NoError(t, err)

	// A stale report with a lower watched_sec is dropped.
	progress, err := ps.UpdateProgress(1, lessons[0], 50, false)
	require.NoError(t, err)
	assert.Equal(t, 80, progress.WatchedSec)
	assert.False(t, progress.Completed)

	var stored models.Progress
	require.NoError(t, db.Where("user_id = ? AND lesson_id = ?", 1, lessons[0]).First(&stored).Error)
	assert.Equal(t, 80, stored.WatchedSec)
}

func TestUpdateProgressCompletedIsSticky(t *testing.T) {
	db := newTestDB(t)
	_, lessons := newCourseWithLessons(t, db, 100)
	ps := NewProgressService(db, testConfig())

	_, err := ps.UpdateProgress(1, lessons[0], 100, false)
	require.NoError(t, err)

	// A later non-completing report with more seconds never clears the flag.
	progress, err := ps.UpdateProgress(1, lessons[0], 101, false)
	require.NoError(t, err)
	assert.True(t, progress.Completed)
}

func TestUpdateProgressZeroDurationLesson(t *testing.T) {
	db := newTestDB(t)
	_, lessons := newCourseWithLessons(t, db, 0)
	ps := NewProgressService(db, testConfig())

	// The percentage heuristic never fires for zero-length lessons.
	progress, err := ps.UpdateProgress(1, lessons[0], 500, false)
	require.NoError(t, err)
	assert.False(t, progress.Completed)

	// Only the explicit flag completes them.
	progress, err = ps.UpdateProgress(1, lessons[0], 500, true)
	require.NoError(t, err)
	assert.True(t, progress.Completed)
}

func TestMarkCompletedAndUncompleted(t *testing.T) {
	db := newTestDB(t)
	_, lessons := newCourseWithLessons(t, db, 120)
	ps := NewProgressService(db, testConfig())

	progress, err := ps.MarkCompleted(1, lessons[0])
	require.NoError(t, err)
	assert.True(t, progress.Completed)
	assert.Equal(t, 120, progress.WatchedSec)

	progress, err = ps.MarkUncompleted(1, lessons[0])
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.False(t, progress.Completed)
	assert.Equal(t, 0, progress.WatchedSec)

	// Uncompleting an untouched lesson is a no-op, not an error.
	progress, err = ps.MarkUncompleted(1, lessons[0]+100)
	require.NoError(t, err)
	assert.Nil(t, progress)
}

func TestGetCourseProgress(t *testing.T) {
	db := newTestDB(t)
	courseID, lessons := newCourseWithLessons(t, db, 100, 100, 100, 100)
	ps := NewProgressService(db, testConfig())

	_, err := ps.MarkCompleted(7, lessons[0])
	require.NoError(t, err)
	_, err = ps.MarkCompleted(7, lessons[1])
	require.NoError(t, err)
	_, err = ps.UpdateProgress(7, lessons[2], 10, false)
	require.NoError(t, err)

	result, err := ps.GetCourseProgress(7, courseID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, result.Total)
	assert.EqualValues(t, 2, result.Completed)
	assert.Equal(t, 50, result.Percentage)

	// Another user's completions do not leak in.
	other, err := ps.GetCourseProgress(8, courseID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, other.Completed)
}

func TestGetCourseProgressEmptyCourse(t *testing.T) {
	db := newTestDB(t)
	course := models.Course{Title: "empty", Status: models.CourseStatusPublished}
	require.NoError(t, db.Create(&course).Error)

	ps := NewProgressService(db, testConfig())
	result, err := ps.GetCourseProgress(1, course.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, result.Total)
	assert.EqualValues(t, 0, result.Completed)
	assert.Equal(t, 0, result.Percentage)
}
