package services

import (
	"testing"

	"project/backend/config"
	"project/backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Course{},
		&models.Section{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.Progress{},
		&models.Review{},
		&models.Watchlist{},
	))

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		PageSize:                   12,
		NewCourseWindowDays:        30,
		WeeklyBestsellerThreshold:  5,
		AllTimeBestsellerThreshold: 100,
		AutoCompletePercent:        95,
	}
}
