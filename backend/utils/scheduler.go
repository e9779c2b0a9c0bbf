package utils

import (
	"log"

	"project/backend/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartScheduler runs the nightly reconciliation of the derived course rating
// caches. The returned cron is already started; callers stop it on shutdown.
func StartScheduler(db *gorm.DB, logger *log.Logger) *cron.Cron {
	reviews := services.NewReviewService(db)

	c := cron.New()
	_, err := c.AddFunc("0 3 * * *", func() {
		n, err := reviews.ReconcileRatingCaches()
		if err != nil {
			logger.Printf("rating cache reconciliation failed after %d courses: %v", n, err)
			return
		}
		logger.Printf("rating caches reconciled for %d courses", n)
	})
	if err != nil {
		logger.Printf("could not schedule rating cache reconciliation: %v", err)
	}
	c.Start()
	return c
}
