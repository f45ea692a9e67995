package utils

import (
	"log"

	"learnhub/database"
	courseModels "learnhub/models/course"
	services "learnhub/services/course"

	"github.com/robfig/cron/v3"
)

// InitializeProgressScheduler sets up the nightly progress reconciliation job
func InitializeProgressScheduler() {
	log.Println("[PROGRESS-SCHEDULER] Initializing progress reconciliation scheduler...")

	c := cron.New()

	// Run daily at 02:30 to heal snapshots that missed their synchronous
	// recompute (e.g. a crash between the ledger write and the upsert).
	c.AddFunc("30 2 * * *", func() {
		log.Println("[PROGRESS-SCHEDULER] Running nightly snapshot reconciliation...")
		ReconcileCourseProgress()
	})

	c.Start()
	log.Println("[PROGRESS-SCHEDULER] Scheduler started - runs daily at 02:30")
}

// ReconcileCourseProgress recomputes every enrollment's snapshot from the
// completion ledger. The recompute is idempotent, so re-running over healthy
// rows is harmless.
func ReconcileCourseProgress() {
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Find(&enrollments).Error; err != nil {
		log.Printf("[PROGRESS-SCHEDULER] Error fetching enrollments: %v", err)
		return
	}

	svc := services.NewProgressService(db)
	healed := 0
	for _, enrollment := range enrollments {
		if _, err := svc.ComputeCourseProgress(enrollment.UserID, enrollment.CourseID); err != nil {
			log.Printf("[PROGRESS-SCHEDULER] Recompute failed for user=%d course=%d: %v", enrollment.UserID, enrollment.CourseID, err)
			continue
		}
		healed++
	}

	log.Printf("[PROGRESS-SCHEDULER] Reconciled %d/%d enrollments", healed, len(enrollments))
}
