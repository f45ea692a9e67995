package services

import (
	"errors"
	"time"

	courseModels "learnhub/models/course"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Engagement scoring values
const (
	lessonScorePoints     = 10
	assignmentScorePoints = 20
	dailyHourBonusPoints  = 5
	dailyHourThreshold    = 1.0
)

// EngagementService accrues study time and community score into the daily
// stat rows. Scores are display-only: additive, never reversed, and never
// read back by the progress or access logic.
type EngagementService struct {
	db *gorm.DB
}

func NewEngagementService(db *gorm.DB) *EngagementService {
	return &EngagementService{db: db}
}

// OnLessonCompleted credits the lesson's duration and +10 score to the UTC
// day of the completion. The first time the day's study time crosses one
// hour, a one-time +5 bonus is added.
func (s *EngagementService) OnLessonCompleted(userID uint, lesson *courseModels.Lesson, completedAt time.Time) error {
	hours := float64(lesson.DurationMinutes) / 60
	return s.accrue(userID, completedAt, hours, lessonScorePoints)
}

// OnAssignmentCompleted credits +20 score to the UTC day the grade was
// finalized.
func (s *EngagementService) OnAssignmentCompleted(userID uint, gradedAt time.Time) error {
	return s.accrue(userID, gradedAt, 0, assignmentScorePoints)
}

// ListStudyStats returns the learner's daily stats between from and to
// inclusive, oldest first.
func (s *EngagementService) ListStudyStats(userID uint, from, to time.Time) ([]courseModels.DailyStudyStat, error) {
	var stats []courseModels.DailyStudyStat
	err := s.db.Where("user_id = ? AND date >= ? AND date <= ?", userID, utcDay(from), utcDay(to)).
		Order("date asc").Find(&stats).Error
	return stats, err
}

// accrue is a read-modify-write on the (user, day) stat row. It runs in a
// transaction holding a row lock so that two completions landing on the same
// day cannot lose each other's increments.
func (s *EngagementService) accrue(userID uint, at time.Time, hours float64, points int) error {
	day := utcDay(at)

	return s.db.Transaction(func(tx *gorm.DB) error {
		var stat courseModels.DailyStudyStat
		err := s.lockRow(tx).Where("user_id = ? AND date = ?", userID, day).First(&stat).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			seed := courseModels.DailyStudyStat{UserID: userID, Date: day}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
				return err
			}
			if err := s.lockRow(tx).Where("user_id = ? AND date = ?", userID, day).First(&stat).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		before := stat.HoursStudied
		stat.HoursStudied += hours
		stat.CommunityScore += points
		if before < dailyHourThreshold && stat.HoursStudied >= dailyHourThreshold {
			stat.CommunityScore += dailyHourBonusPoints
		}

		return tx.Save(&stat).Error
	})
}

// lockRow adds FOR UPDATE on backends that support it. SQLite (used in
// tests) serializes writers on its own and rejects the syntax.
func (s *EngagementService) lockRow(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// utcDay truncates a timestamp to midnight of its UTC calendar day.
func utcDay(at time.Time) time.Time {
	return now.New(at.UTC()).BeginningOfDay()
}
