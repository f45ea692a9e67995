package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	courseModels "learnhub/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerService owns the completion ledger: lesson completions and graded
// assignment submissions. The ledger is the source of truth; the snapshot
// and the daily stats are derived from it after every write.
type LedgerService struct {
	db         *gorm.DB
	progress   *ProgressService
	engagement *EngagementService
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{
		db:         db,
		progress:   NewProgressService(db),
		engagement: NewEngagementService(db),
	}
}

// RecordLessonCompletion marks the (user, lesson) pair completed and returns
// the recomputed course progress. Repeating the call for an already-completed
// lesson succeeds without changing anything.
//
// The ledger insert is the authoritative step: if it fails the whole
// operation fails. The snapshot recompute and engagement accrual that follow
// are recomputable caches; their failures are logged and healed later (lazy
// recompute on read, nightly reconciliation) instead of failing the call.
func (s *LedgerService) RecordLessonCompletion(userID, lessonID uint) (ProgressSummary, error) {
	var lesson courseModels.Lesson
	if err := s.db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProgressSummary{}, fmt.Errorf("lesson %d: %w", lessonID, ErrNotFound)
		}
		return ProgressSummary{}, err
	}

	var enrollment courseModels.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ?", userID, lesson.CourseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProgressSummary{}, fmt.Errorf("not enrolled in course %d: %w", lesson.CourseID, ErrForbidden)
		}
		return ProgressSummary{}, err
	}

	completedAt := time.Now().UTC()
	completion := courseModels.LessonCompletion{
		UserID:      userID,
		LessonID:    lessonID,
		CourseID:    lesson.CourseID,
		Completed:   true,
		CompletedAt: &completedAt,
	}
	res := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoNothing: true,
	}).Create(&completion)
	if res.Error != nil {
		return ProgressSummary{}, fmt.Errorf("record lesson completion: %w", res.Error)
	}
	firstCompletion := res.RowsAffected > 0

	summary, err := s.progress.ComputeCourseProgress(userID, lesson.CourseID)
	if err != nil {
		log.Printf("[PROGRESS] recompute failed for user=%d course=%d: %v", userID, lesson.CourseID, err)
	}

	if firstCompletion {
		if err := s.engagement.OnLessonCompleted(userID, &lesson, completedAt); err != nil {
			log.Printf("[ENGAGEMENT] accrual failed for user=%d lesson=%d: %v", userID, lessonID, err)
		}
	}

	return summary, nil
}

// SubmitAssignment creates (or re-marks) the learner's submission row as
// SUBMITTED so it can be graded. The actual uploaded artifact lives with the
// storage collaborator; only the status transition is tracked here. A
// submission that was already graded stays COMPLETED.
func (s *LedgerService) SubmitAssignment(userID, assignmentID uint) (*courseModels.AssignmentSubmission, error) {
	var assignment courseModels.Assignment
	if err := s.db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assignment %d: %w", assignmentID, ErrNotFound)
		}
		return nil, err
	}

	var enrollment courseModels.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ?", userID, assignment.CourseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("not enrolled in course %d: %w", assignment.CourseID, ErrForbidden)
		}
		return nil, err
	}

	var submission courseModels.AssignmentSubmission
	err := s.db.Where("user_id = ? AND assignment_id = ?", userID, assignmentID).First(&submission).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		submission = courseModels.AssignmentSubmission{
			UserID:       userID,
			AssignmentID: assignmentID,
			CourseID:     assignment.CourseID,
			Status:       courseModels.SubmissionSubmitted,
		}
		if err := s.db.Create(&submission).Error; err != nil {
			return nil, fmt.Errorf("create submission: %w", err)
		}
	case err != nil:
		return nil, err
	case submission.Status == courseModels.SubmissionPending:
		submission.Status = courseModels.SubmissionSubmitted
		if err := s.db.Save(&submission).Error; err != nil {
			return nil, fmt.Errorf("update submission: %w", err)
		}
	}

	return &submission, nil
}

// RecordAssignmentGrade stores grade and feedback on the learner's submission
// and moves it to COMPLETED, then returns the recomputed course progress.
// Grading requires an existing submission; the grade must not exceed the
// course's MaxGrade.
func (s *LedgerService) RecordAssignmentGrade(userID, assignmentID uint, grade uint, feedback string) (ProgressSummary, error) {
	var assignment courseModels.Assignment
	if err := s.db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProgressSummary{}, fmt.Errorf("assignment %d: %w", assignmentID, ErrNotFound)
		}
		return ProgressSummary{}, err
	}

	var crs courseModels.Course
	if err := s.db.Where("id = ?", assignment.CourseID).First(&crs).Error; err != nil {
		return ProgressSummary{}, fmt.Errorf("course %d: %w", assignment.CourseID, ErrNotFound)
	}
	if grade > crs.MaxGrade {
		return ProgressSummary{}, fmt.Errorf("grade %d outside 0-%d: %w", grade, crs.MaxGrade, ErrValidation)
	}

	var submission courseModels.AssignmentSubmission
	if err := s.db.Where("user_id = ? AND assignment_id = ?", userID, assignmentID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProgressSummary{}, fmt.Errorf("no submission to grade for assignment %d: %w", assignmentID, ErrNotFound)
		}
		return ProgressSummary{}, err
	}

	alreadyCompleted := submission.Status == courseModels.SubmissionCompleted
	submission.Status = courseModels.SubmissionCompleted
	submission.Grade = &grade
	submission.Feedback = feedback
	if err := s.db.Save(&submission).Error; err != nil {
		return ProgressSummary{}, fmt.Errorf("store grade: %w", err)
	}

	summary, err := s.progress.ComputeCourseProgress(userID, assignment.CourseID)
	if err != nil {
		log.Printf("[PROGRESS] recompute failed for user=%d course=%d: %v", userID, assignment.CourseID, err)
	}

	if !alreadyCompleted {
		if err := s.engagement.OnAssignmentCompleted(userID, time.Now().UTC()); err != nil {
			log.Printf("[ENGAGEMENT] accrual failed for user=%d assignment=%d: %v", userID, assignmentID, err)
		}
	}

	return summary, nil
}
