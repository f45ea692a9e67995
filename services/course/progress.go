package services

import (
	"errors"
	"fmt"
	"math"

	courseModels "learnhub/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressSummary is the completion snapshot served to views.
type ProgressSummary struct {
	Percent        uint `json:"percent"`
	CompletedCount int  `json:"completed_count"`
	TotalCount     int  `json:"total_count"`
}

// Percent converts completion counts into a whole percentage, rounding half
// up and clamping at 100. A course with no content is always 0%.
func Percent(completed, total int) uint {
	if total <= 0 || completed <= 0 {
		return 0
	}
	p := math.Round(float64(completed) / float64(total) * 100)
	if p > 100 {
		p = 100
	}
	return uint(p)
}

// ProgressService derives and persists course completion snapshots from the
// completion ledger and the catalog.
type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// ComputeCourseProgress recounts the learner's ledger rows against the course
// catalog and upserts the snapshot. It is always a full recompute from the
// ledger; concurrent runs converge on the same counts, so last writer wins
// is safe. The computed summary is returned even when persisting fails, so
// callers can still respond with correct numbers.
func (s *ProgressService) ComputeCourseProgress(userID, courseID uint) (ProgressSummary, error) {
	var totalLessons int64
	if err := s.db.Model(&courseModels.Lesson{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&totalLessons).Error; err != nil {
		return ProgressSummary{}, fmt.Errorf("count lessons: %w", err)
	}

	var totalAssignments int64
	if err := s.db.Model(&courseModels.Assignment{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Count(&totalAssignments).Error; err != nil {
		return ProgressSummary{}, fmt.Errorf("count assignments: %w", err)
	}

	var doneLessons int64
	if err := s.db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND course_id = ? AND completed = ?", userID, courseID, true).
		Count(&doneLessons).Error; err != nil {
		return ProgressSummary{}, fmt.Errorf("count lesson completions: %w", err)
	}

	var doneAssignments int64
	if err := s.db.Model(&courseModels.AssignmentSubmission{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, courseModels.SubmissionCompleted).
		Count(&doneAssignments).Error; err != nil {
		return ProgressSummary{}, fmt.Errorf("count graded submissions: %w", err)
	}

	total := int(totalLessons + totalAssignments)
	completed := int(doneLessons + doneAssignments)

	summary := ProgressSummary{
		Percent:        Percent(completed, total),
		CompletedCount: completed,
		TotalCount:     total,
	}

	snapshot := courseModels.CourseProgress{
		UserID:         userID,
		CourseID:       courseID,
		Percent:        summary.Percent,
		CompletedCount: summary.CompletedCount,
		TotalCount:     summary.TotalCount,
	}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"percent", "completed_count", "total_count", "updated_at"}),
	}).Create(&snapshot).Error; err != nil {
		return summary, fmt.Errorf("persist snapshot: %w", err)
	}

	s.updateEnrollmentStatus(userID, courseID, summary.Percent)

	return summary, nil
}

// updateEnrollmentStatus mirrors the snapshot onto the enrollment's display
// status. Best effort: a withdrawn learner simply has no row to update.
func (s *ProgressService) updateEnrollmentStatus(userID, courseID uint, percent uint) {
	var enrollment courseModels.Enrollment
	if err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error; err != nil {
		return
	}

	status := courseModels.EnrollmentEnrolled
	switch {
	case percent >= 100:
		status = courseModels.EnrollmentCompleted
	case percent > 0:
		status = courseModels.EnrollmentInProgress
	}
	if status == enrollment.Status {
		return
	}
	enrollment.Status = status
	s.db.Save(&enrollment)
}

// GetCourseProgress reads the snapshot for one course. A missing snapshot is
// computed and persisted on the spot, so a lost or never-written row heals on
// the next read.
func (s *ProgressService) GetCourseProgress(userID, courseID uint) (ProgressSummary, error) {
	var crs courseModels.Course
	if err := s.db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProgressSummary{}, fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		return ProgressSummary{}, err
	}

	var snapshot courseModels.CourseProgress
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&snapshot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.ComputeCourseProgress(userID, courseID)
	}
	if err != nil {
		return ProgressSummary{}, err
	}

	return ProgressSummary{
		Percent:        snapshot.Percent,
		CompletedCount: snapshot.CompletedCount,
		TotalCount:     snapshot.TotalCount,
	}, nil
}

// GetAllCoursesProgress reads the snapshots for many courses in one query
// and returns them keyed by course ID. Courses without a snapshot come back
// as zero summaries; they have simply seen no completions yet.
func (s *ProgressService) GetAllCoursesProgress(userID uint, courseIDs []uint) (map[uint]ProgressSummary, error) {
	result := make(map[uint]ProgressSummary, len(courseIDs))
	for _, id := range courseIDs {
		result[id] = ProgressSummary{}
	}
	if len(courseIDs) == 0 {
		return result, nil
	}

	var snapshots []courseModels.CourseProgress
	if err := s.db.Where("user_id = ? AND course_id IN ?", userID, courseIDs).Find(&snapshots).Error; err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}

	for _, snap := range snapshots {
		result[snap.CourseID] = ProgressSummary{
			Percent:        snap.Percent,
			CompletedCount: snap.CompletedCount,
			TotalCount:     snap.TotalCount,
		}
	}
	return result, nil
}
