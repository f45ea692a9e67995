package services

import (
	"testing"

	courseModels "learnhub/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLessonCompletionIdempotent(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)
	enroll(t, db, f.learner.ID, f.course.ID, true)

	ledger := NewLedgerService(db)

	first, err := ledger.RecordLessonCompletion(f.learner.ID, f.lessons[0].ID)
	require.NoError(t, err)

	second, err := ledger.RecordLessonCompletion(f.learner.ID, f.lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Exactly one ledger row.
	var count int64
	require.NoError(t, db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND lesson_id = ?", f.learner.ID, f.lessons[0].ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Engagement credited only once.
	var stat courseModels.DailyStudyStat
	require.NoError(t, db.Where("user_id = ?", f.learner.ID).First(&stat).Error)
	assert.Equal(t, 10, stat.CommunityScore)
}

func TestRecordLessonCompletionUnknownLesson(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)
	enroll(t, db, f.learner.ID, f.course.ID, true)

	ledger := NewLedgerService(db)
	_, err := ledger.RecordLessonCompletion(f.learner.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordLessonCompletionRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)

	ledger := NewLedgerService(db)
	_, err := ledger.RecordLessonCompletion(f.learner.ID, f.lessons[0].ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// A failed attempt claims no progress.
	var count int64
	require.NoError(t, db.Model(&courseModels.LessonCompletion{}).Where("user_id = ?", f.learner.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestProgressNeverDecreases(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)
	enroll(t, db, f.learner.ID, f.course.ID, true)

	ledger := NewLedgerService(db)

	var last uint
	for _, lesson := range f.lessons {
		summary, err := ledger.RecordLessonCompletion(f.learner.ID, lesson.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, summary.Percent, last)
		last = summary.Percent
	}
}

func TestSubmitAssignment(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)
	enroll(t, db, f.learner.ID, f.course.ID, true)

	ledger := NewLedgerService(db)

	submission, err := ledger.SubmitAssignment(f.learner.ID, f.assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, courseModels.SubmissionSubmitted, submission.Status)

	// Resubmitting does not create a second row.
	again, err := ledger.SubmitAssignment(f.learner.ID, f.assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, submission.ID, again.ID)
}

func TestSubmitAssignmentRequiresEnrollment(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)

	ledger := NewLedgerService(db)
	_, err := ledger.SubmitAssignment(f.learner.ID, f.assignment.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRecordAssignmentGrade(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)
	enroll(t, db, f.learner.ID, f.course.ID, true)

	ledger := NewLedgerService(db)
	_, err := ledger.SubmitAssignment(f.learner.ID, f.assignment.ID)
	require.NoError(t, err)

	summary, err := ledger.RecordAssignmentGrade(f.learner.ID, f.assignment.ID, 85, "solid work")
	require.NoError(t, err)
	assert.Equal(t, uint(25), summary.Percent) // 1 of 4 units

	var submission courseModels.AssignmentSubmission
	require.NoError(t, db.Where("user_id = ? AND assignment_id = ?", f.learner.ID, f.assignment.ID).First(&submission).Error)
	assert.Equal(t, courseModels.SubmissionCompleted, submission.Status)
	require.NotNil(t, submission.Grade)
	assert.Equal(t, uint(85), *submission.Grade)
	assert.Equal(t, "solid work", submission.Feedback)
}

func TestRecordAssignmentGradeWithoutSubmission(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)
	enroll(t, db, f.learner.ID, f.course.ID, true)

	ledger := NewLedgerService(db)
	_, err := ledger.RecordAssignmentGrade(f.learner.ID, f.assignment.ID, 85, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordAssignmentGradeOutOfRange(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)
	enroll(t, db, f.learner.ID, f.course.ID, true)

	ledger := NewLedgerService(db)
	_, err := ledger.SubmitAssignment(f.learner.ID, f.assignment.ID)
	require.NoError(t, err)

	// Default MaxGrade is 100.
	_, err = ledger.RecordAssignmentGrade(f.learner.ID, f.assignment.ID, 101, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegradeDoesNotDoubleCount(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)
	enroll(t, db, f.learner.ID, f.course.ID, true)

	ledger := NewLedgerService(db)
	_, err := ledger.SubmitAssignment(f.learner.ID, f.assignment.ID)
	require.NoError(t, err)

	first, err := ledger.RecordAssignmentGrade(f.learner.ID, f.assignment.ID, 70, "")
	require.NoError(t, err)
	second, err := ledger.RecordAssignmentGrade(f.learner.ID, f.assignment.ID, 95, "revised")
	require.NoError(t, err)
	assert.Equal(t, first.Percent, second.Percent)

	// Regrading awards no extra community score.
	var stat courseModels.DailyStudyStat
	require.NoError(t, db.Where("user_id = ?", f.learner.ID).First(&stat).Error)
	assert.Equal(t, 20, stat.CommunityScore)
}
