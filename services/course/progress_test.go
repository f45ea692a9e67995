package services

import (
	"testing"

	courseModels "learnhub/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      uint
	}{
		{"empty course", 0, 0, 0},
		{"nothing done", 0, 10, 0},
		{"three of four", 3, 4, 75},
		{"all done", 4, 4, 100},
		{"rounds down", 1, 3, 33},
		{"rounds up", 2, 3, 67},
		{"half rounds up", 1, 8, 13},
		{"clamped at 100", 5, 4, 100},
		{"negative total", 3, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.completed, tt.total))
		})
	}
}

func TestComputeCourseProgressFormula(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)
	enroll(t, db, f.learner.ID, f.course.ID, true)

	ledger := NewLedgerService(db)

	// Three lessons of four total units -> 75%.
	for _, lesson := range f.lessons {
		_, err := ledger.RecordLessonCompletion(f.learner.ID, lesson.ID)
		require.NoError(t, err)
	}

	progress := NewProgressService(db)
	summary, err := progress.GetCourseProgress(f.learner.ID, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(75), summary.Percent)
	assert.Equal(t, 3, summary.CompletedCount)
	assert.Equal(t, 4, summary.TotalCount)

	// Grading the assignment completes the course.
	_, err = ledger.SubmitAssignment(f.learner.ID, f.assignment.ID)
	require.NoError(t, err)
	summary, err = ledger.RecordAssignmentGrade(f.learner.ID, f.assignment.ID, 90, "well done")
	require.NoError(t, err)
	assert.Equal(t, uint(100), summary.Percent)

	var enrollment courseModels.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", f.learner.ID, f.course.ID).First(&enrollment).Error)
	assert.Equal(t, courseModels.EnrollmentCompleted, enrollment.Status)
}

func TestComputeCourseProgressEmptyCourse(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)

	empty := courseModels.Course{Title: "Empty", IsPublished: true}
	require.NoError(t, db.Create(&empty).Error)

	progress := NewProgressService(db)
	summary, err := progress.ComputeCourseProgress(f.learner.ID, empty.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(0), summary.Percent)
	assert.Equal(t, 0, summary.TotalCount)
}

func TestGetCourseProgressHealsMissingSnapshot(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)
	enroll(t, db, f.learner.ID, f.course.ID, true)

	ledger := NewLedgerService(db)
	_, err := ledger.RecordLessonCompletion(f.learner.ID, f.lessons[0].ID)
	require.NoError(t, err)

	// Simulate a lost snapshot; the ledger row survives.
	require.NoError(t, db.Unscoped().Where("user_id = ?", f.learner.ID).Delete(&courseModels.CourseProgress{}).Error)

	progress := NewProgressService(db)
	summary, err := progress.GetCourseProgress(f.learner.ID, f.course.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(25), summary.Percent)

	// The healed snapshot is persisted for the next read.
	var snapshot courseModels.CourseProgress
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", f.learner.ID, f.course.ID).First(&snapshot).Error)
	assert.Equal(t, uint(25), snapshot.Percent)
}

func TestGetCourseProgressUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)

	progress := NewProgressService(db)
	_, err := progress.GetCourseProgress(f.learner.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllCoursesProgress(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)
	other := seedCourse(t, db, 0)
	enroll(t, db, f.learner.ID, f.course.ID, true)

	ledger := NewLedgerService(db)
	_, err := ledger.RecordLessonCompletion(f.learner.ID, f.lessons[0].ID)
	require.NoError(t, err)

	progress := NewProgressService(db)
	result, err := progress.GetAllCoursesProgress(f.learner.ID, []uint{f.course.ID, other.course.ID})
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, uint(25), result[f.course.ID].Percent)
	// No snapshot for the other course yet: zero summary, not an error.
	assert.Equal(t, uint(0), result[other.course.ID].Percent)
	assert.Equal(t, 0, result[other.course.ID].TotalCount)
}

func TestGetAllCoursesProgressEmptyInput(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)

	progress := NewProgressService(db)
	result, err := progress.GetAllCoursesProgress(f.learner.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, result)
}
