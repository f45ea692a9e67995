package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens an isolated in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Module{},
		&courseModels.Lesson{},
		&courseModels.Assignment{},
		&courseModels.Enrollment{},
		&courseModels.LessonCompletion{},
		&courseModels.AssignmentSubmission{},
		&courseModels.CourseProgress{},
		&courseModels.DailyStudyStat{},
	))

	return db
}

// fixture is a seeded learner plus a course with two modules (positions 0
// and 1), three 10-minute lessons (two in the first module, one in the
// second) and one assignment. Total of four content units.
type fixture struct {
	learner    models.User
	course     courseModels.Course
	modules    []courseModels.Module
	lessons    []courseModels.Lesson
	assignment courseModels.Assignment
}

func seedCourse(t *testing.T, db *gorm.DB, price uint) *fixture {
	t.Helper()

	f := &fixture{}

	f.learner = models.User{Name: "Learner", Email: fmt.Sprintf("learner%d@test.io", atomic.AddInt64(&testDBSeq, 1)), Role: models.RoleLearner}
	require.NoError(t, db.Create(&f.learner).Error)

	f.course = courseModels.Course{Title: "Course", Price: price, IsPublished: true}
	require.NoError(t, db.Create(&f.course).Error)

	for pos := 0; pos < 2; pos++ {
		module := courseModels.Module{CourseID: f.course.ID, Title: "Module", Position: pos}
		require.NoError(t, db.Create(&module).Error)
		f.modules = append(f.modules, module)
	}

	lessonModules := []int{0, 0, 1}
	for i, moduleIdx := range lessonModules {
		lesson := courseModels.Lesson{
			CourseID:        f.course.ID,
			ModuleID:        f.modules[moduleIdx].ID,
			Title:           "Lesson",
			LessonType:      courseModels.LessonTypeVideo,
			DurationMinutes: 10,
			Position:        i,
		}
		require.NoError(t, db.Create(&lesson).Error)
		f.lessons = append(f.lessons, lesson)
	}

	f.assignment = courseModels.Assignment{CourseID: f.course.ID, Title: "Assignment"}
	require.NoError(t, db.Create(&f.assignment).Error)

	return f
}

// enroll creates an enrollment row directly, bypassing the lifecycle
// service, for tests that need a specific premium state.
func enroll(t *testing.T, db *gorm.DB, userID, courseID uint, premium bool) {
	t.Helper()
	enrollment := courseModels.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Premium:  premium,
		Status:   courseModels.EnrollmentEnrolled,
	}
	require.NoError(t, db.Create(&enrollment).Error)
}
