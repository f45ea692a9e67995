package services

import (
	"errors"
	"fmt"

	courseModels "learnhub/models/course"

	"gorm.io/gorm"
)

// Access decisions
const (
	AccessAllowed     = "ALLOWED"
	AccessLocked      = "LOCKED"
	AccessNotEnrolled = "NOT_ENROLLED"
)

// Content unit kinds a learner can try to open
const (
	UnitLesson     = "LESSON"
	UnitAssignment = "ASSIGNMENT"
	UnitResource   = "RESOURCE"
	UnitDiscussion = "DISCUSSION"
	UnitAttendance = "ATTENDANCE"
)

// ContentUnit identifies the content a learner is requesting.
type ContentUnit struct {
	Kind     string `json:"kind"`
	LessonID uint   `json:"lesson_id,omitempty"` // set when Kind == LESSON
}

// AccessInput carries everything the gate rules need. Filling it is the only
// I/O in an access check; the decision itself is DecideAccess.
type AccessInput struct {
	CourseFree        bool
	Enrolled          bool
	Premium           bool
	Unit              ContentUnit
	ModulePosition    int // position of the requested lesson's module
	MinModulePosition int // lowest module position in the course
}

// DecideAccess applies the gate rules in order:
//  1. no enrollment -> NOT_ENROLLED
//  2. free course or premium enrollment -> ALLOWED
//  3. paid course without premium: only lessons in the lowest-position
//     module are open; everything else, and every non-lesson unit, is LOCKED.
//
// The decision depends only on enrollment and payment state. Completion
// history never changes what a learner may see.
func DecideAccess(in AccessInput) string {
	if !in.Enrolled {
		return AccessNotEnrolled
	}
	if in.CourseFree || in.Premium {
		return AccessAllowed
	}
	if in.Unit.Kind != UnitLesson {
		return AccessLocked
	}
	if in.ModulePosition == in.MinModulePosition {
		return AccessAllowed
	}
	return AccessLocked
}

// AccessService loads enrollment and catalog state and runs the gate.
type AccessService struct {
	db *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

// EvaluateAccess decides whether userID may open the given content unit of
// courseID. Returns ErrNotFound when the course (or requested lesson) does
// not exist.
func (s *AccessService) EvaluateAccess(userID, courseID uint, unit ContentUnit) (string, error) {
	var crs courseModels.Course
	if err := s.db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("course %d: %w", courseID, ErrNotFound)
		}
		return "", err
	}

	in := AccessInput{
		CourseFree: crs.IsFree(),
		Unit:       unit,
	}

	var enrollment courseModels.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	switch {
	case err == nil:
		in.Enrolled = true
		in.Premium = enrollment.Premium
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through with Enrolled = false
	default:
		return "", err
	}

	// Module positions only matter on the locked path.
	if in.Enrolled && !in.CourseFree && !in.Premium && unit.Kind == UnitLesson {
		var lesson courseModels.Lesson
		if err := s.db.Where("id = ? AND course_id = ? AND is_deleted = ?", unit.LessonID, courseID, false).First(&lesson).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", fmt.Errorf("lesson %d: %w", unit.LessonID, ErrNotFound)
			}
			return "", err
		}

		var module courseModels.Module
		if err := s.db.Where("id = ?", lesson.ModuleID).First(&module).Error; err != nil {
			return "", fmt.Errorf("module %d: %w", lesson.ModuleID, ErrNotFound)
		}
		in.ModulePosition = module.Position

		minPos, err := s.minModulePosition(courseID)
		if err != nil {
			return "", err
		}
		in.MinModulePosition = minPos
	}

	return DecideAccess(in), nil
}

func (s *AccessService) minModulePosition(courseID uint) (int, error) {
	var minPos int
	row := s.db.Model(&courseModels.Module{}).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Select("COALESCE(MIN(position), 0)").Row()
	if err := row.Scan(&minPos); err != nil {
		return 0, err
	}
	return minPos, nil
}
