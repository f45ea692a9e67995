package course

import (
	"time"

	"gorm.io/gorm"
)

// LessonCompletion is the ledger row for a finished lesson. One row per
// (user, lesson); Completed never reverts to false.
type LessonCompletion struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_user_lesson;not null"`
	LessonID    uint       `json:"lesson_id" gorm:"uniqueIndex:idx_user_lesson;not null"`
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	Completed   bool       `json:"completed" gorm:"default:true"`
	CompletedAt *time.Time `json:"completed_at"`
}

// CourseProgress is the denormalized completion snapshot for one
// (user, course) pair. It is always recomputed in full from the ledger and
// catalog, never patched incrementally, so it can be dropped and rebuilt
// at any time.
type CourseProgress struct {
	gorm.Model
	UserID         uint `json:"user_id" gorm:"uniqueIndex:idx_user_course_snapshot;not null"`
	CourseID       uint `json:"course_id" gorm:"uniqueIndex:idx_user_course_snapshot;not null"`
	Percent        uint `json:"percent" gorm:"default:0"`
	CompletedCount int  `json:"completed_count" gorm:"default:0"`
	TotalCount     int  `json:"total_count" gorm:"default:0"`
}
