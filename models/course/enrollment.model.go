package course

import "gorm.io/gorm"

// Enrollment statuses
const (
	EnrollmentEnrolled   = "ENROLLED"
	EnrollmentInProgress = "IN_PROGRESS"
	EnrollmentCompleted  = "COMPLETED"
)

// Enrollment grants a user access to a course. Premium is the single
// authoritative payment-tier field: true from creation for free courses,
// true for paid courses only once the payment confirmation arrives.
type Enrollment struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID uint   `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	Premium  bool   `json:"premium" gorm:"default:false"`
	Status   string `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
}
