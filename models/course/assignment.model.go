package course

import "gorm.io/gorm"

// Assignment represents a gradable task attached to a course
type Assignment struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsDeleted   bool   `gorm:"default:false"`
}

// Submission statuses
const (
	SubmissionPending   = "PENDING"
	SubmissionSubmitted = "SUBMITTED"
	SubmissionCompleted = "COMPLETED"
)

// AssignmentSubmission tracks a learner's submission for an assignment.
// One row per (user, assignment); grading moves Status to COMPLETED.
type AssignmentSubmission struct {
	gorm.Model
	UserID       uint   `json:"user_id" gorm:"uniqueIndex:idx_user_assignment;not null"`
	AssignmentID uint   `json:"assignment_id" gorm:"uniqueIndex:idx_user_assignment;not null"`
	CourseID     uint   `json:"course_id" gorm:"index;not null"`
	Status       string `json:"status" gorm:"default:'PENDING'"` // PENDING, SUBMITTED, COMPLETED
	Grade        *uint  `json:"grade"`
	Feedback     string `json:"feedback"`
}
