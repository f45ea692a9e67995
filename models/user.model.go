package models

import (
	"time"

	"gorm.io/gorm"
)

// Learner and staff roles
const (
	RoleLearner = "LEARNER"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

// User holds learner identity. Registration, sessions and profile editing
// live in the external identity service; this row is the local anchor for
// enrollments and completions.
type User struct {
	gorm.Model
	ProfileImage string    `gorm:"default:''"`
	Name         string    `gorm:"default:''"`
	Email        string    `gorm:"unique;not null"`
	Role         string    `gorm:"default:'LEARNER'"` // LEARNER, TEACHER, ADMIN
	LastLogin    time.Time `gorm:"default:NULL"`
	IsDeleted    bool      `gorm:"default:false"`
}
