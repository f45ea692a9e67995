package course

import "gorm.io/gorm"

// Course represents a learning course
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	Author       string `json:"author"`
	Price        uint   `json:"price" gorm:"default:0"`       // price in minor units, 0 = free
	MaxGrade     uint   `json:"max_grade" gorm:"default:100"` // upper bound for assignment grades
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `gorm:"default:false"`
}

// IsFree reports whether the course requires no payment to access.
func (c *Course) IsFree() bool {
	return c.Price == 0
}

// Module represents an ordered section within a course. The module with the
// lowest position is the preview module: open to enrolled learners even
// before their payment is confirmed.
type Module struct {
	gorm.Model
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Title     string `json:"title"`
	Position  int    `json:"position" gorm:"default:0"` // unlock order in course
	IsDeleted bool   `gorm:"default:false"`
}

// Lesson content types
const (
	LessonTypeVideo = "VIDEO"
	LessonTypeText  = "TEXT"
	LessonTypePDF   = "PDF"
)

// Lesson is an atomic content unit within a module
type Lesson struct {
	gorm.Model
	CourseID        uint   `json:"course_id" gorm:"index;not null"`
	ModuleID        uint   `json:"module_id" gorm:"index;not null"`
	Title           string `json:"title"`
	LessonType      string `json:"lesson_type" gorm:"default:'VIDEO'"` // VIDEO, TEXT, PDF
	DurationMinutes uint   `json:"duration_minutes" gorm:"default:0"`
	Position        int    `json:"position" gorm:"default:0"` // order within module
	IsPublished     bool   `json:"is_published" gorm:"default:true"`
	IsDeleted       bool   `gorm:"default:false"`
}
