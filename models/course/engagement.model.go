package course

import (
	"time"

	"gorm.io/gorm"
)

// DailyStudyStat accumulates a learner's study time and community score for
// one UTC calendar day. Date is always midnight UTC. Values only grow; past
// days are corrected by replaying completion events, never edited directly.
type DailyStudyStat struct {
	gorm.Model
	UserID         uint      `json:"user_id" gorm:"uniqueIndex:idx_user_day;not null"`
	Date           time.Time `json:"date" gorm:"uniqueIndex:idx_user_day;not null"`
	HoursStudied   float64   `json:"hours_studied" gorm:"default:0"`
	CommunityScore int       `json:"community_score" gorm:"default:0"`
}
