package services

import (
	"testing"
	"time"

	courseModels "learnhub/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fortyMinuteLesson(t *testing.T, f *fixture) *courseModels.Lesson {
	t.Helper()
	lesson := f.lessons[0]
	lesson.DurationMinutes = 40
	return &lesson
}

func TestOnLessonCompletedAccrual(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)
	at := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	engagement := NewEngagementService(db)
	require.NoError(t, engagement.OnLessonCompleted(f.learner.ID, fortyMinuteLesson(t, f), at))

	var stat courseModels.DailyStudyStat
	require.NoError(t, db.Where("user_id = ?", f.learner.ID).First(&stat).Error)
	assert.InDelta(t, 40.0/60.0, stat.HoursStudied, 1e-9)
	assert.Equal(t, 10, stat.CommunityScore)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), stat.Date.UTC())
}

func TestOneHourBonusAwardedOnce(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)
	at := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	engagement := NewEngagementService(db)
	lesson := fortyMinuteLesson(t, f)

	// First 40 minutes: below the threshold, no bonus.
	require.NoError(t, engagement.OnLessonCompleted(f.learner.ID, lesson, at))
	// Second 40 minutes crosses 1.0h: +10 +5 bonus.
	require.NoError(t, engagement.OnLessonCompleted(f.learner.ID, lesson, at.Add(time.Hour)))

	var stat courseModels.DailyStudyStat
	require.NoError(t, db.Where("user_id = ?", f.learner.ID).First(&stat).Error)
	assert.InDelta(t, 80.0/60.0, stat.HoursStudied, 1e-9)
	assert.Equal(t, 25, stat.CommunityScore)

	// Third 40 minutes: already past the threshold, plain +10.
	require.NoError(t, engagement.OnLessonCompleted(f.learner.ID, lesson, at.Add(2*time.Hour)))
	require.NoError(t, db.Where("user_id = ?", f.learner.ID).First(&stat).Error)
	assert.Equal(t, 35, stat.CommunityScore)
}

func TestAccrualSplitsAcrossUTCDays(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)

	engagement := NewEngagementService(db)
	lesson := fortyMinuteLesson(t, f)

	lateNight := time.Date(2025, 3, 10, 23, 50, 0, 0, time.UTC)
	require.NoError(t, engagement.OnLessonCompleted(f.learner.ID, lesson, lateNight))
	require.NoError(t, engagement.OnLessonCompleted(f.learner.ID, lesson, lateNight.Add(20*time.Minute)))

	var stats []courseModels.DailyStudyStat
	require.NoError(t, db.Where("user_id = ?", f.learner.ID).Order("date asc").Find(&stats).Error)
	require.Len(t, stats, 2)
	// Neither day crossed one hour, so no bonus on either row.
	assert.Equal(t, 10, stats[0].CommunityScore)
	assert.Equal(t, 10, stats[1].CommunityScore)
}

func TestOnAssignmentCompletedAccrual(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	engagement := NewEngagementService(db)
	require.NoError(t, engagement.OnAssignmentCompleted(f.learner.ID, at))

	var stat courseModels.DailyStudyStat
	require.NoError(t, db.Where("user_id = ?", f.learner.ID).First(&stat).Error)
	assert.Equal(t, 20, stat.CommunityScore)
	assert.Equal(t, 0.0, stat.HoursStudied)
}

func TestListStudyStats(t *testing.T) {
	db := newTestDB(t)
	f := seedCourse(t, db, 0)

	engagement := NewEngagementService(db)
	lesson := fortyMinuteLesson(t, f)

	day1 := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)
	for _, at := range []time.Time{day1, day2, day3} {
		require.NoError(t, engagement.OnLessonCompleted(f.learner.ID, lesson, at))
	}

	stats, err := engagement.ListStudyStats(f.learner.ID, day1, day2)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), stats[0].Date.UTC())
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), stats[1].Date.UTC())
}
