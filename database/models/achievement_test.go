package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAchievementMonthBucket(t *testing.T) {
	achievement := &Achievement{
		AchievementDate: time.Date(2025, time.July, 23, 14, 5, 0, 0, time.UTC),
	}
	assert.Equal(t,
		time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		achievement.MonthBucket())
}

func TestAchievementMonthBucketNormalizesZones(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)

	// 1 Jan 02:00 WIB is still 31 Dec in UTC.
	achievement := &Achievement{
		AchievementDate: time.Date(2025, time.January, 1, 2, 0, 0, 0, jakarta),
	}
	assert.Equal(t,
		time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
		achievement.MonthBucket())

	// The equivalent UTC instant lands in the same bucket.
	achievement.AchievementDate = achievement.AchievementDate.UTC()
	assert.Equal(t,
		time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
		achievement.MonthBucket())
}

func TestLeaderboardAddScore(t *testing.T) {
	row := &MonthlyLeaderboard{}
	row.AddScore(AchievementTypeAcademic, 40)
	row.AddScore(AchievementTypeCompetency, 25)
	row.AddScore(AchievementTypeOrganizational, 10)

	assert.Equal(t, 40, row.ScoreAcademic)
	assert.Equal(t, 25, row.ScoreCompetency)
	assert.Equal(t, 10, row.ScoreOrganizational)
	assert.Equal(t, 75, row.Score)

	// Unknown types still count toward the total.
	row.AddScore(9, 5)
	assert.Equal(t, 80, row.Score)
	assert.Equal(t, 40, row.ScoreAcademic)
}
