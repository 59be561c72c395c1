package services

import (
	"context"
	"testing"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/database/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type monthKey struct {
	userID int64
	month  time.Time
}

type fakeScoringStore struct {
	achievements map[int64]*models.Achievement
	monthly      map[monthKey]*models.MonthlyLeaderboard
	lifetime     map[int64]*models.LifetimeLeaderboard
	nextID       int64

	failLifetimeSave bool
}

func newFakeScoringStore() *fakeScoringStore {
	return &fakeScoringStore{
		achievements: make(map[int64]*models.Achievement),
		monthly:      make(map[monthKey]*models.MonthlyLeaderboard),
		lifetime:     make(map[int64]*models.LifetimeLeaderboard),
		nextID:       1000,
	}
}

func (f *fakeScoringStore) WithinTx(ctx context.Context, fn func(ctx context.Context, store repositories.ScoringStore) error) error {
	achievements := make(map[int64]*models.Achievement, len(f.achievements))
	for id, a := range f.achievements {
		cp := *a
		achievements[id] = &cp
	}
	monthly := make(map[monthKey]*models.MonthlyLeaderboard, len(f.monthly))
	for k, m := range f.monthly {
		cp := *m
		monthly[k] = &cp
	}
	lifetime := make(map[int64]*models.LifetimeLeaderboard, len(f.lifetime))
	for k, l := range f.lifetime {
		cp := *l
		lifetime[k] = &cp
	}

	if err := fn(ctx, f); err != nil {
		f.achievements = achievements
		f.monthly = monthly
		f.lifetime = lifetime
		return err
	}
	return nil
}

func (f *fakeScoringStore) AchievementByID(_ context.Context, id int64) (*models.Achievement, error) {
	achievement, ok := f.achievements[id]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "achievement", ID: id}
	}
	cp := *achievement
	return &cp, nil
}

func (f *fakeScoringStore) SaveAchievement(_ context.Context, achievement *models.Achievement) error {
	if _, ok := f.achievements[achievement.ID]; !ok {
		return &repositories.NotFoundError{Entity: "achievement", ID: achievement.ID}
	}
	cp := *achievement
	f.achievements[achievement.ID] = &cp
	return nil
}

func (f *fakeScoringStore) MonthlyForUpdate(_ context.Context, userID int64, month time.Time) (*models.MonthlyLeaderboard, error) {
	row, ok := f.monthly[monthKey{userID, month}]
	if !ok {
		return nil, nil
	}
	return row, nil
}

func (f *fakeScoringStore) SaveMonthly(_ context.Context, row *models.MonthlyLeaderboard) error {
	if row.ID == 0 {
		f.nextID++
		row.ID = f.nextID
	}
	f.monthly[monthKey{row.UserID, row.Month}] = row
	return nil
}

func (f *fakeScoringStore) LifetimeForUpdate(_ context.Context, userID int64) (*models.LifetimeLeaderboard, error) {
	row, ok := f.lifetime[userID]
	if !ok {
		return nil, nil
	}
	return row, nil
}

func (f *fakeScoringStore) SaveLifetime(_ context.Context, row *models.LifetimeLeaderboard) error {
	if f.failLifetimeSave {
		return errSaveFailed
	}
	if row.ID == 0 {
		f.nextID++
		row.ID = f.nextID
	}
	f.lifetime[row.UserID] = row
	return nil
}

func seedAchievement(store *fakeScoringStore) *models.Achievement {
	achievement := &models.Achievement{
		ID:              7,
		UserID:          1,
		Name:            "Juara 1 Lomba Esai Nasional",
		AchievementDate: time.Date(2025, time.March, 18, 0, 0, 0, 0, time.UTC),
		Type:            models.AchievementTypeAcademic,
		Score:           50,
		Status:          models.AchievementStatusPending,
	}
	store.achievements[7] = achievement
	return achievement
}

func TestReview_ApproveCreatesAggregateRows(t *testing.T) {
	store := newFakeScoringStore()
	seedAchievement(store)
	svc := NewScoringService(store)

	reviewed, err := svc.Review(context.Background(), 7, 99, ReviewInput{Status: models.AchievementStatusApproved})
	require.NoError(t, err)

	assert.Equal(t, models.AchievementStatusApproved, reviewed.Status)
	assert.Equal(t, int64(99), reviewed.ApproverID)
	assert.False(t, reviewed.ApprovedAt.IsZero())

	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	monthly := store.monthly[monthKey{1, march}]
	require.NotNil(t, monthly, "monthly row is created on first approval")
	assert.Equal(t, 50, monthly.ScoreAcademic)
	assert.Equal(t, 0, monthly.ScoreCompetency)
	assert.Equal(t, 50, monthly.Score)

	lifetime := store.lifetime[1]
	require.NotNil(t, lifetime)
	assert.Equal(t, 50, lifetime.ScoreAcademic)
	assert.Equal(t, 50, lifetime.Score)
}

func TestReview_MonthBucketIsFirstOfMonth(t *testing.T) {
	store := newFakeScoringStore()
	achievement := seedAchievement(store)
	achievement.AchievementDate = time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC)
	svc := NewScoringService(store)

	_, err := svc.Review(context.Background(), 7, 99, ReviewInput{Status: models.AchievementStatusApproved})
	require.NoError(t, err)

	december := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	assert.NotNil(t, store.monthly[monthKey{1, december}])
}

func TestReview_ApproveAccumulatesIntoExistingRows(t *testing.T) {
	store := newFakeScoringStore()
	seedAchievement(store)
	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	store.monthly[monthKey{1, march}] = &models.MonthlyLeaderboard{
		ID: 1, UserID: 1, Month: march,
		ScoreAcademic: 30, ScoreCompetency: 10, Score: 40,
	}
	store.lifetime[1] = &models.LifetimeLeaderboard{
		ID: 2, UserID: 1,
		ScoreAcademic: 200, Score: 250, ScoreOrganizational: 50,
	}
	svc := NewScoringService(store)

	_, err := svc.Review(context.Background(), 7, 99, ReviewInput{Status: models.AchievementStatusApproved})
	require.NoError(t, err)

	monthly := store.monthly[monthKey{1, march}]
	assert.Equal(t, 80, monthly.ScoreAcademic)
	assert.Equal(t, 10, monthly.ScoreCompetency, "other categories untouched")
	assert.Equal(t, 90, monthly.Score)

	lifetime := store.lifetime[1]
	assert.Equal(t, 250, lifetime.ScoreAcademic)
	assert.Equal(t, 300, lifetime.Score)
}

func TestReview_ScoreAndRemarkOverrides(t *testing.T) {
	store := newFakeScoringStore()
	seedAchievement(store)
	svc := NewScoringService(store)

	score := 75
	remark := "Skor disesuaikan dengan bukti sertifikat"
	reviewed, err := svc.Review(context.Background(), 7, 99, ReviewInput{
		Status: models.AchievementStatusApproved,
		Score:  &score,
		Remark: &remark,
	})
	require.NoError(t, err)

	assert.Equal(t, 75, reviewed.Score)
	assert.Equal(t, remark, reviewed.Remark)

	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 75, store.monthly[monthKey{1, march}].Score, "override folds in, not the submitted score")
}

func TestReview_RejectSkipsAggregation(t *testing.T) {
	store := newFakeScoringStore()
	seedAchievement(store)
	svc := NewScoringService(store)

	remark := "Bukti tidak terbaca"
	reviewed, err := svc.Review(context.Background(), 7, 99, ReviewInput{
		Status: models.AchievementStatusRejected,
		Remark: &remark,
	})
	require.NoError(t, err)

	assert.Equal(t, models.AchievementStatusRejected, reviewed.Status)
	assert.Equal(t, int64(99), reviewed.ApproverID)
	assert.Empty(t, store.monthly)
	assert.Empty(t, store.lifetime)
}

func TestReview_ReapprovalAddsScoreAgain(t *testing.T) {
	// Documented behavior: approving twice folds the score in twice.
	// Reject first to correct a mistaken approval.
	store := newFakeScoringStore()
	seedAchievement(store)
	svc := NewScoringService(store)

	_, err := svc.Review(context.Background(), 7, 99, ReviewInput{Status: models.AchievementStatusApproved})
	require.NoError(t, err)
	_, err = svc.Review(context.Background(), 7, 99, ReviewInput{Status: models.AchievementStatusApproved})
	require.NoError(t, err)

	assert.Equal(t, 100, store.lifetime[1].Score)
}

func TestReview_InvalidStatus(t *testing.T) {
	store := newFakeScoringStore()
	seedAchievement(store)
	svc := NewScoringService(store)

	_, err := svc.Review(context.Background(), 7, 99, ReviewInput{Status: 5})
	assert.ErrorIs(t, err, ErrInvalidReviewStatus)

	_, err = svc.Review(context.Background(), 7, 99, ReviewInput{Status: models.AchievementStatusPending})
	assert.ErrorIs(t, err, ErrInvalidReviewStatus)
}

func TestReview_UnknownAchievement(t *testing.T) {
	store := newFakeScoringStore()
	svc := NewScoringService(store)

	_, err := svc.Review(context.Background(), 404, 99, ReviewInput{Status: models.AchievementStatusApproved})
	var nfe *repositories.NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestReview_LifetimeFailureRollsBackEverything(t *testing.T) {
	store := newFakeScoringStore()
	seedAchievement(store)
	store.failLifetimeSave = true
	svc := NewScoringService(store)

	_, err := svc.Review(context.Background(), 7, 99, ReviewInput{Status: models.AchievementStatusApproved})
	require.Error(t, err)

	assert.Equal(t, models.AchievementStatusPending, store.achievements[7].Status)
	assert.Empty(t, store.monthly, "monthly write must roll back with the lifetime failure")
}
