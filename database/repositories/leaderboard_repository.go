package repositories

import (
	"context"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/uptrace/bun"
)

type LeaderboardRepository interface {
	TopMonthly(ctx context.Context, month time.Time, limit int) ([]*models.MonthlyLeaderboard, error)
	TopLifetime(ctx context.Context, limit int) ([]*models.LifetimeLeaderboard, error)
	MonthlyForUser(ctx context.Context, userID int64, month time.Time) (*models.MonthlyLeaderboard, error)
	LifetimeForUser(ctx context.Context, userID int64) (*models.LifetimeLeaderboard, error)
}

type leaderboardRepository struct {
	db *bun.DB
}

func NewLeaderboardRepository(db *bun.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) TopMonthly(ctx context.Context, month time.Time, limit int) ([]*models.MonthlyLeaderboard, error) {
	var rows []*models.MonthlyLeaderboard
	err := r.db.NewSelect().
		Model(&rows).
		Relation("Member").
		Relation("Member.Profile").
		Where("ml.month = ?", month).
		Order("ml.score DESC").
		Limit(limit).
		Scan(ctx)
	return rows, err
}

func (r *leaderboardRepository) TopLifetime(ctx context.Context, limit int) ([]*models.LifetimeLeaderboard, error) {
	var rows []*models.LifetimeLeaderboard
	err := r.db.NewSelect().
		Model(&rows).
		Relation("Member").
		Relation("Member.Profile").
		Order("ll.score DESC").
		Limit(limit).
		Scan(ctx)
	return rows, err
}

// MonthlyForUser returns nil without error when the user has no row for
// that month; absence of a row means a zero score, not a failure.
func (r *leaderboardRepository) MonthlyForUser(ctx context.Context, userID int64, month time.Time) (*models.MonthlyLeaderboard, error) {
	var rows []*models.MonthlyLeaderboard
	err := r.db.NewSelect().
		Model(&rows).
		Where("ml.user_id = ? AND ml.month = ?", userID, month).
		Limit(1).
		Scan(ctx)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *leaderboardRepository) LifetimeForUser(ctx context.Context, userID int64) (*models.LifetimeLeaderboard, error) {
	var rows []*models.LifetimeLeaderboard
	err := r.db.NewSelect().
		Model(&rows).
		Where("ll.user_id = ?", userID).
		Limit(1).
		Scan(ctx)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}
