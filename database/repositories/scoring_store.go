package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/uptrace/bun"
)

// ScoringStore is the data boundary of the achievement review workflow.
// Leaderboard rows are fetched and saved individually so the service can
// fold scores in memory before writing back, inside one transaction.
type ScoringStore interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, store ScoringStore) error) error

	AchievementByID(ctx context.Context, id int64) (*models.Achievement, error)
	SaveAchievement(ctx context.Context, achievement *models.Achievement) error

	MonthlyForUpdate(ctx context.Context, userID int64, month time.Time) (*models.MonthlyLeaderboard, error)
	SaveMonthly(ctx context.Context, row *models.MonthlyLeaderboard) error

	LifetimeForUpdate(ctx context.Context, userID int64) (*models.LifetimeLeaderboard, error)
	SaveLifetime(ctx context.Context, row *models.LifetimeLeaderboard) error
}

type scoringStore struct {
	db   bun.IDB
	root *bun.DB
}

func NewScoringStore(db *bun.DB) ScoringStore {
	return &scoringStore{db: db, root: db}
}

func (s *scoringStore) WithinTx(ctx context.Context, fn func(ctx context.Context, store ScoringStore) error) error {
	if s.root == nil {
		return fn(ctx, s)
	}
	return s.root.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &scoringStore{db: tx})
	})
}

func (s *scoringStore) AchievementByID(ctx context.Context, id int64) (*models.Achievement, error) {
	achievement := new(models.Achievement)
	err := s.db.NewSelect().
		Model(achievement).
		Where("ach.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "achievement", ID: id}
		}
		return nil, err
	}
	return achievement, nil
}

func (s *scoringStore) SaveAchievement(ctx context.Context, achievement *models.Achievement) error {
	achievement.UpdatedAt = time.Now()
	res, err := s.db.NewUpdate().
		Model(achievement).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "achievement", ID: achievement.ID}
	}
	return nil
}

// MonthlyForUpdate row-locks the user's monthly row when it exists; nil
// result with nil error means no row yet.
func (s *scoringStore) MonthlyForUpdate(ctx context.Context, userID int64, month time.Time) (*models.MonthlyLeaderboard, error) {
	var rows []*models.MonthlyLeaderboard
	err := s.db.NewSelect().
		Model(&rows).
		Where("ml.user_id = ? AND ml.month = ?", userID, month).
		For("UPDATE").
		Limit(1).
		Scan(ctx)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (s *scoringStore) SaveMonthly(ctx context.Context, row *models.MonthlyLeaderboard) error {
	now := time.Now()
	row.UpdatedAt = now
	if row.ID == 0 {
		row.CreatedAt = now
		_, err := s.db.NewInsert().Model(row).Exec(ctx)
		return err
	}
	_, err := s.db.NewUpdate().Model(row).WherePK().Exec(ctx)
	return err
}

func (s *scoringStore) LifetimeForUpdate(ctx context.Context, userID int64) (*models.LifetimeLeaderboard, error) {
	var rows []*models.LifetimeLeaderboard
	err := s.db.NewSelect().
		Model(&rows).
		Where("ll.user_id = ?", userID).
		For("UPDATE").
		Limit(1).
		Scan(ctx)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (s *scoringStore) SaveLifetime(ctx context.Context, row *models.LifetimeLeaderboard) error {
	now := time.Now()
	row.UpdatedAt = now
	if row.ID == 0 {
		row.CreatedAt = now
		_, err := s.db.NewInsert().Model(row).Exec(ctx)
		return err
	}
	_, err := s.db.NewUpdate().Model(row).WherePK().Exec(ctx)
	return err
}
