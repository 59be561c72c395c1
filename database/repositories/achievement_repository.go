package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/uptrace/bun"
)

type AchievementRepository interface {
	Create(ctx context.Context, achievement *models.Achievement) error
	GetByID(ctx context.Context, id int64) (*models.Achievement, error)
	List(ctx context.Context, filter AchievementFilter) ([]*models.Achievement, int, error)
	Update(ctx context.Context, achievement *models.Achievement) error
	Delete(ctx context.Context, id int64) (int64, error)
	CountByStatus(ctx context.Context, status int) (int, error)
}

// AchievementFilter narrows the admin listing. Status is a pointer so the
// zero status (pending) stays filterable.
type AchievementFilter struct {
	UserID *int64
	Status *int
	Type   *int
	Limit  int
	Offset int
}

type achievementRepository struct {
	db *bun.DB
}

func NewAchievementRepository(db *bun.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Create(ctx context.Context, achievement *models.Achievement) error {
	achievement.Status = models.AchievementStatusPending
	achievement.AchievementDate = achievement.AchievementDate.UTC()
	achievement.CreatedAt = time.Now()
	achievement.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(achievement).Exec(ctx)
	return err
}

func (r *achievementRepository) GetByID(ctx context.Context, id int64) (*models.Achievement, error) {
	achievement := new(models.Achievement)
	err := r.db.NewSelect().
		Model(achievement).
		Relation("Member").
		Relation("Member.Profile").
		Relation("Approver").
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

func (r *achievementRepository) List(ctx context.Context, filter AchievementFilter) ([]*models.Achievement, int, error) {
	var achievements []*models.Achievement
	query := r.db.NewSelect().
		Model(&achievements).
		Relation("Member").
		Relation("Member.Profile")

	if filter.UserID != nil {
		query = query.Where("ach.user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("ach.status = ?", *filter.Status)
	}
	if filter.Type != nil {
		query = query.Where("ach.type = ?", *filter.Type)
	}

	total, err := query.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	err = query.
		Order("ach.created_at DESC").
		Scan(ctx)
	return achievements, total, err
}

func (r *achievementRepository) Update(ctx context.Context, achievement *models.Achievement) error {
	achievement.AchievementDate = achievement.AchievementDate.UTC()
	achievement.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
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

func (r *achievementRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*models.Achievement)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

func (r *achievementRepository) CountByStatus(ctx context.Context, status int) (int, error) {
	return r.db.NewSelect().
		Model((*models.Achievement)(nil)).
		Where("status = ?", status).
		Count(ctx)
}
