package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/uptrace/bun"
)

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id int64) (*models.Activity, error)
	GetBySlug(ctx context.Context, slug string) (*models.Activity, error)
	List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.Activity, int, error)
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context) (int, error)
}

type activityRepository struct {
	db *bun.DB
}

func NewActivityRepository(db *bun.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	activity.CreatedAt = time.Now()
	activity.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(activity).Exec(ctx)
	return err
}

func (r *activityRepository) GetByID(ctx context.Context, id int64) (*models.Activity, error) {
	activity := new(models.Activity)
	err := r.db.NewSelect().
		Model(activity).
		Where("a.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "activity", ID: id}
		}
		return nil, err
	}
	return activity, nil
}

func (r *activityRepository) GetBySlug(ctx context.Context, slug string) (*models.Activity, error) {
	activity := new(models.Activity)
	err := r.db.NewSelect().
		Model(activity).
		Where("a.slug = ?", slug).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "activity", ID: slug}
		}
		return nil, err
	}
	return activity, nil
}

func (r *activityRepository) List(ctx context.Context, publishedOnly bool, limit, offset int) ([]*models.Activity, int, error) {
	var activities []*models.Activity
	query := r.db.NewSelect().Model(&activities)
	if publishedOnly {
		query = query.Where("a.is_published = TRUE")
	}

	total, err := query.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	err = query.
		Order("a.created_at DESC").
		Scan(ctx)
	return activities, total, err
}

func (r *activityRepository) Update(ctx context.Context, activity *models.Activity) error {
	activity.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(activity).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "activity", ID: activity.ID}
	}
	return nil
}

func (r *activityRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.ActivityRegistration)(nil)).
			Where("activity_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().
			Model((*models.Activity)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		affected, _ = res.RowsAffected()
		return nil
	})
	return affected, err
}

func (r *activityRepository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*models.Activity)(nil)).Count(ctx)
}
