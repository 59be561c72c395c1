package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/uptrace/bun"
)

type CustomFormRepository interface {
	Create(ctx context.Context, form *models.CustomForm) error
	GetByID(ctx context.Context, id int64) (*models.CustomForm, error)
	GetByFeature(ctx context.Context, featureType string, featureID int64) (*models.CustomForm, error)
	List(ctx context.Context) ([]*models.CustomForm, error)
	ListUnattached(ctx context.Context) ([]*models.CustomForm, error)
	Update(ctx context.Context, form *models.CustomForm) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type customFormRepository struct {
	db *bun.DB
}

func NewCustomFormRepository(db *bun.DB) CustomFormRepository {
	return &customFormRepository{db: db}
}

func (r *customFormRepository) Create(ctx context.Context, form *models.CustomForm) error {
	if form.FeatureID != nil {
		existing, err := r.GetByFeature(ctx, form.FeatureType, *form.FeatureID)
		if err != nil {
			var nfe *NotFoundError
			if !errors.As(err, &nfe) {
				return err
			}
		}
		if existing != nil {
			return &ConflictError{Entity: "custom form", Field: "feature_id", Value: *form.FeatureID}
		}
	}

	form.CreatedAt = time.Now()
	form.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(form).Exec(ctx)
	return err
}

func (r *customFormRepository) GetByID(ctx context.Context, id int64) (*models.CustomForm, error) {
	form := new(models.CustomForm)
	err := r.db.NewSelect().
		Model(form).
		Where("cf.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "custom form", ID: id}
		}
		return nil, err
	}
	return form, nil
}

func (r *customFormRepository) GetByFeature(ctx context.Context, featureType string, featureID int64) (*models.CustomForm, error) {
	form := new(models.CustomForm)
	err := r.db.NewSelect().
		Model(form).
		Where("cf.feature_type = ? AND cf.feature_id = ?", featureType, featureID).
		Where("cf.is_active = TRUE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "custom form", ID: featureID}
		}
		return nil, err
	}
	return form, nil
}

func (r *customFormRepository) List(ctx context.Context) ([]*models.CustomForm, error) {
	var forms []*models.CustomForm
	err := r.db.NewSelect().
		Model(&forms).
		Order("cf.created_at DESC").
		Scan(ctx)
	return forms, err
}

func (r *customFormRepository) ListUnattached(ctx context.Context) ([]*models.CustomForm, error) {
	var forms []*models.CustomForm
	err := r.db.NewSelect().
		Model(&forms).
		Where("cf.feature_id IS NULL").
		Order("cf.created_at DESC").
		Scan(ctx)
	return forms, err
}

func (r *customFormRepository) Update(ctx context.Context, form *models.CustomForm) error {
	form.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(form).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "custom form", ID: form.ID}
	}
	return nil
}

func (r *customFormRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*models.CustomForm)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}
