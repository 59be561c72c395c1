package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/uptrace/bun"
)

type CertificateTemplateRepository interface {
	Create(ctx context.Context, template *models.CertificateTemplate) error
	GetByID(ctx context.Context, id int64) (*models.CertificateTemplate, error)
	List(ctx context.Context, activeOnly bool) ([]*models.CertificateTemplate, error)
	Update(ctx context.Context, template *models.CertificateTemplate) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type certificateTemplateRepository struct {
	db *bun.DB
}

func NewCertificateTemplateRepository(db *bun.DB) CertificateTemplateRepository {
	return &certificateTemplateRepository{db: db}
}

func (r *certificateTemplateRepository) Create(ctx context.Context, template *models.CertificateTemplate) error {
	template.CreatedAt = time.Now()
	template.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(template).Exec(ctx)
	return err
}

func (r *certificateTemplateRepository) GetByID(ctx context.Context, id int64) (*models.CertificateTemplate, error) {
	template := new(models.CertificateTemplate)
	err := r.db.NewSelect().
		Model(template).
		Where("ct.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "certificate template", ID: id}
		}
		return nil, err
	}
	return template, nil
}

func (r *certificateTemplateRepository) List(ctx context.Context, activeOnly bool) ([]*models.CertificateTemplate, error) {
	var templates []*models.CertificateTemplate
	query := r.db.NewSelect().Model(&templates)
	if activeOnly {
		query = query.Where("ct.is_active = TRUE")
	}
	err := query.Order("ct.created_at DESC").Scan(ctx)
	return templates, err
}

func (r *certificateTemplateRepository) Update(ctx context.Context, template *models.CertificateTemplate) error {
	template.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(template).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "certificate template", ID: template.ID}
	}
	return nil
}

func (r *certificateTemplateRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*models.CertificateTemplate)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}
