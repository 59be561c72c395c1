package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/uptrace/bun"
)

type RuangCurhatRepository interface {
	List(ctx context.Context, filter RuangCurhatFilter) ([]*models.RuangCurhat, int, error)
	GetByID(ctx context.Context, id int64) (*models.RuangCurhat, error)
	Update(ctx context.Context, request *models.RuangCurhat) error
	Count(ctx context.Context) (int, error)
}

// RuangCurhatFilter narrows the counseling listing. Name and AdminName
// are substring matches on the requester's profile name and the assigned
// admin's name; the rest match exactly.
type RuangCurhatFilter struct {
	Status    string
	Name      string
	Gender    string
	AdminName string
	Limit     int
	Offset    int
}

type ruangCurhatRepository struct {
	db *bun.DB
}

func NewRuangCurhatRepository(db *bun.DB) RuangCurhatRepository {
	return &ruangCurhatRepository{db: db}
}

func (r *ruangCurhatRepository) List(ctx context.Context, filter RuangCurhatFilter) ([]*models.RuangCurhat, int, error) {
	var requests []*models.RuangCurhat
	query := r.db.NewSelect().
		Model(&requests).
		Relation("Member").
		Relation("Member.Profile").
		Relation("AdminUser")

	if filter.Status != "" {
		query = query.Where("rc.status = ?", filter.Status)
	}

	name := strings.TrimSpace(filter.Name)
	if name != "" || filter.Gender != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM profiles p WHERE p.user_id = rc.user_id AND (? = '' OR p.name ILIKE ?) AND (? = '' OR p.gender = ?))",
			name, "%"+name+"%", filter.Gender, filter.Gender)
	}

	if adminName := strings.TrimSpace(filter.AdminName); adminName != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM admin_users au WHERE au.id = rc.admin_user_id AND au.name ILIKE ?)",
			"%"+adminName+"%")
	}

	total, err := query.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	err = query.
		Order("rc.created_at DESC").
		Scan(ctx)
	return requests, total, err
}

func (r *ruangCurhatRepository) GetByID(ctx context.Context, id int64) (*models.RuangCurhat, error) {
	request := new(models.RuangCurhat)
	err := r.db.NewSelect().
		Model(request).
		Relation("Member").
		Relation("Member.Profile").
		Relation("AdminUser").
		Where("rc.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "counseling request", ID: id}
		}
		return nil, err
	}
	return request, nil
}

func (r *ruangCurhatRepository) Update(ctx context.Context, request *models.RuangCurhat) error {
	request.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(request).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "counseling request", ID: request.ID}
	}
	return nil
}

func (r *ruangCurhatRepository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*models.RuangCurhat)(nil)).Count(ctx)
}
