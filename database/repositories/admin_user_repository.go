package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/uptrace/bun"
)

type AdminUserRepository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	GetByID(ctx context.Context, id int64) (*models.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	List(ctx context.Context) ([]*models.AdminUser, error)
	Update(ctx context.Context, user *models.AdminUser) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type adminUserRepository struct {
	db *bun.DB
}

func NewAdminUserRepository(db *bun.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

func (r *adminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	return err
}

func (r *adminUserRepository) GetByID(ctx context.Context, id int64) (*models.AdminUser, error) {
	user := new(models.AdminUser)
	err := r.db.NewSelect().
		Model(user).
		Where("au.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "admin user", ID: id}
		}
		return nil, err
	}
	return user, nil
}

func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	user := new(models.AdminUser)
	err := r.db.NewSelect().
		Model(user).
		Where("au.email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "admin user", ID: email}
		}
		return nil, err
	}
	return user, nil
}

func (r *adminUserRepository) List(ctx context.Context) ([]*models.AdminUser, error) {
	var users []*models.AdminUser
	err := r.db.NewSelect().
		Model(&users).
		Order("au.created_at DESC").
		Scan(ctx)
	return users, err
}

func (r *adminUserRepository) Update(ctx context.Context, user *models.AdminUser) error {
	user.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "admin user", ID: user.ID}
	}
	return nil
}

func (r *adminUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*models.AdminUser)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}
