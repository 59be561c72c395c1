package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/uptrace/bun"
)

type ClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByID(ctx context.Context, id int64) (*models.Club, error)
	List(ctx context.Context, visibleOnly bool) ([]*models.Club, error)
	Update(ctx context.Context, club *models.Club) error
	Delete(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context) (int, error)
	CloseExpiredRegistrations(ctx context.Context, now time.Time) (int64, error)
	HideEndedClubs(ctx context.Context, now time.Time) (int64, error)
}

type clubRepository struct {
	db *bun.DB
}

func NewClubRepository(db *bun.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) Create(ctx context.Context, club *models.Club) error {
	club.CreatedAt = time.Now()
	club.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(club).Exec(ctx)
	return err
}

func (r *clubRepository) GetByID(ctx context.Context, id int64) (*models.Club, error) {
	club := new(models.Club)
	err := r.db.NewSelect().
		Model(club).
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "club", ID: id}
		}
		return nil, err
	}
	return club, nil
}

func (r *clubRepository) List(ctx context.Context, visibleOnly bool) ([]*models.Club, error) {
	var clubs []*models.Club
	query := r.db.NewSelect().Model(&clubs)
	if visibleOnly {
		query = query.Where("c.is_show = TRUE")
	}
	err := query.Order("c.name ASC").Scan(ctx)
	return clubs, err
}

func (r *clubRepository) Update(ctx context.Context, club *models.Club) error {
	club.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(club).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "club", ID: club.ID}
	}
	return nil
}

func (r *clubRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.ClubRegistration)(nil)).
			Where("club_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().
			Model((*models.Club)(nil)).
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

func (r *clubRepository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*models.Club)(nil)).Count(ctx)
}

// CloseExpiredRegistrations flips is_registration_open off for clubs whose
// registration window has passed. Run by the maintenance sweep.
func (r *clubRepository) CloseExpiredRegistrations(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.NewUpdate().
		Model((*models.Club)(nil)).
		Set("is_registration_open = FALSE").
		Set("updated_at = ?", now).
		Where("is_registration_open = TRUE").
		Where("registration_end_date IS NOT NULL").
		Where("registration_end_date < ?", now).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

// HideEndedClubs hides clubs whose period ended.
func (r *clubRepository) HideEndedClubs(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.NewUpdate().
		Model((*models.Club)(nil)).
		Set("is_show = FALSE").
		Set("updated_at = ?", now).
		Where("is_show = TRUE").
		Where("end_period IS NOT NULL").
		Where("end_period < ?", now).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}
