package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/uptrace/bun"
)

type ClubRegistrationRepository interface {
	Create(ctx context.Context, registration *models.ClubRegistration) error
	GetByID(ctx context.Context, id int64) (*models.ClubRegistration, error)
	ListByClub(ctx context.Context, clubID int64, status string, limit, offset int) ([]*models.ClubRegistration, int, error)
	UpdateStatus(ctx context.Context, id int64, status string) (int64, error)
	UpdateStatusByIDs(ctx context.Context, ids []int64, status string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type clubRegistrationRepository struct {
	db *bun.DB
}

func NewClubRegistrationRepository(db *bun.DB) ClubRegistrationRepository {
	return &clubRegistrationRepository{db: db}
}

func (r *clubRegistrationRepository) Create(ctx context.Context, registration *models.ClubRegistration) error {
	exists, err := r.db.NewSelect().
		Model((*models.ClubRegistration)(nil)).
		Where("club_id = ? AND member_id = ?", registration.ClubID, registration.MemberID).
		Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return &ConflictError{Entity: "club registration", Field: "member_id", Value: registration.MemberID}
	}

	if registration.Status == "" {
		registration.Status = models.ClubRegistrationStatusPending
	}
	registration.CreatedAt = time.Now()
	registration.UpdatedAt = time.Now()
	_, err = r.db.NewInsert().Model(registration).Exec(ctx)
	return err
}

func (r *clubRegistrationRepository) GetByID(ctx context.Context, id int64) (*models.ClubRegistration, error) {
	registration := new(models.ClubRegistration)
	err := r.db.NewSelect().
		Model(registration).
		Relation("Member").
		Relation("Member.Profile").
		Relation("Club").
		Where("cr.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "club registration", ID: id}
		}
		return nil, err
	}
	return registration, nil
}

func (r *clubRegistrationRepository) ListByClub(ctx context.Context, clubID int64, status string, limit, offset int) ([]*models.ClubRegistration, int, error) {
	var registrations []*models.ClubRegistration
	query := r.db.NewSelect().
		Model(&registrations).
		Relation("Member").
		Relation("Member.Profile").
		Where("cr.club_id = ?", clubID)
	if status != "" {
		query = query.Where("cr.status = ?", status)
	}

	total, err := query.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	err = query.
		Order("cr.created_at ASC").
		Scan(ctx)
	return registrations, total, err
}

func (r *clubRegistrationRepository) UpdateStatus(ctx context.Context, id int64, status string) (int64, error) {
	res, err := r.db.NewUpdate().
		Model((*models.ClubRegistration)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

func (r *clubRegistrationRepository) UpdateStatusByIDs(ctx context.Context, ids []int64, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.NewUpdate().
		Model((*models.ClubRegistration)(nil)).
		Set("status = ?", status).
		Set("updated_at = ?", time.Now()).
		Where("id IN (?)", bun.In(ids)).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

func (r *clubRegistrationRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*models.ClubRegistration)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}
