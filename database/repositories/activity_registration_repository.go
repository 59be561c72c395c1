package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/uptrace/bun"
)

type ActivityRegistrationRepository interface {
	Create(ctx context.Context, registration *models.ActivityRegistration) error
	GetByID(ctx context.Context, id int64) (*models.ActivityRegistration, error)
	ListByActivity(ctx context.Context, activityID int64, status string, limit, offset int) ([]*models.ActivityRegistration, int, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.ActivityRegistration, error)
	Exists(ctx context.Context, userID, activityID int64) (bool, error)
	UpdateStatusByFilter(ctx context.Context, activityID int64, name, currentStatus, newStatus string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	CountByActivity(ctx context.Context, activityID int64) (int, error)
}

type activityRegistrationRepository struct {
	db *bun.DB
}

func NewActivityRegistrationRepository(db *bun.DB) ActivityRegistrationRepository {
	return &activityRegistrationRepository{db: db}
}

func (r *activityRegistrationRepository) Create(ctx context.Context, registration *models.ActivityRegistration) error {
	exists, err := r.Exists(ctx, registration.UserID, registration.ActivityID)
	if err != nil {
		return err
	}
	if exists {
		return &ConflictError{Entity: "activity registration", Field: "user_id", Value: registration.UserID}
	}

	if registration.Status == "" {
		registration.Status = models.RegistrationStatusRegistered
	}
	registration.CreatedAt = time.Now()
	registration.UpdatedAt = time.Now()
	_, err = r.db.NewInsert().Model(registration).Exec(ctx)
	return err
}

func (r *activityRegistrationRepository) GetByID(ctx context.Context, id int64) (*models.ActivityRegistration, error) {
	registration := new(models.ActivityRegistration)
	err := r.db.NewSelect().
		Model(registration).
		Relation("Member").
		Relation("Member.Profile").
		Relation("Activity").
		Where("ar.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "activity registration", ID: id}
		}
		return nil, err
	}
	return registration, nil
}

func (r *activityRegistrationRepository) ListByActivity(ctx context.Context, activityID int64, status string, limit, offset int) ([]*models.ActivityRegistration, int, error) {
	var registrations []*models.ActivityRegistration
	query := r.db.NewSelect().
		Model(&registrations).
		Relation("Member").
		Relation("Member.Profile").
		Where("ar.activity_id = ?", activityID)
	if status != "" {
		query = query.Where("ar.status = ?", status)
	}

	total, err := query.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	err = query.
		Order("ar.created_at ASC").
		Scan(ctx)
	return registrations, total, err
}

func (r *activityRegistrationRepository) ListByUser(ctx context.Context, userID int64) ([]*models.ActivityRegistration, error) {
	var registrations []*models.ActivityRegistration
	err := r.db.NewSelect().
		Model(&registrations).
		Relation("Activity").
		Where("ar.user_id = ?", userID).
		Order("ar.created_at DESC").
		Scan(ctx)
	return registrations, err
}

func (r *activityRegistrationRepository) Exists(ctx context.Context, userID, activityID int64) (bool, error) {
	return r.db.NewSelect().
		Model((*models.ActivityRegistration)(nil)).
		Where("user_id = ? AND activity_id = ?", userID, activityID).
		Exists(ctx)
}

// UpdateStatusByFilter rewrites the status of the activity's
// registrations matching the registrant name and current status, both
// optional. Runs as one scoped UPDATE with no progression side effects.
func (r *activityRegistrationRepository) UpdateStatusByFilter(ctx context.Context, activityID int64, name, currentStatus, newStatus string) (int64, error) {
	query := r.db.NewUpdate().
		Model((*models.ActivityRegistration)(nil)).
		Set("status = ?", newStatus).
		Set("updated_at = ?", time.Now()).
		Where("activity_id = ?", activityID)

	if currentStatus != "" {
		query = query.Where("status = ?", currentStatus)
	}
	if name != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM profiles p WHERE p.user_id = ar.user_id AND p.name = ?)",
			name)
	}

	res, err := query.Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

func (r *activityRegistrationRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.NewDelete().
		Model((*models.ActivityRegistration)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()
	return affected, nil
}

func (r *activityRegistrationRepository) CountByActivity(ctx context.Context, activityID int64) (int, error) {
	return r.db.NewSelect().
		Model((*models.ActivityRegistration)(nil)).
		Where("activity_id = ?", activityID).
		Count(ctx)
}
