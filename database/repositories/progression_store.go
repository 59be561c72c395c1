package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/uptrace/bun"
)

// ProgressionStore is the data boundary of the registration status
// workflow. All reads and writes issued through the store handed to the
// WithinTx callback share one transaction.
type ProgressionStore interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, store ProgressionStore) error) error

	RegistrationsByIDs(ctx context.Context, ids []int64) ([]*models.ActivityRegistration, error)
	RegistrationsForUsers(ctx context.Context, activityID int64, userIDs []int64) ([]*models.ActivityRegistration, error)
	UpdateRegistrationStatus(ctx context.Context, ids []int64, status string) (int64, error)

	ActivityByID(ctx context.Context, id int64) (*models.Activity, error)
	MembersByEmails(ctx context.Context, emails []string) ([]*models.Member, error)
	ProfilesByUserIDs(ctx context.Context, userIDs []int64) ([]*models.Profile, error)
	SaveProfileProgression(ctx context.Context, profile *models.Profile) error
}

type progressionStore struct {
	db   bun.IDB
	root *bun.DB
}

// NewProgressionStore wires the store to the database. The root handle is
// kept separately because bun.IDB cannot open transactions.
func NewProgressionStore(db *bun.DB) ProgressionStore {
	return &progressionStore{db: db, root: db}
}

func (s *progressionStore) WithinTx(ctx context.Context, fn func(ctx context.Context, store ProgressionStore) error) error {
	if s.root == nil {
		// Already inside a transaction; reuse it.
		return fn(ctx, s)
	}
	return s.root.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &progressionStore{db: tx})
	})
}

func (s *progressionStore) RegistrationsByIDs(ctx context.Context, ids []int64) ([]*models.ActivityRegistration, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var registrations []*models.ActivityRegistration
	err := s.db.NewSelect().
		Model(&registrations).
		Where("ar.id IN (?)", bun.In(ids)).
		Scan(ctx)
	return registrations, err
}

func (s *progressionStore) RegistrationsForUsers(ctx context.Context, activityID int64, userIDs []int64) ([]*models.ActivityRegistration, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var registrations []*models.ActivityRegistration
	err := s.db.NewSelect().
		Model(&registrations).
		Where("ar.activity_id = ?", activityID).
		Where("ar.user_id IN (?)", bun.In(userIDs)).
		Scan(ctx)
	return registrations, err
}

func (s *progressionStore) UpdateRegistrationStatus(ctx context.Context, ids []int64, status string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.db.NewUpdate().
		Model((*models.ActivityRegistration)(nil)).
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

func (s *progressionStore) ActivityByID(ctx context.Context, id int64) (*models.Activity, error) {
	activity := new(models.Activity)
	err := s.db.NewSelect().
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

func (s *progressionStore) MembersByEmails(ctx context.Context, emails []string) ([]*models.Member, error) {
	if len(emails) == 0 {
		return nil, nil
	}
	var members []*models.Member
	err := s.db.NewSelect().
		Model(&members).
		Where("pu.email IN (?)", bun.In(emails)).
		Scan(ctx)
	return members, err
}

func (s *progressionStore) ProfilesByUserIDs(ctx context.Context, userIDs []int64) ([]*models.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var profiles []*models.Profile
	err := s.db.NewSelect().
		Model(&profiles).
		Where("p.user_id IN (?)", bun.In(userIDs)).
		Scan(ctx)
	return profiles, err
}

// SaveProfileProgression persists only the progression-owned columns so
// concurrent profile edits are not clobbered.
func (s *progressionStore) SaveProfileProgression(ctx context.Context, profile *models.Profile) error {
	profile.UpdatedAt = time.Now()
	_, err := s.db.NewUpdate().
		Model(profile).
		Column("level", "badges", "updated_at").
		WherePK().
		Exec(ctx)
	return err
}
