package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/uptrace/bun"
)

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member, profile *models.Profile) error
	GetByID(ctx context.Context, id int64) (*models.Member, error)
	GetByEmail(ctx context.Context, email string) (*models.Member, error)
	List(ctx context.Context, search, badge string, limit, offset int) ([]*models.Member, int, error)
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context) (int, error)

	GetProfile(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile *models.Profile) error
}

type memberRepository struct {
	db *bun.DB
}

func NewMemberRepository(db *bun.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create inserts the member and its profile together so a member never
// exists without a profile row.
func (r *memberRepository) Create(ctx context.Context, member *models.Member, profile *models.Profile) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		now := time.Now()
		member.CreatedAt = now
		member.UpdatedAt = now
		if _, err := tx.NewInsert().Model(member).Exec(ctx); err != nil {
			return err
		}

		member.MemberID = models.FormatMemberID(member.ID)
		if _, err := tx.NewUpdate().
			Model(member).
			Column("member_id").
			WherePK().
			Exec(ctx); err != nil {
			return err
		}

		profile.UserID = member.ID
		if profile.Level == 0 {
			profile.Level = 1
		}
		profile.CreatedAt = now
		profile.UpdatedAt = now
		_, err := tx.NewInsert().Model(profile).Exec(ctx)
		return err
	})
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	member := new(models.Member)
	err := r.db.NewSelect().
		Model(member).
		Relation("Profile").
		Where("pu.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "member", ID: id}
		}
		return nil, err
	}
	return member, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	member := new(models.Member)
	err := r.db.NewSelect().
		Model(member).
		Relation("Profile").
		Where("LOWER(pu.email) = LOWER(?)", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "member", ID: email}
		}
		return nil, err
	}
	return member, nil
}

func (r *memberRepository) List(ctx context.Context, search, badge string, limit, offset int) ([]*models.Member, int, error) {
	var members []*models.Member
	query := r.db.NewSelect().
		Model(&members).
		Relation("Profile")

	if search = strings.TrimSpace(search); search != "" {
		pattern := "%" + search + "%"
		query = query.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Where("pu.email ILIKE ?", pattern).
				WhereOr("pu.member_id ILIKE ?", pattern).
				WhereOr("EXISTS (SELECT 1 FROM profiles p WHERE p.user_id = pu.id AND p.name ILIKE ?)", pattern)
		})
	}

	if badge = strings.TrimSpace(badge); badge != "" {
		encoded, err := json.Marshal([]string{badge})
		if err != nil {
			return nil, 0, err
		}
		query = query.Where(
			"EXISTS (SELECT 1 FROM profiles p WHERE p.user_id = pu.id AND p.badges @> ?::jsonb)",
			string(encoded))
	}

	total, err := query.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	err = query.
		Order("pu.created_at DESC").
		Scan(ctx)
	return members, total, err
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	member.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(member).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "member", ID: member.ID}
	}
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.Profile)(nil)).
			Where("user_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().
			Model((*models.Member)(nil)).
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

func (r *memberRepository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*models.Member)(nil)).Count(ctx)
}

func (r *memberRepository) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	profile := new(models.Profile)
	err := r.db.NewSelect().
		Model(profile).
		Where("p.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "profile", ID: userID}
		}
		return nil, err
	}
	return profile, nil
}

func (r *memberRepository) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	profile.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(profile).
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "profile", ID: profile.ID}
	}
	return nil
}
