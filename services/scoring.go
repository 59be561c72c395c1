package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/database/repositories"
)

// ErrInvalidReviewStatus means the requested review outcome is neither
// approved nor rejected.
var ErrInvalidReviewStatus = errors.New("review status must be approved or rejected")

// ReviewInput carries a reviewer's verdict. Score and Remark are optional
// overrides: when set, they replace the submitted values before any
// aggregation happens.
type ReviewInput struct {
	Status int
	Score  *int
	Remark *string
}

// ScoringService reviews achievement submissions and maintains the
// monthly and lifetime score aggregates. An approval folds the (possibly
// overridden) score into both leaderboard rows, creating them on first
// approval, all inside one transaction with the status write.
type ScoringService struct {
	store repositories.ScoringStore
}

func NewScoringService(store repositories.ScoringStore) *ScoringService {
	return &ScoringService{store: store}
}

// Review applies an approval or rejection by approverID. Re-reviewing an
// already-approved achievement folds its score in again; there is no
// reversal bookkeeping, so reviewers must reject before re-approving with
// a corrected score.
func (s *ScoringService) Review(ctx context.Context, achievementID, approverID int64, in ReviewInput) (*models.Achievement, error) {
	if in.Status != models.AchievementStatusApproved && in.Status != models.AchievementStatusRejected {
		return nil, ErrInvalidReviewStatus
	}

	var reviewed *models.Achievement
	err := s.store.WithinTx(ctx, func(ctx context.Context, store repositories.ScoringStore) error {
		achievement, err := store.AchievementByID(ctx, achievementID)
		if err != nil {
			return err
		}

		achievement.Status = in.Status
		achievement.ApproverID = approverID
		achievement.ApprovedAt = time.Now()
		if in.Score != nil {
			achievement.Score = *in.Score
		}
		if in.Remark != nil {
			achievement.Remark = *in.Remark
		}

		if err := store.SaveAchievement(ctx, achievement); err != nil {
			return err
		}

		if in.Status == models.AchievementStatusApproved {
			if err := s.aggregate(ctx, store, achievement); err != nil {
				return err
			}
		}

		reviewed = achievement
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Achievement reviewed",
		slog.String("type", "sys"),
		slog.Int64("achievement_id", achievementID),
		slog.Int64("approver_id", approverID),
		slog.Int("status", in.Status))

	return reviewed, nil
}

// aggregate folds the achievement score into the owner's monthly bucket
// and lifetime totals, fetch-or-create on both rows.
func (s *ScoringService) aggregate(ctx context.Context, store repositories.ScoringStore, achievement *models.Achievement) error {
	month := achievement.MonthBucket()

	monthly, err := store.MonthlyForUpdate(ctx, achievement.UserID, month)
	if err != nil {
		return err
	}
	if monthly == nil {
		monthly = &models.MonthlyLeaderboard{
			UserID: achievement.UserID,
			Month:  month,
		}
	}
	monthly.AddScore(achievement.Type, achievement.Score)
	if err := store.SaveMonthly(ctx, monthly); err != nil {
		return err
	}

	lifetime, err := store.LifetimeForUpdate(ctx, achievement.UserID)
	if err != nil {
		return err
	}
	if lifetime == nil {
		lifetime = &models.LifetimeLeaderboard{UserID: achievement.UserID}
	}
	lifetime.AddScore(achievement.Type, achievement.Score)
	return store.SaveLifetime(ctx, lifetime)
}
