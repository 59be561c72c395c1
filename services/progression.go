package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/komunitas-muda/backoffice/config"
	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/database/repositories"
)

var (
	// ErrNoRegistrationsFound means none of the requested registrations
	// exist under the target activity.
	ErrNoRegistrationsFound = errors.New("no registrations found")
	// ErrNoUsersFound means none of the given emails resolve to a member.
	ErrNoUsersFound = errors.New("no users found")
	// ErrUnmatchedLevel means the activity type confers a level upgrade
	// but the level map has no entry for it.
	ErrUnmatchedLevel = errors.New("activity type has no matching level")
)

// ProgressionService runs the registration status-transition workflow:
// bulk status updates plus, for graduation from level-conferring activity
// types, the member level overwrite and badge grant. Every call is atomic;
// a failure on any row rolls back the whole batch.
type ProgressionService struct {
	store repositories.ProgressionStore
	rules config.ProgressionConfig
}

func NewProgressionService(store repositories.ProgressionStore, rules config.ProgressionConfig) *ProgressionService {
	return &ProgressionService{store: store, rules: rules}
}

// UpdateStatusByIDs sets status on the given registrations and returns
// the number of rows updated. The activity driving the graduation rules
// is resolved from the first registration in the batch. Status is stored
// as given; activities may define custom selection statuses beyond the
// baseline set.
func (s *ProgressionService) UpdateStatusByIDs(ctx context.Context, registrationIDs []int64, status string) (int64, error) {
	var affected int64
	err := s.store.WithinTx(ctx, func(ctx context.Context, store repositories.ProgressionStore) error {
		registrations, err := store.RegistrationsByIDs(ctx, registrationIDs)
		if err != nil {
			return err
		}
		if len(registrations) == 0 {
			return ErrNoRegistrationsFound
		}

		// The select does not guarantee request order, so pin the first
		// requested ID explicitly.
		first := registrations[0]
		for _, reg := range registrations {
			if reg.ID == registrationIDs[0] {
				first = reg
				break
			}
		}
		activity, err := store.ActivityByID(ctx, first.ActivityID)
		if err != nil {
			return err
		}

		ids := make([]int64, len(registrations))
		userIDs := make([]int64, len(registrations))
		for i, reg := range registrations {
			ids[i] = reg.ID
			userIDs[i] = reg.UserID
		}

		affected, err = s.applyTransition(ctx, store, activity, ids, userIDs, status)
		return err
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// UpdateStatusByEmails resolves emails to members, then updates those
// members' registrations under the activity.
func (s *ProgressionService) UpdateStatusByEmails(ctx context.Context, activityID int64, emails []string, status string) (int64, error) {
	var affected int64
	err := s.store.WithinTx(ctx, func(ctx context.Context, store repositories.ProgressionStore) error {
		activity, err := store.ActivityByID(ctx, activityID)
		if err != nil {
			return err
		}

		members, err := store.MembersByEmails(ctx, emails)
		if err != nil {
			return err
		}
		if len(members) == 0 {
			return ErrNoUsersFound
		}

		memberIDs := make([]int64, len(members))
		for i, m := range members {
			memberIDs[i] = m.ID
		}

		registrations, err := store.RegistrationsForUsers(ctx, activityID, memberIDs)
		if err != nil {
			return err
		}
		if len(registrations) == 0 {
			return ErrNoRegistrationsFound
		}

		ids := make([]int64, len(registrations))
		userIDs := make([]int64, len(registrations))
		for i, reg := range registrations {
			ids[i] = reg.ID
			userIDs[i] = reg.UserID
		}

		affected, err = s.applyTransition(ctx, store, activity, ids, userIDs, status)
		return err
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// applyTransition performs the status write and, when the transition is a
// graduation from a level-conferring activity type, the member
// progression side effects.
func (s *ProgressionService) applyTransition(ctx context.Context, store repositories.ProgressionStore, activity *models.Activity, registrationIDs, userIDs []int64, status string) (int64, error) {
	affected, err := store.UpdateRegistrationStatus(ctx, registrationIDs, status)
	if err != nil {
		return 0, err
	}

	if !s.rules.IsSpecial(activity.ActivityType) || status != s.rules.GraduatedStatus {
		return affected, nil
	}

	level, ok := s.rules.LevelFor(activity.ActivityType)
	if !ok {
		return 0, ErrUnmatchedLevel
	}

	profiles, err := store.ProfilesByUserIDs(ctx, userIDs)
	if err != nil {
		return 0, err
	}

	for _, profile := range profiles {
		// Level is overwritten unconditionally: graduating from a lower
		// tier after holding a higher one resets the member to the tier
		// the activity confers.
		changed := profile.Level != level
		profile.Level = level

		if activity.Badge != "" && profile.Badges.Add(activity.Badge) {
			changed = true
		}

		if !changed {
			continue
		}
		if err := store.SaveProfileProgression(ctx, profile); err != nil {
			return 0, err
		}
	}

	slog.Info("Registration graduation processed",
		slog.String("type", "sys"),
		slog.Int64("activity_id", activity.ID),
		slog.Int("level", level),
		slog.Int("members", len(profiles)),
		slog.Int64("affected_rows", affected))

	return affected, nil
}
