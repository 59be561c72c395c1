package services

import (
	"context"
	"errors"
	"testing"

	"github.com/komunitas-muda/backoffice/config"
	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/database/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSaveFailed = errors.New("save failed")

// fakeProgressionStore keeps everything in maps. WithinTx snapshots the
// maps and restores them when the callback fails, mirroring a rollback.
type fakeProgressionStore struct {
	activities    map[int64]*models.Activity
	registrations map[int64]*models.ActivityRegistration
	members       map[int64]*models.Member
	profiles      map[int64]*models.Profile

	failProfileSave bool
}

func newFakeProgressionStore() *fakeProgressionStore {
	return &fakeProgressionStore{
		activities:    make(map[int64]*models.Activity),
		registrations: make(map[int64]*models.ActivityRegistration),
		members:       make(map[int64]*models.Member),
		profiles:      make(map[int64]*models.Profile),
	}
}

func (f *fakeProgressionStore) snapshot() (map[int64]*models.ActivityRegistration, map[int64]*models.Profile) {
	regs := make(map[int64]*models.ActivityRegistration, len(f.registrations))
	for id, r := range f.registrations {
		cp := *r
		regs[id] = &cp
	}
	profiles := make(map[int64]*models.Profile, len(f.profiles))
	for id, p := range f.profiles {
		cp := *p
		cp.Badges = append(models.BadgeSet(nil), p.Badges...)
		profiles[id] = &cp
	}
	return regs, profiles
}

func (f *fakeProgressionStore) WithinTx(ctx context.Context, fn func(ctx context.Context, store repositories.ProgressionStore) error) error {
	regs, profiles := f.snapshot()
	if err := fn(ctx, f); err != nil {
		f.registrations = regs
		f.profiles = profiles
		return err
	}
	return nil
}

func (f *fakeProgressionStore) RegistrationsByIDs(_ context.Context, ids []int64) ([]*models.ActivityRegistration, error) {
	var out []*models.ActivityRegistration
	for _, id := range ids {
		if reg, ok := f.registrations[id]; ok {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (f *fakeProgressionStore) RegistrationsForUsers(_ context.Context, activityID int64, userIDs []int64) ([]*models.ActivityRegistration, error) {
	var out []*models.ActivityRegistration
	for _, reg := range f.registrations {
		if reg.ActivityID != activityID {
			continue
		}
		for _, uid := range userIDs {
			if reg.UserID == uid {
				out = append(out, reg)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeProgressionStore) UpdateRegistrationStatus(_ context.Context, ids []int64, status string) (int64, error) {
	var affected int64
	for _, id := range ids {
		if reg, ok := f.registrations[id]; ok {
			reg.Status = status
			affected++
		}
	}
	return affected, nil
}

func (f *fakeProgressionStore) ActivityByID(_ context.Context, id int64) (*models.Activity, error) {
	activity, ok := f.activities[id]
	if !ok {
		return nil, &repositories.NotFoundError{Entity: "activity", ID: id}
	}
	return activity, nil
}

func (f *fakeProgressionStore) MembersByEmails(_ context.Context, emails []string) ([]*models.Member, error) {
	var out []*models.Member
	for _, member := range f.members {
		for _, email := range emails {
			if member.Email == email {
				out = append(out, member)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeProgressionStore) ProfilesByUserIDs(_ context.Context, userIDs []int64) ([]*models.Profile, error) {
	var out []*models.Profile
	for _, uid := range userIDs {
		if profile, ok := f.profiles[uid]; ok {
			out = append(out, profile)
		}
	}
	return out, nil
}

func (f *fakeProgressionStore) SaveProfileProgression(_ context.Context, profile *models.Profile) error {
	if f.failProfileSave {
		return errSaveFailed
	}
	f.profiles[profile.UserID] = profile
	return nil
}

func testRules() config.ProgressionConfig {
	return config.Default().Progression
}

func seedGraduationFixture(store *fakeProgressionStore, activityType int) {
	store.activities[10] = &models.Activity{
		ID:           10,
		Name:         "Leadership Camp",
		ActivityType: activityType,
		Badge:        "leadership-camp",
	}
	store.members[1] = &models.Member{ID: 1, Email: "andi@example.com"}
	store.members[2] = &models.Member{ID: 2, Email: "budi@example.com"}
	store.profiles[1] = &models.Profile{ID: 100, UserID: 1, Level: 1}
	store.profiles[2] = &models.Profile{ID: 101, UserID: 2, Level: 1}
	store.registrations[51] = &models.ActivityRegistration{ID: 51, UserID: 1, ActivityID: 10, Status: models.RegistrationStatusRegistered}
	store.registrations[52] = &models.ActivityRegistration{ID: 52, UserID: 2, ActivityID: 10, Status: models.RegistrationStatusRegistered}
}

func TestUpdateStatusByIDs_UpdatesOnlyRequestedRows(t *testing.T) {
	store := newFakeProgressionStore()
	seedGraduationFixture(store, 1)
	svc := NewProgressionService(store, testRules())

	affected, err := svc.UpdateStatusByIDs(context.Background(), []int64{51}, "DITERIMA")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Equal(t, "DITERIMA", store.registrations[51].Status)
	assert.Equal(t, models.RegistrationStatusRegistered, store.registrations[52].Status)
	// No graduation, no progression side effects.
	assert.Equal(t, 1, store.profiles[1].Level)
	assert.Empty(t, store.profiles[1].Badges)
}

func TestUpdateStatusByIDs_AcceptsCustomStatusStrings(t *testing.T) {
	store := newFakeProgressionStore()
	seedGraduationFixture(store, 1)
	svc := NewProgressionService(store, testRules())

	affected, err := svc.UpdateStatusByIDs(context.Background(), []int64{51, 52}, "WAWANCARA_TAHAP_2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.Equal(t, "WAWANCARA_TAHAP_2", store.registrations[51].Status)
}

func TestUpdateStatusByIDs_GraduationSetsLevelAndBadge(t *testing.T) {
	store := newFakeProgressionStore()
	seedGraduationFixture(store, 2)
	svc := NewProgressionService(store, testRules())

	affected, err := svc.UpdateStatusByIDs(context.Background(), []int64{51, 52}, models.RegistrationStatusGraduated)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	for _, uid := range []int64{1, 2} {
		assert.Equal(t, models.RegistrationStatusGraduated, store.registrations[50+uid].Status)
		assert.Equal(t, 2, store.profiles[uid].Level)
		assert.True(t, store.profiles[uid].Badges.Has("leadership-camp"))
	}
}

func TestUpdateStatusByIDs_GraduationOverwritesHigherLevel(t *testing.T) {
	store := newFakeProgressionStore()
	seedGraduationFixture(store, 2)
	store.profiles[1].Level = 3
	svc := NewProgressionService(store, testRules())

	_, err := svc.UpdateStatusByIDs(context.Background(), []int64{51}, models.RegistrationStatusGraduated)
	require.NoError(t, err)
	assert.Equal(t, 2, store.profiles[1].Level, "level is overwritten, not maxed")
}

func TestUpdateStatusByIDs_BadgeGrantIsIdempotent(t *testing.T) {
	store := newFakeProgressionStore()
	seedGraduationFixture(store, 3)
	store.profiles[1].Badges = models.BadgeSet{"leadership-camp"}
	svc := NewProgressionService(store, testRules())

	_, err := svc.UpdateStatusByIDs(context.Background(), []int64{51}, models.RegistrationStatusGraduated)
	require.NoError(t, err)
	assert.Equal(t, models.BadgeSet{"leadership-camp"}, store.profiles[1].Badges)
	assert.Equal(t, 3, store.profiles[1].Level)
}

func TestUpdateStatusByIDs_ResolvesActivityFromFirstRegistration(t *testing.T) {
	store := newFakeProgressionStore()
	seedGraduationFixture(store, 2)
	// Activity 20 confers nothing; its registration rides along in the
	// batch and still gets the status write.
	store.activities[20] = &models.Activity{ID: 20, ActivityType: 1}
	store.profiles[3] = &models.Profile{ID: 102, UserID: 3, Level: 1}
	store.registrations[60] = &models.ActivityRegistration{ID: 60, UserID: 3, ActivityID: 20, Status: models.RegistrationStatusRegistered}
	svc := NewProgressionService(store, testRules())

	affected, err := svc.UpdateStatusByIDs(context.Background(), []int64{51, 60}, models.RegistrationStatusGraduated)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.Equal(t, models.RegistrationStatusGraduated, store.registrations[51].Status)
	assert.Equal(t, models.RegistrationStatusGraduated, store.registrations[60].Status)
	// Graduation rules come from registration 51's activity, so every
	// member in the batch progresses.
	assert.Equal(t, 2, store.profiles[1].Level)
	assert.Equal(t, 2, store.profiles[3].Level)
	assert.True(t, store.profiles[3].Badges.Has("leadership-camp"))
}

func TestUpdateStatusByIDs_FirstRegistrationDecidesGraduationRules(t *testing.T) {
	store := newFakeProgressionStore()
	seedGraduationFixture(store, 2)
	store.activities[20] = &models.Activity{ID: 20, ActivityType: 1}
	store.profiles[3] = &models.Profile{ID: 102, UserID: 3, Level: 1}
	store.registrations[60] = &models.ActivityRegistration{ID: 60, UserID: 3, ActivityID: 20, Status: models.RegistrationStatusRegistered}
	svc := NewProgressionService(store, testRules())

	// Registration 60 leads the batch; its activity type is not
	// level-conferring, so no one progresses.
	affected, err := svc.UpdateStatusByIDs(context.Background(), []int64{60, 51}, models.RegistrationStatusGraduated)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.Equal(t, models.RegistrationStatusGraduated, store.registrations[51].Status)
	assert.Equal(t, 1, store.profiles[1].Level)
	assert.Empty(t, store.profiles[1].Badges)
}

func TestUpdateStatusByIDs_NoMatchingRegistrations(t *testing.T) {
	store := newFakeProgressionStore()
	seedGraduationFixture(store, 1)
	svc := NewProgressionService(store, testRules())

	_, err := svc.UpdateStatusByIDs(context.Background(), []int64{999}, "DITERIMA")
	assert.ErrorIs(t, err, ErrNoRegistrationsFound)
}

func TestUpdateStatusByIDs_UnknownActivity(t *testing.T) {
	store := newFakeProgressionStore()
	store.registrations[1] = &models.ActivityRegistration{ID: 1, UserID: 1, ActivityID: 404, Status: models.RegistrationStatusRegistered}
	svc := NewProgressionService(store, testRules())

	_, err := svc.UpdateStatusByIDs(context.Background(), []int64{1}, "DITERIMA")
	var nfe *repositories.NotFoundError
	assert.ErrorAs(t, err, &nfe)
	assert.Equal(t, models.RegistrationStatusRegistered, store.registrations[1].Status)
}

func TestUpdateStatusByIDs_UnmatchedLevelRollsBack(t *testing.T) {
	store := newFakeProgressionStore()
	seedGraduationFixture(store, 2)
	rules := testRules()
	rules.LevelMap = map[string]int{"3": 3}
	svc := NewProgressionService(store, rules)

	_, err := svc.UpdateStatusByIDs(context.Background(), []int64{51}, models.RegistrationStatusGraduated)
	assert.ErrorIs(t, err, ErrUnmatchedLevel)
	assert.Equal(t, models.RegistrationStatusRegistered, store.registrations[51].Status, "status write must roll back")
}

func TestUpdateStatusByIDs_ProfileSaveFailureRollsBackStatus(t *testing.T) {
	store := newFakeProgressionStore()
	seedGraduationFixture(store, 2)
	store.failProfileSave = true
	svc := NewProgressionService(store, testRules())

	_, err := svc.UpdateStatusByIDs(context.Background(), []int64{51, 52}, models.RegistrationStatusGraduated)
	require.Error(t, err)
	assert.Equal(t, models.RegistrationStatusRegistered, store.registrations[51].Status)
	assert.Equal(t, models.RegistrationStatusRegistered, store.registrations[52].Status)
	assert.Equal(t, 1, store.profiles[1].Level)
	assert.Empty(t, store.profiles[1].Badges)
}

func TestUpdateStatusByEmails_ResolvesMembers(t *testing.T) {
	store := newFakeProgressionStore()
	seedGraduationFixture(store, 2)
	svc := NewProgressionService(store, testRules())

	affected, err := svc.UpdateStatusByEmails(context.Background(), 10,
		[]string{"andi@example.com", "budi@example.com"}, models.RegistrationStatusGraduated)
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.Equal(t, 2, store.profiles[1].Level)
	assert.True(t, store.profiles[2].Badges.Has("leadership-camp"))
}

func TestUpdateStatusByEmails_UnknownEmails(t *testing.T) {
	store := newFakeProgressionStore()
	seedGraduationFixture(store, 1)
	svc := NewProgressionService(store, testRules())

	_, err := svc.UpdateStatusByEmails(context.Background(), 10, []string{"nobody@example.com"}, "DITERIMA")
	assert.ErrorIs(t, err, ErrNoUsersFound)
}

func TestUpdateStatusByEmails_MemberWithoutRegistration(t *testing.T) {
	store := newFakeProgressionStore()
	seedGraduationFixture(store, 1)
	store.members[3] = &models.Member{ID: 3, Email: "cici@example.com"}
	svc := NewProgressionService(store, testRules())

	_, err := svc.UpdateStatusByEmails(context.Background(), 10, []string{"cici@example.com"}, "DITERIMA")
	assert.ErrorIs(t, err, ErrNoRegistrationsFound)
}
