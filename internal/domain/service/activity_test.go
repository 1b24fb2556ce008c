package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adamatova/community-api/internal/adapters/secondary/postgres"
	"github.com/adamatova/community-api/internal/domain/entity"
	"github.com/adamatova/community-api/internal/domain/schedule"
	"github.com/adamatova/community-api/pkg/changefeed"
)

type fakeFiles struct {
	uploaded []string
	deleted  []string
}

func (f *fakeFiles) Upload(_ context.Context, name string, _ io.Reader) (string, error) {
	f.uploaded = append(f.uploaded, name)
	return "/files/" + name, nil
}

func (f *fakeFiles) Delete(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

func (f *fakeFiles) PublicURL(name string) string { return "/files/" + name }

func newActivityService(t *testing.T, db *gorm.DB, now time.Time) (*ActivityService, *fakeFiles) {
	t.Helper()
	files := &fakeFiles{}
	svc := NewActivityService(
		testLogger(),
		postgres.NewGroupRepository(db),
		postgres.NewWorkshopRepository(db),
		postgres.NewGroupRegistrationRepository(db),
		postgres.NewWorkshopRegistrationRepository(db),
		postgres.NewParticipantRepository(db),
		files,
		changefeed.New(),
		schedule.Fixed(now),
		knownTags,
	)
	return svc, files
}

func TestCreateGroupValidation(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	db := openTestDB(t)
	svc, _ := newActivityService(t, db, now)

	_, err := svc.CreateGroup(ctx, &entity.Group{Title: "א"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateGroup(ctx, &entity.Group{Title: "חוג תקין", MeetingTime: "25:99"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	// Unpadded hours would sort after "18:30" on the dashboard, so they are
	// rejected at the door rather than stored.
	_, err = svc.CreateGroup(ctx, &entity.Group{Title: "חוג תקין", MeetingTime: "9:30"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	created, err := svc.CreateGroup(ctx, &entity.Group{
		Title:     "חוג תקין",
		StartDate: time.Date(2024, 4, 7, 15, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ActivityStatusDraft, created.Status)
	// Start dates are normalized to UTC midnight on write.
	assert.Equal(t, time.Date(2024, 4, 7, 0, 0, 0, 0, time.UTC), created.StartDate)
}

func TestPublishGroup(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	db := openTestDB(t)
	svc, _ := newActivityService(t, db, now)

	draft, err := svc.CreateGroup(ctx, &entity.Group{
		Title:               "חוג חדש",
		StartDate:           now.AddDate(0, 0, 7),
		MeetingTime:         "18:30",
		OccurrenceCount:     8,
		MaxParticipants:     12,
		RegistrationEndDate: now.AddDate(0, 0, 5),
	})
	require.NoError(t, err)

	published, err := svc.PublishGroup(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ActivityStatusOpen, published.Status)

	t.Run("already published", func(t *testing.T) {
		_, err := svc.PublishGroup(ctx, draft.ID)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("start date in the past", func(t *testing.T) {
		stale, err := svc.CreateGroup(ctx, &entity.Group{
			Title:               "חוג ישן",
			StartDate:           now.AddDate(0, 0, -1),
			OccurrenceCount:     8,
			MaxParticipants:     12,
			RegistrationEndDate: now.AddDate(0, 0, 5),
		})
		require.NoError(t, err)
		_, err = svc.PublishGroup(ctx, stale.ID)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("start date today is allowed", func(t *testing.T) {
		today, err := svc.CreateGroup(ctx, &entity.Group{
			Title:               "חוג מהיום",
			StartDate:           schedule.DayUTC(now),
			OccurrenceCount:     4,
			MaxParticipants:     12,
			RegistrationEndDate: now.AddDate(0, 0, 5),
		})
		require.NoError(t, err)
		_, err = svc.PublishGroup(ctx, today.ID)
		require.NoError(t, err)
	})

	t.Run("missing occurrence count", func(t *testing.T) {
		incomplete, err := svc.CreateGroup(ctx, &entity.Group{
			Title:               "חוג חסר",
			StartDate:           now.AddDate(0, 0, 7),
			MaxParticipants:     12,
			RegistrationEndDate: now.AddDate(0, 0, 5),
		})
		require.NoError(t, err)
		_, err = svc.PublishGroup(ctx, incomplete.ID)
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}

func TestDeleteGroupCascades(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	db := openTestDB(t)
	svc, files := newActivityService(t, db, now)

	group := seedOpenGroup(t, db, now)
	group.ImageName = "activity-img.jpg"
	require.NoError(t, db.Save(group).Error)

	seedParticipant(t, db, "p1")
	require.NoError(t, db.Create(&entity.GroupRegistration{
		GroupID:       group.ID,
		ParticipantID: "p1",
		Status:        entity.RegistrationPending,
	}).Error)

	require.NoError(t, svc.DeleteGroup(ctx, group.ID))

	_, err := svc.GetGroup(ctx, group.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&entity.GroupRegistration{}).Where("group_id = ?", group.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.Equal(t, []string{"activity-img.jpg"}, files.deleted)
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	db := openTestDB(t)
	svc, files := newActivityService(t, db, now)

	group := seedOpenGroup(t, db, now)

	url, err := svc.UploadImage(ctx, group.ID, strings.NewReader("jpeg bytes"))
	require.NoError(t, err)
	assert.NotEmpty(t, url)
	require.Len(t, files.uploaded, 1)

	got, err := svc.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, files.uploaded[0], got.ImageName)

	_, err = svc.UploadImage(ctx, "no-such-activity", strings.NewReader("jpeg bytes"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListGroupOverviews(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	db := openTestDB(t)
	svc, _ := newActivityService(t, db, now)

	open := seedOpenGroup(t, db, now)

	active := &entity.Group{
		Title:               "חוג פעיל",
		StartDate:           now.AddDate(0, 0, -14),
		OccurrenceCount:     8,
		RegistrationEndDate: now.AddDate(0, 0, -1),
		Status:              entity.ActivityStatusOpen,
	}
	require.NoError(t, db.Create(active).Error)

	ended := &entity.Group{Title: "חוג שהסתיים", Status: entity.ActivityStatusEnded}
	require.NoError(t, db.Create(ended).Error)

	seedParticipant(t, db, "p1")
	require.NoError(t, db.Create(&entity.GroupRegistration{
		GroupID:       open.ID,
		ParticipantID: "p1",
		Status:        entity.RegistrationApproved,
	}).Error)

	overviews, err := svc.ListGroupOverviews(ctx)
	require.NoError(t, err)
	require.Len(t, overviews, 3)

	byID := make(map[string]string, len(overviews))
	counts := make(map[string]int64, len(overviews))
	for _, o := range overviews {
		byID[o.Group.ID] = o.Bucket
		counts[o.Group.ID] = o.ApprovedCount
	}
	assert.Equal(t, string(BucketOpen), byID[open.ID])
	assert.Equal(t, string(BucketActive), byID[active.ID])
	assert.Equal(t, string(BucketEnded), byID[ended.ID])
	assert.Equal(t, int64(1), counts[open.ID])
}

func TestAdmissibleGroupsFiltersAudience(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	db := openTestDB(t)
	svc, _ := newActivityService(t, db, now)

	everyone := seedOpenGroup(t, db, now)

	seniorsOnly := &entity.Group{
		Title:               "חוג ותיקים",
		StartDate:           now.AddDate(0, 0, -7),
		OccurrenceCount:     8,
		MaxParticipants:     10,
		RegistrationEndDate: now.AddDate(0, 0, 7),
		TargetStatuses:      []string{"senior"},
		Status:              entity.ActivityStatusOpen,
	}
	require.NoError(t, db.Create(seniorsOnly).Error)

	seedParticipant(t, db, "member-1", "member")
	seedParticipant(t, db, "senior-1", "senior")

	groups, err := svc.AdmissibleGroups(ctx, "member-1", false)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, everyone.ID, groups[0].ID)

	groups, err = svc.AdmissibleGroups(ctx, "senior-1", false)
	require.NoError(t, err)
	assert.Len(t, groups, 2)

	t.Run("showAll bypasses the audience filter", func(t *testing.T) {
		groups, err := svc.AdmissibleGroups(ctx, "member-1", true)
		require.NoError(t, err)
		assert.Len(t, groups, 2)
	})
}
