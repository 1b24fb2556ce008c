package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adamatova/community-api/internal/adapters/secondary/memcache"
	"github.com/adamatova/community-api/internal/adapters/secondary/postgres"
	"github.com/adamatova/community-api/internal/domain/entity"
	"github.com/adamatova/community-api/internal/domain/schedule"
	"github.com/adamatova/community-api/internal/ports/secondary"
)

type fakePush struct {
	sent []string
	fail bool
}

func (f *fakePush) Send(_ context.Context, endpoint string, _ secondary.PushPayload) error {
	if f.fail {
		return errors.New("endpoint gone")
	}
	f.sent = append(f.sent, endpoint)
	return nil
}

type fakeEmail struct {
	sent []string
}

func (f *fakeEmail) Send(to, _, _ string) error {
	f.sent = append(f.sent, to)
	return nil
}

func newNotifyService(t *testing.T, db *gorm.DB) (*NotifyService, *fakePush, *fakeEmail) {
	t.Helper()
	push := &fakePush{}
	email := &fakeEmail{}
	svc := NewNotifyService(
		testLogger(),
		postgres.NewNotificationRepository(db),
		postgres.NewDeviceRepository(db),
		postgres.NewParticipantRepository(db),
		push,
		email,
		memcache.New(),
	)
	return svc, push, email
}

func TestNotifyPushesToDevices(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc, push, email := newNotifyService(t, db)

	seedParticipant(t, db, "p1")
	_, err := svc.RegisterDevice(ctx, "p1", "https://push.example.org/d1")
	require.NoError(t, err)
	_, err = svc.RegisterDevice(ctx, "p1", "https://push.example.org/d2")
	require.NoError(t, err)

	svc.Notify(ctx, "p1", entity.NotificationTypeApproval, "הבקשה אושרה", "g1")

	assert.Len(t, push.sent, 2)
	assert.Empty(t, email.sent, "email fallback only fires when no push lands")

	notifications, err := svc.ListForParticipant(ctx, "p1", 10, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "הבקשה אושרה", notifications[0].Message)
	assert.False(t, notifications[0].Read)
}

func TestNotifyFallsBackToEmail(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc, push, email := newNotifyService(t, db)
	push.fail = true

	seedParticipant(t, db, "p1")
	_, err := svc.RegisterDevice(ctx, "p1", "https://push.example.org/dead")
	require.NoError(t, err)

	svc.Notify(ctx, "p1", entity.NotificationTypeAnnouncement, "הודעה", "")

	assert.Equal(t, []string{"p1@example.org"}, email.sent)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc, _, _ := newNotifyService(t, db)

	seedParticipant(t, db, "p1")
	svc.Notify(ctx, "p1", entity.NotificationTypeReminder, "תזכורת", "")
	svc.Notify(ctx, "p1", entity.NotificationTypeReminder, "תזכורת נוספת", "")

	n, err := svc.UnreadCount(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	notifications, err := svc.ListForParticipant(ctx, "p1", 10, 0)
	require.NoError(t, err)
	require.NotEmpty(t, notifications)

	require.NoError(t, svc.MarkRead(ctx, notifications[0].ID, "p1"))

	n, err = svc.UnreadCount(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	t.Run("anonymous callers are rejected", func(t *testing.T) {
		_, err := svc.UnreadCount(ctx, "")
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.ErrorIs(t, svc.MarkRead(ctx, "x", ""), ErrNotAuthenticated)
	})
}

func TestAnnouncementPublishBroadcasts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	db := openTestDB(t)

	notify := &fakeNotify{}
	svc := NewAnnouncementService(
		testLogger(),
		postgres.NewAnnouncementRepository(db),
		postgres.NewParticipantRepository(db),
		notify,
		schedule.Fixed(now),
	)

	seedParticipant(t, db, "p1")
	seedParticipant(t, db, "p2")

	announcement, err := svc.Publish(ctx, "יום התנדבות", "נפגשים בגינה בשעה 9:00", "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "יום התנדבות", announcement.Title)
	assert.ElementsMatch(t, []string{"p1", "p2"}, notify.notified)

	today, err := svc.Today(ctx)
	require.NoError(t, err)
	require.Len(t, today, 1)

	t.Run("title is required", func(t *testing.T) {
		_, err := svc.Publish(ctx, "", "ללא כותרת", "admin-1")
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}
