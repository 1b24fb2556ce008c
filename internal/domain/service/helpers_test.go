package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adamatova/community-api/internal/adapters/secondary/postgres"
	"github.com/adamatova/community-api/internal/domain/entity"
	"github.com/adamatova/community-api/pkg/logger/types"
)

// openTestDB builds a throwaway sqlite database with the full schema. The
// repositories only speak gorm, so they run unchanged against it.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(postgres.Migrations...))
	return db
}

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// fakeNotify records Notify calls; the other methods are unused in these
// tests.
type fakeNotify struct {
	notified []string
}

func (f *fakeNotify) Notify(_ context.Context, participantID string, _ entity.NotificationType, _, _ string) {
	f.notified = append(f.notified, participantID)
}

func (f *fakeNotify) ListForParticipant(context.Context, string, int, int) ([]entity.Notification, error) {
	return nil, nil
}

func (f *fakeNotify) UnreadCount(context.Context, string) (int64, error) { return 0, nil }

func (f *fakeNotify) MarkRead(context.Context, string, string) error { return nil }

func (f *fakeNotify) RegisterDevice(context.Context, string, string) (*entity.DeviceSubscription, error) {
	return nil, nil
}

func seedParticipant(t *testing.T, db *gorm.DB, id string, tags ...string) {
	t.Helper()
	require.NoError(t, db.Create(&entity.Participant{
		ID:                id,
		FullName:          "Test Participant " + id,
		Email:             id + "@example.org",
		CommunityStatuses: tags,
	}).Error)
}

func seedOpenGroup(t *testing.T, db *gorm.DB, now time.Time) *entity.Group {
	t.Helper()
	group := &entity.Group{
		Title:               "חוג יצירה",
		StartDate:           now.AddDate(0, 0, -7),
		MeetingTime:         "18:30",
		OccurrenceCount:     8,
		MaxParticipants:     10,
		RegistrationEndDate: now.AddDate(0, 0, 7),
		Status:              entity.ActivityStatusOpen,
	}
	require.NoError(t, db.Create(group).Error)
	return group
}

func seedOpenWorkshop(t *testing.T, db *gorm.DB, now time.Time) *entity.Workshop {
	t.Helper()
	workshop := &entity.Workshop{
		Title:               "סדנת בישול",
		StartDate:           now.AddDate(0, 0, 10),
		MeetingTime:         "10:00",
		MaxParticipants:     10,
		RegistrationEndDate: now.AddDate(0, 0, 7),
		Status:              entity.ActivityStatusOpen,
	}
	require.NoError(t, db.Create(workshop).Error)
	return workshop
}
