package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adamatova/community-api/internal/adapters/secondary/memcache"
	"github.com/adamatova/community-api/internal/adapters/secondary/postgres"
	"github.com/adamatova/community-api/internal/domain/dto"
	"github.com/adamatova/community-api/internal/domain/entity"
	"github.com/adamatova/community-api/internal/domain/schedule"
	"github.com/adamatova/community-api/pkg/changefeed"
)

// 2024-03-10 is a Sunday.
var dashboardNow = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

func newDashboardService(db *gorm.DB, feed *changefeed.Feed) *DashboardService {
	return NewDashboardService(
		testLogger(),
		postgres.NewGroupRepository(db),
		postgres.NewWorkshopRepository(db),
		memcache.New(),
		feed,
		schedule.Fixed(dashboardNow),
	)
}

func seedDashboardFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()

	// Meets Sundays, window covers today.
	require.NoError(t, db.Create(&entity.Group{
		Title:               "חוג ערב",
		StartDate:           dashboardNow.AddDate(0, 0, -7),
		MeetingTime:         "18:30",
		OccurrenceCount:     8,
		RegistrationEndDate: dashboardNow.AddDate(0, 0, 7),
		Status:              entity.ActivityStatusOpen,
	}).Error)

	// Also Sundays, earlier in the day; stored time carries seconds.
	require.NoError(t, db.Create(&entity.Group{
		Title:               "חוג בוקר",
		StartDate:           dashboardNow.AddDate(0, 0, -14),
		MeetingTime:         "09:00:00",
		OccurrenceCount:     8,
		RegistrationEndDate: dashboardNow.AddDate(0, 0, 7),
		Status:              entity.ActivityStatusOpen,
	}).Error)

	// Meets Mondays; must not appear today.
	require.NoError(t, db.Create(&entity.Group{
		Title:               "חוג יום שני",
		StartDate:           dashboardNow.AddDate(0, 0, -6),
		MeetingTime:         "10:00",
		OccurrenceCount:     8,
		RegistrationEndDate: dashboardNow.AddDate(0, 0, 7),
		Status:              entity.ActivityStatusOpen,
	}).Error)

	// Sunday meeting day but the run ended weeks ago.
	require.NoError(t, db.Create(&entity.Group{
		Title:               "חוג שהסתיים",
		StartDate:           dashboardNow.AddDate(0, 0, -70),
		MeetingTime:         "08:00",
		OccurrenceCount:     2,
		RegistrationEndDate: dashboardNow.AddDate(0, 0, 7),
		Status:              entity.ActivityStatusOpen,
	}).Error)

	// Workshop dated today.
	require.NoError(t, db.Create(&entity.Workshop{
		Title:       "סדנת צהריים",
		StartDate:   schedule.DayUTC(dashboardNow),
		MeetingTime: "12:00",
		Status:      entity.ActivityStatusOpen,
	}).Error)

	// Workshop on another day.
	require.NoError(t, db.Create(&entity.Workshop{
		Title:       "סדנה עתידית",
		StartDate:   dashboardNow.AddDate(0, 0, 3),
		MeetingTime: "12:00",
		Status:      entity.ActivityStatusOpen,
	}).Error)
}

func TestTodayActivities(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc := newDashboardService(db, changefeed.New())
	seedDashboardFixtures(t, db)

	activities, err := svc.TodayActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 3)

	// Sorted by clipped HH:MM.
	assert.Equal(t, "חוג בוקר", activities[0].Title)
	assert.Equal(t, "09:00", activities[0].TimeLabel)
	assert.Equal(t, dto.KindGroup, activities[0].Kind)

	assert.Equal(t, "סדנת צהריים", activities[1].Title)
	assert.Equal(t, dto.KindWorkshop, activities[1].Kind)

	assert.Equal(t, "חוג ערב", activities[2].Title)
	assert.Equal(t, "18:30", activities[2].TimeLabel)
}

func TestTodayActivitiesServesCachedSnapshot(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc := newDashboardService(db, changefeed.New())
	seedDashboardFixtures(t, db)

	first, err := svc.TodayActivities(ctx)
	require.NoError(t, err)

	// A row added behind the cache's back is invisible until invalidation.
	require.NoError(t, db.Create(&entity.Workshop{
		Title:       "סדנה חדשה",
		StartDate:   schedule.DayUTC(dashboardNow),
		MeetingTime: "15:00",
		Status:      entity.ActivityStatusOpen,
	}).Error)

	second, err := svc.TodayActivities(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))
}

func TestWatcherInvalidatesAfterQuietInterval(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	feed := changefeed.New()
	svc := newDashboardService(db, feed)
	seedDashboardFixtures(t, db)

	svc.StartWatcher()
	defer svc.StopWatcher()

	_, err := svc.TodayActivities(ctx)
	require.NoError(t, err)

	require.NoError(t, db.Create(&entity.Workshop{
		Title:       "סדנה חדשה",
		StartDate:   schedule.DayUTC(dashboardNow),
		MeetingTime: "15:00",
		Status:      entity.ActivityStatusOpen,
	}).Error)
	feed.Publish(tableWorkshops, changefeed.EventInsert)

	// The debouncer drops the snapshot about a second after the last change.
	require.Eventually(t, func() bool {
		activities, err := svc.TodayActivities(ctx)
		return err == nil && len(activities) == 4
	}, 3*time.Second, 100*time.Millisecond)
}
