package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/adamatova/community-api/internal/domain/entity"
)

func newExportService(t *testing.T, now time.Time) (*ExportService, *ActivityService, string) {
	t.Helper()
	db := openTestDB(t)
	activities, _ := newActivityService(t, db, now)
	registrations, _ := newRegistrationService(t, db, now, false)

	group := seedOpenGroup(t, db, now)
	seedParticipant(t, db, "p1")
	_, err := registrations.RegisterForGroup(context.Background(), "p1", group.ID, "")
	require.NoError(t, err)

	svc := NewExportService(activities, registrations, "https://app.adamatova.org")
	return svc, activities, group.ID
}

func TestGroupCalendar(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _, groupID := newExportService(t, now)

	data, err := svc.GroupCalendar(context.Background(), groupID)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "BEGIN:VCALENDAR")
	assert.Contains(t, text, "SUMMARY:חוג יצירה")
	// 8 weekly occurrences, 8 events.
	assert.Equal(t, 8, bytes.Count(data, []byte("BEGIN:VEVENT")))
}

func TestGroupCalendarUnscheduled(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, activities, _ := newExportService(t, now)

	draft, err := activities.CreateGroup(context.Background(), &entity.Group{Title: "טיוטה ללא מועד"})
	require.NoError(t, err)

	_, err = svc.GroupCalendar(context.Background(), draft.ID)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestGroupRosterXLSX(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _, groupID := newExportService(t, now)

	data, err := svc.GroupRosterXLSX(context.Background(), groupID)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	name, err := f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Test Participant p1", name)
}

func TestRegistrationQR(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _, groupID := newExportService(t, now)

	png, err := svc.RegistrationQR(groupID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "expected a PNG header")

	_, err = svc.RegistrationQR("")
	assert.ErrorIs(t, err, ErrValidationFailed)
}
