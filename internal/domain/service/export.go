package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"

	"github.com/adamatova/community-api/internal/domain/dto"
	"github.com/adamatova/community-api/internal/domain/schedule"
	"github.com/adamatova/community-api/internal/ports/primary"
)

const meetingDuration = 90 * time.Minute

// ExportService renders admin-facing artifacts: a group's meeting calendar
// as ICS, activity rosters as XLSX, registration deep links as QR PNGs.
type ExportService struct {
	activities    primary.ActivityService
	registrations primary.RegistrationService
	baseURL       string
}

func NewExportService(activities primary.ActivityService, registrations primary.RegistrationService, baseURL string) *ExportService {
	return &ExportService{
		activities:    activities,
		registrations: registrations,
		baseURL:       baseURL,
	}
}

// GroupCalendar emits one VEVENT per weekly occurrence.
func (s *ExportService) GroupCalendar(ctx context.Context, groupID string) ([]byte, error) {
	group, err := s.activities.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	dates := schedule.OccurrenceDates(group.StartDate, group.OccurrenceCount)
	if len(dates) == 0 {
		return nil, fmt.Errorf("group %s has no schedule yet: %w", groupID, ErrValidationFailed)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Adama Tova//community//HE")

	for i, date := range dates {
		start, err := schedule.CombineDateTime(date, group.MeetingTime)
		if err != nil {
			start = date
		}
		ev := cal.AddEvent(fmt.Sprintf("%s-%d@adamatova", group.ID, i+1))
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(meetingDuration))
		ev.SetSummary(group.Title)
		if group.Description != "" {
			ev.SetDescription(group.Description)
		}
	}
	return []byte(cal.Serialize()), nil
}

func (s *ExportService) GroupRosterXLSX(ctx context.Context, groupID string) ([]byte, error) {
	rows, err := s.registrations.GroupRoster(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return rosterXLSX(rows)
}

func (s *ExportService) WorkshopRosterXLSX(ctx context.Context, workshopID string) ([]byte, error) {
	rows, err := s.registrations.WorkshopRoster(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	return rosterXLSX(rows)
}

// RegistrationQR encodes the activity's registration deep link as a PNG.
func (s *ExportService) RegistrationQR(activityID string) ([]byte, error) {
	if activityID == "" {
		return nil, fmt.Errorf("empty activity id: %w", ErrValidationFailed)
	}
	link := fmt.Sprintf("%s/activities/%s/register", s.baseURL, activityID)
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

func rosterXLSX(rows []dto.RosterRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Sheet1"
	headers := []string{"Name", "Phone", "Email", "Status", "Comment", "Registered at"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for r, row := range rows {
		values := []interface{}{
			row.ParticipantName,
			row.Phone,
			row.Email,
			row.Status,
			row.Comment,
			row.RegisteredAt.UTC().Format("2006-01-02 15:04"),
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", r+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
