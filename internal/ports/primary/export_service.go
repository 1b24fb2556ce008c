package primary

import "context"

// ExportService defines the interface for admin exports: a group's meeting
// calendar (ICS), an activity roster (XLSX) and a registration link QR (PNG).
type ExportService interface {
	GroupCalendar(ctx context.Context, groupID string) ([]byte, error)
	GroupRosterXLSX(ctx context.Context, groupID string) ([]byte, error)
	WorkshopRosterXLSX(ctx context.Context, workshopID string) ([]byte, error)
	RegistrationQR(activityID string) ([]byte, error)
}
