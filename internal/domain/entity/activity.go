package entity

import (
	"time"

	"gorm.io/gorm"

	"github.com/adamatova/community-api/internal/domain/schedule"
)

type ActivityStatus string

const (
	ActivityStatusDraft ActivityStatus = "draft"
	ActivityStatusOpen  ActivityStatus = "open"
	ActivityStatusEnded ActivityStatus = "ended"
)

// Group is a recurring activity: weekly meetings starting at StartDate,
// OccurrenceCount weeks in a row. Joining a group requires administrator
// approval.
type Group struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
	Title       string `gorm:"not null"`
	Description string
	ImageName   string
	// StartDate is the first meeting's calendar date, stored at UTC midnight.
	StartDate time.Time
	// MeetingTime is the wall-clock meeting time, "HH:MM" (storage may carry
	// seconds, display always clips to five characters).
	MeetingTime         string
	OccurrenceCount     int
	MaxParticipants     int
	RegistrationEndDate time.Time
	// TargetStatuses limits the audience by community-status tags. Empty (or
	// equal to the full known tag set) means the group is open to everyone.
	TargetStatuses []string       `gorm:"serializer:json"`
	Status         ActivityStatus `gorm:"default:'draft'"`
	CreatedBy      string
}

// MeetingWeekday is derived from StartDate (Sunday=0), never stored.
func (g *Group) MeetingWeekday() int {
	return schedule.MeetingWeekday(g.StartDate)
}

// Workshop is a one-off activity on a single date. Registration is
// first-come, no approval step.
type Workshop struct {
	ID                  string `gorm:"primaryKey;type:uuid"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt
	Title               string `gorm:"not null"`
	Description         string
	ImageName           string
	StartDate           time.Time
	MeetingTime         string
	MaxParticipants     int
	RegistrationEndDate time.Time
	TargetStatuses      []string       `gorm:"serializer:json"`
	Status              ActivityStatus `gorm:"default:'draft'"`
	CreatedBy           string
}

func (w *Workshop) MeetingWeekday() int {
	return schedule.MeetingWeekday(w.StartDate)
}
