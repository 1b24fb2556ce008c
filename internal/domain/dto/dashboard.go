package dto

import (
	"time"

	"github.com/adamatova/community-api/internal/domain/entity"
)

type ActivityKind string

const (
	KindGroup    ActivityKind = "group"
	KindWorkshop ActivityKind = "workshop"
)

// TodayActivity is one row of the "today's activities" dashboard.
type TodayActivity struct {
	ActivityID string       `json:"activity_id"`
	Kind       ActivityKind `json:"kind"`
	Title      string       `json:"title"`
	// TimeLabel is the zero-padded "HH:MM" meeting time. The dashboard sorts
	// by this string, which is only correct while it stays zero-padded.
	TimeLabel     string `json:"time_label"`
	ScheduleLabel string `json:"schedule_label"`
}

// PendingRequest is one row of the administrator's approval queue: the join
// request joined with group and participant info.
type PendingRequest struct {
	RegistrationID  string    `json:"registration_id"`
	GroupID         string    `json:"group_id"`
	GroupTitle      string    `json:"group_title"`
	ParticipantID   string    `json:"participant_id"`
	ParticipantName string    `json:"participant_name"`
	Comment         string    `json:"comment"`
	CreatedAt       time.Time `json:"created_at"`
}

// GroupOverview is the admin listing row: the group plus its bucket and the
// approved-registration count that gates capacity.
type GroupOverview struct {
	Group         entity.Group `json:"group"`
	Bucket        string       `json:"bucket"`
	ApprovedCount int64        `json:"approved_count"`
}

// WorkshopOverview mirrors GroupOverview for the two-bucket workshop listing.
type WorkshopOverview struct {
	Workshop        entity.Workshop `json:"workshop"`
	Bucket          string          `json:"bucket"`
	RegisteredCount int64           `json:"registered_count"`
}

// RosterRow is one line of the XLSX roster export.
type RosterRow struct {
	ParticipantName string
	Phone           string
	Email           string
	Status          string
	Comment         string
	RegisteredAt    time.Time
}
