package entity

import (
	"time"

	"gorm.io/gorm"
)

type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "pending"
	RegistrationApproved RegistrationStatus = "approved"
	RegistrationRejected RegistrationStatus = "rejected"
)

// GroupRegistration is a participant's join request for a group. At most one
// row per (group, participant) pair; the unique index backs the
// duplicate-registration guard.
type GroupRegistration struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt
	GroupID       string             `gorm:"not null;uniqueIndex:idx_group_participant"`
	ParticipantID string             `gorm:"not null;uniqueIndex:idx_group_participant"`
	Status        RegistrationStatus `gorm:"default:'pending'"`
	Comment       string
}

// WorkshopRegistration records workshop attendance. Presence of the row means
// the participant is in; there is no approval step.
type WorkshopRegistration struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt
	WorkshopID    string `gorm:"not null;uniqueIndex:idx_workshop_participant"`
	ParticipantID string `gorm:"not null;uniqueIndex:idx_workshop_participant"`
	Comment       string
}
