package entity

import (
	"time"

	"gorm.io/gorm"
)

// Participant is a community member's profile. The ID is the auth provider's
// subject, so the row is created lazily on first login.
type Participant struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
	FullName  string
	Phone     string
	Email     string
	// CommunityStatuses are the tags matched against an activity's
	// TargetStatuses when deciding admissibility.
	CommunityStatuses []string `gorm:"serializer:json"`
}

// Administrator is an allow-list row; anyone whose login email appears here
// may publish activities, approve requests and broadcast announcements.
type Administrator struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	Email     string `gorm:"not null;unique"`
}
