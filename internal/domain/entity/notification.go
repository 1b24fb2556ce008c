package entity

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTypeApproval     NotificationType = "approval"
	NotificationTypeRejection    NotificationType = "rejection"
	NotificationTypeAnnouncement NotificationType = "announcement"
	NotificationTypeReminder     NotificationType = "reminder"
)

// Notification is a message delivered to one participant. The row is the
// source of truth; push/email dispatch is fire-and-forget on top of it.
type Notification struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	CreatedAt     time.Time
	ParticipantID string `gorm:"not null;index"`
	Type          NotificationType
	Message       string
	// RelatedID points at the activity or announcement the message is about.
	RelatedID string
	Read      bool `gorm:"default:false"`
}

// DeviceSubscription is a push endpoint registered by a participant's device.
type DeviceSubscription struct {
	ID            string `gorm:"primaryKey;type:uuid"`
	CreatedAt     time.Time
	DeletedAt     gorm.DeletedAt
	ParticipantID string `gorm:"not null;index"`
	Endpoint      string `gorm:"not null"`
}

// Announcement is a daily broadcast written by an administrator.
type Announcement struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt
	Title       string `gorm:"not null"`
	Body        string
	PublishedAt time.Time
	CreatedBy   string
}
