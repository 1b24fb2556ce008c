package primary

import (
	"context"

	"github.com/adamatova/community-api/internal/domain/entity"
)

// NotifyService defines the interface for notification-related use cases
type NotifyService interface {
	Notify(ctx context.Context, participantID string, typ entity.NotificationType, message, relatedID string)
	ListForParticipant(ctx context.Context, participantID string, limit, offset int) ([]entity.Notification, error)
	UnreadCount(ctx context.Context, participantID string) (int64, error)
	MarkRead(ctx context.Context, id, participantID string) error
	RegisterDevice(ctx context.Context, participantID, endpoint string) (*entity.DeviceSubscription, error)
}

// AnnouncementService defines the interface for daily broadcasts
type AnnouncementService interface {
	Publish(ctx context.Context, title, body, createdBy string) (*entity.Announcement, error)
	Today(ctx context.Context) ([]entity.Announcement, error)
	Recent(ctx context.Context, limit int) ([]entity.Announcement, error)
	Delete(ctx context.Context, id string) error
}

// ParticipantService defines the interface for profile and role lookups
type ParticipantService interface {
	Get(ctx context.Context, id string) (*entity.Participant, error)
	Upsert(ctx context.Context, participant *entity.Participant) (*entity.Participant, error)
	IsAdministrator(ctx context.Context, email string) (bool, error)
}
