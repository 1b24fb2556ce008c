package secondary

import (
	"context"
	"time"

	"github.com/adamatova/community-api/internal/domain/entity"
)

// ParticipantRepository defines the interface for participant profile data
// access
type ParticipantRepository interface {
	Get(ctx context.Context, id string) (*entity.Participant, error)
	GetAll(ctx context.Context) ([]entity.Participant, error)
	Upsert(ctx context.Context, participant *entity.Participant) (*entity.Participant, error)
}

// AdministratorRepository checks the administrator allow-list
type AdministratorRepository interface {
	IsAdministrator(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context) ([]entity.Administrator, error)
}

// AnnouncementRepository defines the interface for announcement data access
type AnnouncementRepository interface {
	Create(ctx context.Context, a *entity.Announcement) (*entity.Announcement, error)
	GetForDay(ctx context.Context, day time.Time) ([]entity.Announcement, error)
	GetRecent(ctx context.Context, limit int) ([]entity.Announcement, error)
	Delete(ctx context.Context, id string) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) (*entity.Notification, error)
	GetByParticipant(ctx context.Context, participantID string, limit, offset int) ([]entity.Notification, error)
	CountUnread(ctx context.Context, participantID string) (int64, error)
	MarkRead(ctx context.Context, id, participantID string) error
}

// DeviceRepository defines the interface for push-subscription data access
type DeviceRepository interface {
	Create(ctx context.Context, d *entity.DeviceSubscription) (*entity.DeviceSubscription, error)
	GetByParticipant(ctx context.Context, participantID string) ([]entity.DeviceSubscription, error)
	Delete(ctx context.Context, id string) error
}
