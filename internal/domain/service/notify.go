package service

import (
	"context"
	"fmt"
	"time"

	"github.com/adamatova/community-api/internal/domain/entity"
	"github.com/adamatova/community-api/internal/ports/secondary"
	"github.com/adamatova/community-api/pkg/logger/types"
)

const unreadCacheTTL = 30 * time.Second

// NotifyService persists notifications and dispatches them fire-and-forget:
// a webhook push to every registered device, email as fallback when the
// participant has none. Delivery failures are logged, never propagated — the
// stored row is the source of truth.
type NotifyService struct {
	notificationRepo secondary.NotificationRepository
	deviceRepo       secondary.DeviceRepository
	participantRepo  secondary.ParticipantRepository

	push   secondary.PushSender
	email  secondary.EmailSender
	cache  secondary.Cache
	logger *types.Logger
}

func NewNotifyService(
	logger *types.Logger,
	notificationRepo secondary.NotificationRepository,
	deviceRepo secondary.DeviceRepository,
	participantRepo secondary.ParticipantRepository,
	push secondary.PushSender,
	email secondary.EmailSender,
	cache secondary.Cache,
) *NotifyService {
	return &NotifyService{
		notificationRepo: notificationRepo,
		deviceRepo:       deviceRepo,
		participantRepo:  participantRepo,
		push:             push,
		email:            email,
		cache:            cache,
		logger:           logger,
	}
}

// Notify records the notification and dispatches it. Errors are logged only.
func (s *NotifyService) Notify(ctx context.Context, participantID string, typ entity.NotificationType, message, relatedID string) {
	n := &entity.Notification{
		ParticipantID: participantID,
		Type:          typ,
		Message:       message,
		RelatedID:     relatedID,
	}
	if _, err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Errorf("failed to store notification for participant %s: %v", participantID, err)
		return
	}
	s.invalidateUnread(ctx, participantID)

	devices, err := s.deviceRepo.GetByParticipant(ctx, participantID)
	if err != nil {
		s.logger.Errorf("failed to load devices for participant %s: %v", participantID, err)
		return
	}

	payload := secondary.PushPayload{Type: string(typ), Message: message, RelatedID: relatedID}
	sent := 0
	for _, d := range devices {
		if err := s.push.Send(ctx, d.Endpoint, payload); err != nil {
			s.logger.Warnf("push to device %s failed: %v", d.ID, err)
			continue
		}
		sent++
	}
	if sent > 0 {
		return
	}

	participant, err := s.participantRepo.Get(ctx, participantID)
	if err != nil || participant.Email == "" {
		return
	}
	if err := s.email.Send(participant.Email, subjectFor(typ), message); err != nil {
		s.logger.Warnf("email fallback to %s failed: %v", participant.Email, err)
	}
}

func (s *NotifyService) ListForParticipant(ctx context.Context, participantID string, limit, offset int) ([]entity.Notification, error) {
	if participantID == "" {
		return nil, ErrNotAuthenticated
	}
	if limit <= 0 {
		limit = 50
	}
	return s.notificationRepo.GetByParticipant(ctx, participantID, limit, offset)
}

// UnreadCount is polled by clients every ~30s; the short cache keeps that
// cheap.
func (s *NotifyService) UnreadCount(ctx context.Context, participantID string) (int64, error) {
	if participantID == "" {
		return 0, ErrNotAuthenticated
	}
	key := unreadKey(participantID)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != "" {
			var n int64
			if _, err := fmt.Sscan(raw, &n); err == nil {
				return n, nil
			}
		}
	}

	n, err := s.notificationRepo.CountUnread(ctx, participantID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, fmt.Sprint(n), unreadCacheTTL); err != nil {
			s.logger.Warnf("failed to cache unread count: %v", err)
		}
	}
	return n, nil
}

func (s *NotifyService) MarkRead(ctx context.Context, id, participantID string) error {
	if participantID == "" {
		return ErrNotAuthenticated
	}
	if err := s.notificationRepo.MarkRead(ctx, id, participantID); err != nil {
		return wrapStore("mark notification read", err)
	}
	s.invalidateUnread(ctx, participantID)
	return nil
}

func (s *NotifyService) RegisterDevice(ctx context.Context, participantID, endpoint string) (*entity.DeviceSubscription, error) {
	if participantID == "" {
		return nil, ErrNotAuthenticated
	}
	if endpoint == "" {
		return nil, fmt.Errorf("empty endpoint: %w", ErrValidationFailed)
	}
	d, err := s.deviceRepo.Create(ctx, &entity.DeviceSubscription{
		ParticipantID: participantID,
		Endpoint:      endpoint,
	})
	if err != nil {
		return nil, wrapStore("register device", err)
	}
	return d, nil
}

func (s *NotifyService) invalidateUnread(ctx context.Context, participantID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, unreadKey(participantID)); err != nil {
		s.logger.Warnf("failed to invalidate unread cache: %v", err)
	}
}

func unreadKey(participantID string) string {
	return "notifications:unread:" + participantID
}

func subjectFor(typ entity.NotificationType) string {
	switch typ {
	case entity.NotificationTypeApproval:
		return "הבקשה שלך אושרה"
	case entity.NotificationTypeRejection:
		return "עדכון על הבקשה שלך"
	case entity.NotificationTypeAnnouncement:
		return "הודעה חדשה מאדמה טובה"
	default:
		return "עדכון מאדמה טובה"
	}
}
