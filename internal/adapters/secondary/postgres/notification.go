package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/adamatova/community-api/internal/domain/entity"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		db: db,
	}
}

func (s *NotificationRepository) Create(ctx context.Context, n *entity.Notification) (*entity.Notification, error) {
	err := s.db.WithContext(ctx).Create(&n).Error
	return n, err
}

func (s *NotificationRepository) GetByParticipant(ctx context.Context, participantID string, limit, offset int) ([]entity.Notification, error) {
	var notifications []entity.Notification
	err := s.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationRepository) CountUnread(ctx context.Context, participantID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("participant_id = ? AND read = ?", participantID, false).
		Count(&count).Error
	return count, err
}

func (s *NotificationRepository) MarkRead(ctx context.Context, id, participantID string) error {
	return s.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("id = ? AND participant_id = ?", id, participantID).
		Update("read", true).Error
}

type DeviceRepository struct {
	db *gorm.DB
}

func NewDeviceRepository(db *gorm.DB) *DeviceRepository {
	return &DeviceRepository{
		db: db,
	}
}

func (s *DeviceRepository) Create(ctx context.Context, d *entity.DeviceSubscription) (*entity.DeviceSubscription, error) {
	err := s.db.WithContext(ctx).Create(&d).Error
	return d, err
}

func (s *DeviceRepository) GetByParticipant(ctx context.Context, participantID string) ([]entity.DeviceSubscription, error) {
	var devices []entity.DeviceSubscription
	err := s.db.WithContext(ctx).Where("participant_id = ?", participantID).Find(&devices).Error
	return devices, err
}

func (s *DeviceRepository) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.DeviceSubscription{}).Error
}
