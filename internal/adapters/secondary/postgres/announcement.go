package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/adamatova/community-api/internal/domain/entity"
)

type AnnouncementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{
		db: db,
	}
}

func (s *AnnouncementRepository) Create(ctx context.Context, a *entity.Announcement) (*entity.Announcement, error) {
	err := s.db.WithContext(ctx).Create(&a).Error
	return a, err
}

// GetForDay returns announcements published on the given UTC day.
func (s *AnnouncementRepository) GetForDay(ctx context.Context, day time.Time) ([]entity.Announcement, error) {
	var announcements []entity.Announcement
	next := day.AddDate(0, 0, 1)
	err := s.db.WithContext(ctx).
		Where("published_at >= ? AND published_at < ?", day, next).
		Order("published_at DESC").
		Find(&announcements).Error
	return announcements, err
}

func (s *AnnouncementRepository) GetRecent(ctx context.Context, limit int) ([]entity.Announcement, error) {
	var announcements []entity.Announcement
	err := s.db.WithContext(ctx).
		Order("published_at DESC").
		Limit(limit).
		Find(&announcements).Error
	return announcements, err
}

func (s *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Announcement{}).Error
}
