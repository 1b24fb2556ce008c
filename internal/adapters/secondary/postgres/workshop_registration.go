package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/adamatova/community-api/internal/domain/entity"
)

type WorkshopRegistrationRepository struct {
	db *gorm.DB
}

func NewWorkshopRegistrationRepository(db *gorm.DB) *WorkshopRegistrationRepository {
	return &WorkshopRegistrationRepository{
		db: db,
	}
}

func (s *WorkshopRegistrationRepository) Create(ctx context.Context, reg *entity.WorkshopRegistration) (*entity.WorkshopRegistration, error) {
	err := s.db.WithContext(ctx).Create(&reg).Error
	return reg, err
}

func (s *WorkshopRegistrationRepository) GetByPair(ctx context.Context, workshopID, participantID string) (*entity.WorkshopRegistration, error) {
	var reg entity.WorkshopRegistration
	err := s.db.WithContext(ctx).
		Where("workshop_id = ? AND participant_id = ?", workshopID, participantID).
		First(&reg).Error
	return &reg, err
}

func (s *WorkshopRegistrationRepository) GetByWorkshopID(ctx context.Context, workshopID string) ([]entity.WorkshopRegistration, error) {
	var regs []entity.WorkshopRegistration
	err := s.db.WithContext(ctx).
		Where("workshop_id = ?", workshopID).
		Order("created_at ASC").
		Find(&regs).Error
	return regs, err
}

func (s *WorkshopRegistrationRepository) GetByParticipantID(ctx context.Context, participantID string) ([]entity.WorkshopRegistration, error) {
	var regs []entity.WorkshopRegistration
	err := s.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("created_at DESC").
		Find(&regs).Error
	return regs, err
}

func (s *WorkshopRegistrationRepository) Count(ctx context.Context, workshopID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.WorkshopRegistration{}).
		Where("workshop_id = ?", workshopID).
		Count(&count).Error
	return count, err
}

func (s *WorkshopRegistrationRepository) CountByWorkshop(ctx context.Context, workshopIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(workshopIDs))
	if len(workshopIDs) == 0 {
		return counts, nil
	}

	type rawCount struct {
		WorkshopID string `gorm:"column:workshop_id"`
		Registered int64  `gorm:"column:registered"`
	}
	var rawResult []rawCount
	err := s.db.WithContext(ctx).
		Table("workshop_registrations").
		Select("workshop_id, COUNT(*) AS registered").
		Where("workshop_id IN ? AND deleted_at IS NULL", workshopIDs).
		Group("workshop_id").
		Scan(&rawResult).Error
	if err != nil {
		return nil, err
	}

	for _, raw := range rawResult {
		counts[raw.WorkshopID] = raw.Registered
	}
	return counts, nil
}

// DeleteByPair removes the row for real, freeing the unique index for a
// later re-registration.
func (s *WorkshopRegistrationRepository) DeleteByPair(ctx context.Context, workshopID, participantID string) error {
	return s.db.WithContext(ctx).
		Unscoped().
		Where("workshop_id = ? AND participant_id = ?", workshopID, participantID).
		Delete(&entity.WorkshopRegistration{}).Error
}
