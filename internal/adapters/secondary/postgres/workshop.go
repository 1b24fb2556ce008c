package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/adamatova/community-api/internal/domain/entity"
)

type WorkshopRepository struct {
	db *gorm.DB
}

func NewWorkshopRepository(db *gorm.DB) *WorkshopRepository {
	return &WorkshopRepository{
		db: db,
	}
}

func (s *WorkshopRepository) Create(ctx context.Context, workshop *entity.Workshop) (*entity.Workshop, error) {
	err := s.db.WithContext(ctx).Create(&workshop).Error
	return workshop, err
}

func (s *WorkshopRepository) Get(ctx context.Context, id string) (*entity.Workshop, error) {
	var workshop entity.Workshop
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&workshop).Error
	return &workshop, err
}

func (s *WorkshopRepository) GetAll(ctx context.Context) ([]entity.Workshop, error) {
	var workshops []entity.Workshop
	err := s.db.WithContext(ctx).Order("start_date ASC").Find(&workshops).Error
	return workshops, err
}

func (s *WorkshopRepository) GetByStatus(ctx context.Context, status entity.ActivityStatus) ([]entity.Workshop, error) {
	var workshops []entity.Workshop
	err := s.db.WithContext(ctx).Where("status = ?", status).Order("start_date ASC").Find(&workshops).Error
	return workshops, err
}

func (s *WorkshopRepository) Update(ctx context.Context, workshop *entity.Workshop) (*entity.Workshop, error) {
	err := s.db.WithContext(ctx).Save(&workshop).Error
	return workshop, err
}

func (s *WorkshopRepository) UpdateStatus(ctx context.Context, ids []string, status entity.ActivityStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&entity.Workshop{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}

func (s *WorkshopRepository) DeleteCascade(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workshop_id = ?", id).Delete(&entity.WorkshopRegistration{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Workshop{}).Error
	})
}
