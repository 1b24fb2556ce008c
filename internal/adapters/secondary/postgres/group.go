package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/adamatova/community-api/internal/domain/entity"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{
		db: db,
	}
}

func (s *GroupRepository) Create(ctx context.Context, group *entity.Group) (*entity.Group, error) {
	err := s.db.WithContext(ctx).Create(&group).Error
	return group, err
}

func (s *GroupRepository) Get(ctx context.Context, id string) (*entity.Group, error) {
	var group entity.Group
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&group).Error
	return &group, err
}

func (s *GroupRepository) GetAll(ctx context.Context) ([]entity.Group, error) {
	var groups []entity.Group
	err := s.db.WithContext(ctx).Order("start_date ASC").Find(&groups).Error
	return groups, err
}

func (s *GroupRepository) GetByStatus(ctx context.Context, status entity.ActivityStatus) ([]entity.Group, error) {
	var groups []entity.Group
	err := s.db.WithContext(ctx).Where("status = ?", status).Order("start_date ASC").Find(&groups).Error
	return groups, err
}

func (s *GroupRepository) Update(ctx context.Context, group *entity.Group) (*entity.Group, error) {
	err := s.db.WithContext(ctx).Save(&group).Error
	return group, err
}

func (s *GroupRepository) UpdateStatus(ctx context.Context, ids []string, status entity.ActivityStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&entity.Group{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}

// DeleteCascade removes registrations before the group row so a mid-way
// failure never leaves requests pointing at a missing group.
func (s *GroupRepository) DeleteCascade(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&entity.GroupRegistration{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Group{}).Error
	})
}
