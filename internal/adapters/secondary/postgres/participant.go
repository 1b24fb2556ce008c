package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adamatova/community-api/internal/domain/entity"
)

type ParticipantRepository struct {
	db *gorm.DB
}

func NewParticipantRepository(db *gorm.DB) *ParticipantRepository {
	return &ParticipantRepository{
		db: db,
	}
}

func (s *ParticipantRepository) Get(ctx context.Context, id string) (*entity.Participant, error) {
	var participant entity.Participant
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&participant).Error
	return &participant, err
}

func (s *ParticipantRepository) GetAll(ctx context.Context) ([]entity.Participant, error) {
	var participants []entity.Participant
	err := s.db.WithContext(ctx).Find(&participants).Error
	return participants, err
}

// Upsert inserts on first login, updates the profile afterwards.
func (s *ParticipantRepository) Upsert(ctx context.Context, participant *entity.Participant) (*entity.Participant, error) {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&participant).Error
	return participant, err
}

type AdministratorRepository struct {
	db *gorm.DB
}

func NewAdministratorRepository(db *gorm.DB) *AdministratorRepository {
	return &AdministratorRepository{
		db: db,
	}
}

func (s *AdministratorRepository) IsAdministrator(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.Administrator{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}

func (s *AdministratorRepository) GetAll(ctx context.Context) ([]entity.Administrator, error) {
	var admins []entity.Administrator
	err := s.db.WithContext(ctx).Find(&admins).Error
	return admins, err
}
