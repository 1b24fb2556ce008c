package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/adamatova/community-api/internal/domain/dto"
	"github.com/adamatova/community-api/internal/domain/entity"
)

type GroupRegistrationRepository struct {
	db *gorm.DB
}

func NewGroupRegistrationRepository(db *gorm.DB) *GroupRegistrationRepository {
	return &GroupRegistrationRepository{
		db: db,
	}
}

func (s *GroupRegistrationRepository) Create(ctx context.Context, reg *entity.GroupRegistration) (*entity.GroupRegistration, error) {
	err := s.db.WithContext(ctx).Create(&reg).Error
	return reg, err
}

func (s *GroupRegistrationRepository) Get(ctx context.Context, id string) (*entity.GroupRegistration, error) {
	var reg entity.GroupRegistration
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&reg).Error
	return &reg, err
}

func (s *GroupRegistrationRepository) GetByPair(ctx context.Context, groupID, participantID string) (*entity.GroupRegistration, error) {
	var reg entity.GroupRegistration
	err := s.db.WithContext(ctx).
		Where("group_id = ? AND participant_id = ?", groupID, participantID).
		First(&reg).Error
	return &reg, err
}

func (s *GroupRegistrationRepository) GetByGroupID(ctx context.Context, groupID string) ([]entity.GroupRegistration, error) {
	var regs []entity.GroupRegistration
	err := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at ASC").
		Find(&regs).Error
	return regs, err
}

func (s *GroupRegistrationRepository) GetByParticipantID(ctx context.Context, participantID string) ([]entity.GroupRegistration, error) {
	var regs []entity.GroupRegistration
	err := s.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("created_at DESC").
		Find(&regs).Error
	return regs, err
}

func (s *GroupRegistrationRepository) GetPending(ctx context.Context) ([]dto.PendingRequest, error) {
	type rawRequest struct {
		RegistrationID  string    `gorm:"column:registration_id"`
		GroupID         string    `gorm:"column:group_id"`
		GroupTitle      string    `gorm:"column:group_title"`
		ParticipantID   string    `gorm:"column:participant_id"`
		ParticipantName string    `gorm:"column:participant_name"`
		Comment         string    `gorm:"column:comment"`
		CreatedAt       time.Time `gorm:"column:created_at"`
	}

	var rawResult []rawRequest
	err := s.db.WithContext(ctx).
		Table("group_registrations").
		Select("group_registrations.id AS registration_id, group_registrations.group_id, groups.title AS group_title, group_registrations.participant_id, participants.full_name AS participant_name, group_registrations.comment, group_registrations.created_at").
		Joins("LEFT JOIN groups ON groups.id = group_registrations.group_id").
		Joins("LEFT JOIN participants ON participants.id = group_registrations.participant_id").
		Where("group_registrations.status = ? AND group_registrations.deleted_at IS NULL", entity.RegistrationPending).
		Order("group_registrations.created_at ASC").
		Scan(&rawResult).Error
	if err != nil {
		return nil, err
	}

	result := make([]dto.PendingRequest, len(rawResult))
	for i, raw := range rawResult {
		result[i] = dto.PendingRequest{
			RegistrationID:  raw.RegistrationID,
			GroupID:         raw.GroupID,
			GroupTitle:      raw.GroupTitle,
			ParticipantID:   raw.ParticipantID,
			ParticipantName: raw.ParticipantName,
			Comment:         raw.Comment,
			CreatedAt:       raw.CreatedAt,
		}
	}
	return result, nil
}

func (s *GroupRegistrationRepository) CountApproved(ctx context.Context, groupID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.GroupRegistration{}).
		Where("group_id = ? AND status = ?", groupID, entity.RegistrationApproved).
		Count(&count).Error
	return count, err
}

// CountApprovedByGroup aggregates approved counts for many groups in one
// GROUP BY round-trip instead of a COUNT per group.
func (s *GroupRegistrationRepository) CountApprovedByGroup(ctx context.Context, groupIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(groupIDs))
	if len(groupIDs) == 0 {
		return counts, nil
	}

	type rawCount struct {
		GroupID  string `gorm:"column:group_id"`
		Approved int64  `gorm:"column:approved"`
	}
	var rawResult []rawCount
	err := s.db.WithContext(ctx).
		Table("group_registrations").
		Select("group_id, COUNT(*) AS approved").
		Where("group_id IN ? AND status = ? AND deleted_at IS NULL", groupIDs, entity.RegistrationApproved).
		Group("group_id").
		Scan(&rawResult).Error
	if err != nil {
		return nil, err
	}

	for _, raw := range rawResult {
		counts[raw.GroupID] = raw.Approved
	}
	return counts, nil
}

func (s *GroupRegistrationRepository) UpdateStatus(ctx context.Context, id string, status entity.RegistrationStatus) (*entity.GroupRegistration, error) {
	var reg entity.GroupRegistration
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&reg).Error; err != nil {
			return err
		}
		reg.Status = status
		return tx.Save(&reg).Error
	})
	return &reg, err
}

// DeleteByPair removes the row for real. A soft-deleted row would keep
// holding the (group, participant) unique index and block re-registration.
func (s *GroupRegistrationRepository) DeleteByPair(ctx context.Context, groupID, participantID string) error {
	return s.db.WithContext(ctx).
		Unscoped().
		Where("group_id = ? AND participant_id = ?", groupID, participantID).
		Delete(&entity.GroupRegistration{}).Error
}
