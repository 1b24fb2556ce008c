package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/adamatova/community-api/internal/domain/entity"
	"github.com/adamatova/community-api/internal/ports/secondary"
)

// ParticipantService handles profiles and the administrator allow-list.
type ParticipantService struct {
	repo      secondary.ParticipantRepository
	adminRepo secondary.AdministratorRepository
}

func NewParticipantService(repo secondary.ParticipantRepository, adminRepo secondary.AdministratorRepository) *ParticipantService {
	return &ParticipantService{
		repo:      repo,
		adminRepo: adminRepo,
	}
}

func (s *ParticipantService) Get(ctx context.Context, id string) (*entity.Participant, error) {
	participant, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("participant %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return participant, nil
}

func (s *ParticipantService) Upsert(ctx context.Context, participant *entity.Participant) (*entity.Participant, error) {
	if participant.ID == "" {
		return nil, ErrNotAuthenticated
	}
	saved, err := s.repo.Upsert(ctx, participant)
	if err != nil {
		return nil, wrapStore("upsert participant", err)
	}
	return saved, nil
}

func (s *ParticipantService) IsAdministrator(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	return s.adminRepo.IsAdministrator(ctx, email)
}
