package service

import (
	"context"
	"fmt"

	"github.com/adamatova/community-api/internal/domain/entity"
	"github.com/adamatova/community-api/internal/domain/schedule"
	"github.com/adamatova/community-api/internal/ports/primary"
	"github.com/adamatova/community-api/internal/ports/secondary"
	"github.com/adamatova/community-api/pkg/logger/types"
)

// AnnouncementService publishes the administrators' daily broadcasts and
// fans a notification out to every participant.
type AnnouncementService struct {
	repo            secondary.AnnouncementRepository
	participantRepo secondary.ParticipantRepository
	notify          primary.NotifyService

	clock  schedule.Clock
	logger *types.Logger
}

func NewAnnouncementService(
	logger *types.Logger,
	repo secondary.AnnouncementRepository,
	participantRepo secondary.ParticipantRepository,
	notify primary.NotifyService,
	clock schedule.Clock,
) *AnnouncementService {
	return &AnnouncementService{
		repo:            repo,
		participantRepo: participantRepo,
		notify:          notify,
		clock:           clock,
		logger:          logger,
	}
}

func (s *AnnouncementService) Publish(ctx context.Context, title, body, createdBy string) (*entity.Announcement, error) {
	if title == "" {
		return nil, fmt.Errorf("announcement title is required: %w", ErrValidationFailed)
	}

	a, err := s.repo.Create(ctx, &entity.Announcement{
		Title:       title,
		Body:        body,
		PublishedAt: s.clock.Now(),
		CreatedBy:   createdBy,
	})
	if err != nil {
		return nil, wrapStore("create announcement", err)
	}

	participants, err := s.participantRepo.GetAll(ctx)
	if err != nil {
		s.logger.Errorf("announcement %s stored but broadcast failed to load participants: %v", a.ID, err)
		return a, nil
	}
	for _, p := range participants {
		s.notify.Notify(ctx, p.ID, entity.NotificationTypeAnnouncement, title, a.ID)
	}
	return a, nil
}

func (s *AnnouncementService) Today(ctx context.Context) ([]entity.Announcement, error) {
	return s.repo.GetForDay(ctx, schedule.DayUTC(s.clock.Now()))
}

func (s *AnnouncementService) Recent(ctx context.Context, limit int) ([]entity.Announcement, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.GetRecent(ctx, limit)
}

func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return wrapStore("delete announcement", err)
	}
	return nil
}
