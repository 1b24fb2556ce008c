package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/adamatova/community-api/internal/domain/entity"
	"github.com/adamatova/community-api/internal/domain/schedule"
	"github.com/adamatova/community-api/internal/ports/secondary"
	"github.com/adamatova/community-api/pkg/changefeed"
	"github.com/adamatova/community-api/pkg/logger/types"
)

// SweeperService flips open activities whose run has fully elapsed to ended.
// It runs on every admin-listing load and hourly from cron; both paths call
// Sweep, which is idempotent and never touches drafts or already-ended rows.
type SweeperService struct {
	groupRepo    secondary.GroupRepository
	workshopRepo secondary.WorkshopRepository

	feed   *changefeed.Feed
	clock  schedule.Clock
	logger *types.Logger
	cron   *cron.Cron
}

func NewSweeperService(
	logger *types.Logger,
	groupRepo secondary.GroupRepository,
	workshopRepo secondary.WorkshopRepository,
	feed *changefeed.Feed,
	clock schedule.Clock,
) *SweeperService {
	return &SweeperService{
		groupRepo:    groupRepo,
		workshopRepo: workshopRepo,
		feed:         feed,
		clock:        clock,
		logger:       logger,
		cron:         cron.New(),
	}
}

// Sweep re-evaluates every open activity and returns how many it ended.
func (s *SweeperService) Sweep(ctx context.Context) (int, error) {
	now := s.clock.Now()
	swept := 0

	groups, err := s.groupRepo.GetByStatus(ctx, entity.ActivityStatusOpen)
	if err != nil {
		return 0, fmt.Errorf("get open groups: %w", err)
	}
	var endedGroups []string
	for _, g := range groups {
		if schedule.GroupEnded(g.StartDate, g.OccurrenceCount, now) {
			endedGroups = append(endedGroups, g.ID)
		}
	}
	if len(endedGroups) > 0 {
		if err := s.groupRepo.UpdateStatus(ctx, endedGroups, entity.ActivityStatusEnded); err != nil {
			return 0, wrapStore("end expired groups", err)
		}
		s.feed.Publish(tableGroups, changefeed.EventUpdate)
		swept += len(endedGroups)
	}

	workshops, err := s.workshopRepo.GetByStatus(ctx, entity.ActivityStatusOpen)
	if err != nil {
		return swept, fmt.Errorf("get open workshops: %w", err)
	}
	var endedWorkshops []string
	for _, w := range workshops {
		if schedule.WorkshopPassed(w.StartDate, w.MeetingTime, now) {
			endedWorkshops = append(endedWorkshops, w.ID)
		}
	}
	if len(endedWorkshops) > 0 {
		if err := s.workshopRepo.UpdateStatus(ctx, endedWorkshops, entity.ActivityStatusEnded); err != nil {
			return swept, wrapStore("end expired workshops", err)
		}
		s.feed.Publish(tableWorkshops, changefeed.EventUpdate)
		swept += len(endedWorkshops)
	}

	if swept > 0 {
		s.logger.Infof("sweeper ended %d expired activities", swept)
	}
	return swept, nil
}

// StartScheduler runs Sweep at the top of every hour.
func (s *SweeperService) StartScheduler() error {
	_, err := s.cron.AddFunc("0 * * * *", func() {
		if _, err := s.Sweep(context.Background()); err != nil {
			s.logger.Errorf("scheduled sweep failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Sweeper scheduler started")
	return nil
}

// StopScheduler stops the cron loop.
func (s *SweeperService) StopScheduler() {
	if s.cron != nil {
		s.cron.Stop()
		s.logger.Info("Sweeper scheduler stopped")
	}
}
