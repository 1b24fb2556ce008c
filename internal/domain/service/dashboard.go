package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/adamatova/community-api/internal/domain/dto"
	"github.com/adamatova/community-api/internal/domain/entity"
	"github.com/adamatova/community-api/internal/domain/schedule"
	"github.com/adamatova/community-api/internal/ports/secondary"
	"github.com/adamatova/community-api/pkg/changefeed"
	"github.com/adamatova/community-api/pkg/logger/types"
)

const dashboardCacheTTL = 30 * time.Second

// DashboardService builds the "today's activities" view: groups meeting
// today (weekday match inside an active window) plus workshops dated today,
// sorted by meeting time. Snapshots are cached briefly and invalidated by a
// debounced change-feed watcher so bursts of row changes cause one refresh,
// not a storm.
type DashboardService struct {
	groupRepo    secondary.GroupRepository
	workshopRepo secondary.WorkshopRepository

	cache  secondary.Cache
	feed   *changefeed.Feed
	clock  schedule.Clock
	logger *types.Logger

	sub       *changefeed.Subscription
	debouncer *changefeed.Debouncer
	done      chan struct{}
}

func NewDashboardService(
	logger *types.Logger,
	groupRepo secondary.GroupRepository,
	workshopRepo secondary.WorkshopRepository,
	cache secondary.Cache,
	feed *changefeed.Feed,
	clock schedule.Clock,
) *DashboardService {
	return &DashboardService{
		groupRepo:    groupRepo,
		workshopRepo: workshopRepo,
		cache:        cache,
		feed:         feed,
		clock:        clock,
		logger:       logger,
	}
}

// TodayActivities returns the day's schedule, serving the cached snapshot
// when fresh.
func (s *DashboardService) TodayActivities(ctx context.Context) ([]dto.TodayActivity, error) {
	now := s.clock.Now()
	key := s.cacheKey(now)

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != "" {
			var cached []dto.TodayActivity
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	activities, err := s.buildToday(ctx, now)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(activities); err == nil {
			if err := s.cache.Set(ctx, key, string(raw), dashboardCacheTTL); err != nil {
				s.logger.Warnf("failed to cache dashboard snapshot: %v", err)
			}
		}
	}
	return activities, nil
}

func (s *DashboardService) buildToday(ctx context.Context, now time.Time) ([]dto.TodayActivity, error) {
	today := schedule.DayUTC(now)
	weekday := int(today.Weekday())

	groups, err := s.groupRepo.GetByStatus(ctx, entity.ActivityStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("get open groups: %w", err)
	}

	var activities []dto.TodayActivity
	for _, g := range groups {
		if g.MeetingWeekday() != weekday {
			continue
		}
		if !schedule.GroupActiveOnDay(g.StartDate, g.OccurrenceCount, today) {
			continue
		}
		activities = append(activities, dto.TodayActivity{
			ActivityID:    g.ID,
			Kind:          dto.KindGroup,
			Title:         g.Title,
			TimeLabel:     schedule.ClipHHMM(g.MeetingTime),
			ScheduleLabel: schedule.FormatWeekly(g.MeetingWeekday(), g.MeetingTime),
		})
	}

	workshops, err := s.workshopRepo.GetByStatus(ctx, entity.ActivityStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("get open workshops: %w", err)
	}
	for _, w := range workshops {
		if !schedule.DayUTC(w.StartDate).Equal(today) {
			continue
		}
		activities = append(activities, dto.TodayActivity{
			ActivityID:    w.ID,
			Kind:          dto.KindWorkshop,
			Title:         w.Title,
			TimeLabel:     schedule.ClipHHMM(w.MeetingTime),
			ScheduleLabel: schedule.FormatWorkshop(w.MeetingWeekday(), w.MeetingTime),
		})
	}

	// Lexicographic on "HH:MM" is chronological as long as values stay
	// zero-padded two-digit.
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].TimeLabel != activities[j].TimeLabel {
			return activities[i].TimeLabel < activities[j].TimeLabel
		}
		return activities[i].Title < activities[j].Title
	})
	return activities, nil
}

// StartWatcher subscribes to activity and registration tables and drops the
// cached snapshot about a second after the last observed change.
func (s *DashboardService) StartWatcher() {
	if s.sub != nil {
		return
	}
	s.sub = s.feed.Subscribe(tableGroups, tableWorkshops, tableGroupRegistrations, tableWorkshopRegistrations)
	s.debouncer = changefeed.NewDebouncer(time.Second, s.invalidate)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for range s.sub.C {
			s.debouncer.Trigger()
		}
	}()
	s.logger.Info("Dashboard watcher started")
}

// StopWatcher cancels the subscription and clears any pending refresh timer.
func (s *DashboardService) StopWatcher() {
	if s.sub == nil {
		return
	}
	s.sub.Cancel()
	<-s.done
	s.debouncer.Stop()
	s.sub = nil
	s.logger.Info("Dashboard watcher stopped")
}

func (s *DashboardService) invalidate() {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, s.cacheKey(s.clock.Now())); err != nil {
		s.logger.Warnf("failed to invalidate dashboard cache: %v", err)
	}
}

func (s *DashboardService) cacheKey(now time.Time) string {
	return "dashboard:today:" + schedule.DayUTC(now).Format("2006-01-02")
}
