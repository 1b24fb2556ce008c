package primary

import (
	"context"

	"github.com/adamatova/community-api/internal/domain/dto"
)

// DashboardService defines the interface for aggregated admin views
type DashboardService interface {
	TodayActivities(ctx context.Context) ([]dto.TodayActivity, error)
	StartWatcher()
	StopWatcher()
}

// SweeperService flips expired open activities to ended
type SweeperService interface {
	Sweep(ctx context.Context) (int, error)
	StartScheduler() error
	StopScheduler()
}
