package primary

import (
	"context"
	"io"

	"github.com/adamatova/community-api/internal/domain/dto"
	"github.com/adamatova/community-api/internal/domain/entity"
)

// ActivityService defines the interface for activity administration use cases
type ActivityService interface {
	CreateGroup(ctx context.Context, group *entity.Group) (*entity.Group, error)
	CreateWorkshop(ctx context.Context, workshop *entity.Workshop) (*entity.Workshop, error)
	GetGroup(ctx context.Context, id string) (*entity.Group, error)
	GetWorkshop(ctx context.Context, id string) (*entity.Workshop, error)
	UpdateGroup(ctx context.Context, group *entity.Group) (*entity.Group, error)
	UpdateWorkshop(ctx context.Context, workshop *entity.Workshop) (*entity.Workshop, error)
	PublishGroup(ctx context.Context, id string) (*entity.Group, error)
	PublishWorkshop(ctx context.Context, id string) (*entity.Workshop, error)
	EndGroup(ctx context.Context, id string) error
	EndWorkshop(ctx context.Context, id string) error
	DeleteGroup(ctx context.Context, id string) error
	DeleteWorkshop(ctx context.Context, id string) error
	UploadImage(ctx context.Context, activityID string, r io.Reader) (string, error)

	// ListGroupOverviews buckets every group as Open, Active or Ended and
	// attaches approved counts; ListWorkshopOverviews does the two-bucket
	// workshop split.
	ListGroupOverviews(ctx context.Context) ([]dto.GroupOverview, error)
	ListWorkshopOverviews(ctx context.Context) ([]dto.WorkshopOverview, error)

	// AdmissibleGroups and AdmissibleWorkshops filter open activities down to
	// what the given participant may still join. showAll bypasses the
	// audience-tag match.
	AdmissibleGroups(ctx context.Context, participantID string, showAll bool) ([]entity.Group, error)
	AdmissibleWorkshops(ctx context.Context, participantID string, showAll bool) ([]entity.Workshop, error)
}
