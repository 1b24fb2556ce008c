package secondary

import (
	"context"

	"github.com/adamatova/community-api/internal/domain/entity"
)

// GroupRepository defines the interface for group data access
type GroupRepository interface {
	Create(ctx context.Context, group *entity.Group) (*entity.Group, error)
	Get(ctx context.Context, id string) (*entity.Group, error)
	GetAll(ctx context.Context) ([]entity.Group, error)
	GetByStatus(ctx context.Context, status entity.ActivityStatus) ([]entity.Group, error)
	Update(ctx context.Context, group *entity.Group) (*entity.Group, error)
	UpdateStatus(ctx context.Context, ids []string, status entity.ActivityStatus) error
	// DeleteCascade removes the group's registrations and then the group row
	// inside one transaction, so a partial failure never orphans requests.
	DeleteCascade(ctx context.Context, id string) error
}

// WorkshopRepository defines the interface for workshop data access
type WorkshopRepository interface {
	Create(ctx context.Context, workshop *entity.Workshop) (*entity.Workshop, error)
	Get(ctx context.Context, id string) (*entity.Workshop, error)
	GetAll(ctx context.Context) ([]entity.Workshop, error)
	GetByStatus(ctx context.Context, status entity.ActivityStatus) ([]entity.Workshop, error)
	Update(ctx context.Context, workshop *entity.Workshop) (*entity.Workshop, error)
	UpdateStatus(ctx context.Context, ids []string, status entity.ActivityStatus) error
	DeleteCascade(ctx context.Context, id string) error
}
