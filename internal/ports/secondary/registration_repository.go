package secondary

import (
	"context"

	"github.com/adamatova/community-api/internal/domain/dto"
	"github.com/adamatova/community-api/internal/domain/entity"
)

// GroupRegistrationRepository defines the interface for group join-request
// data access
type GroupRegistrationRepository interface {
	Create(ctx context.Context, reg *entity.GroupRegistration) (*entity.GroupRegistration, error)
	Get(ctx context.Context, id string) (*entity.GroupRegistration, error)
	GetByPair(ctx context.Context, groupID, participantID string) (*entity.GroupRegistration, error)
	GetByGroupID(ctx context.Context, groupID string) ([]entity.GroupRegistration, error)
	GetByParticipantID(ctx context.Context, participantID string) ([]entity.GroupRegistration, error)
	GetPending(ctx context.Context) ([]dto.PendingRequest, error)
	CountApproved(ctx context.Context, groupID string) (int64, error)
	// CountApprovedByGroup aggregates approved counts for many groups in one
	// round-trip (GROUP BY), for the admin listing.
	CountApprovedByGroup(ctx context.Context, groupIDs []string) (map[string]int64, error)
	UpdateStatus(ctx context.Context, id string, status entity.RegistrationStatus) (*entity.GroupRegistration, error)
	DeleteByPair(ctx context.Context, groupID, participantID string) error
}

// WorkshopRegistrationRepository defines the interface for workshop
// attendance data access
type WorkshopRegistrationRepository interface {
	Create(ctx context.Context, reg *entity.WorkshopRegistration) (*entity.WorkshopRegistration, error)
	GetByPair(ctx context.Context, workshopID, participantID string) (*entity.WorkshopRegistration, error)
	GetByWorkshopID(ctx context.Context, workshopID string) ([]entity.WorkshopRegistration, error)
	GetByParticipantID(ctx context.Context, participantID string) ([]entity.WorkshopRegistration, error)
	Count(ctx context.Context, workshopID string) (int64, error)
	CountByWorkshop(ctx context.Context, workshopIDs []string) (map[string]int64, error)
	DeleteByPair(ctx context.Context, workshopID, participantID string) error
}
