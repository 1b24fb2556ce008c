package primary

import (
	"context"

	"github.com/adamatova/community-api/internal/domain/dto"
	"github.com/adamatova/community-api/internal/domain/entity"
)

// RegistrationService defines the interface for the registration gate
type RegistrationService interface {
	RegisterForGroup(ctx context.Context, participantID, groupID, comment string) (*entity.GroupRegistration, error)
	RegisterForWorkshop(ctx context.Context, participantID, workshopID, comment string) (*entity.WorkshopRegistration, error)
	UnregisterFromGroup(ctx context.Context, participantID, groupID string) error
	UnregisterFromWorkshop(ctx context.Context, participantID, workshopID string) error
	SetGroupApproval(ctx context.Context, registrationID string, approved bool) (*entity.GroupRegistration, error)
	PendingRequests(ctx context.Context) ([]dto.PendingRequest, error)
	GroupRoster(ctx context.Context, groupID string) ([]dto.RosterRow, error)
	WorkshopRoster(ctx context.Context, workshopID string) ([]dto.RosterRow, error)
	MyGroupRegistrations(ctx context.Context, participantID string) ([]entity.GroupRegistration, error)
	MyWorkshopRegistrations(ctx context.Context, participantID string) ([]entity.WorkshopRegistration, error)
}
