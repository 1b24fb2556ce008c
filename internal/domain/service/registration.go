package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/adamatova/community-api/internal/domain/dto"
	"github.com/adamatova/community-api/internal/domain/entity"
	"github.com/adamatova/community-api/internal/domain/schedule"
	"github.com/adamatova/community-api/internal/ports/primary"
	"github.com/adamatova/community-api/internal/ports/secondary"
	"github.com/adamatova/community-api/pkg/changefeed"
	"github.com/adamatova/community-api/pkg/logger/types"
)

const (
	tableGroupRegistrations    = "group_registrations"
	tableWorkshopRegistrations = "workshop_registrations"
)

// RegistrationService is the transactional decision point for joining and
// leaving activities.
//
// By default admissibility (capacity, deadline) is checked by the caller via
// the availability helpers before invoking Register, matching the reference
// behavior; concurrent registrations near the last slot can therefore
// overshoot capacity. Constructing the service with strict=true closes that
// race by re-validating inside the gate.
type RegistrationService struct {
	groupRepo       secondary.GroupRepository
	workshopRepo    secondary.WorkshopRepository
	groupRegRepo    secondary.GroupRegistrationRepository
	workshopRegRepo secondary.WorkshopRegistrationRepository
	participantRepo secondary.ParticipantRepository
	notify          primary.NotifyService

	feed   *changefeed.Feed
	clock  schedule.Clock
	logger *types.Logger

	knownTags []string
	strict    bool
}

func NewRegistrationService(
	logger *types.Logger,
	groupRepo secondary.GroupRepository,
	workshopRepo secondary.WorkshopRepository,
	groupRegRepo secondary.GroupRegistrationRepository,
	workshopRegRepo secondary.WorkshopRegistrationRepository,
	participantRepo secondary.ParticipantRepository,
	notify primary.NotifyService,
	feed *changefeed.Feed,
	clock schedule.Clock,
	knownTags []string,
	strict bool,
) *RegistrationService {
	return &RegistrationService{
		groupRepo:       groupRepo,
		workshopRepo:    workshopRepo,
		groupRegRepo:    groupRegRepo,
		workshopRegRepo: workshopRegRepo,
		participantRepo: participantRepo,
		notify:          notify,
		feed:            feed,
		clock:           clock,
		logger:          logger,
		knownTags:       knownTags,
		strict:          strict,
	}
}

func (s *RegistrationService) RegisterForGroup(ctx context.Context, participantID, groupID, comment string) (*entity.GroupRegistration, error) {
	if participantID == "" {
		return nil, ErrNotAuthenticated
	}

	group, err := s.groupRepo.Get(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("group %s: %w", groupID, ErrNotFound)
		}
		return nil, fmt.Errorf("get group: %w", err)
	}

	if _, err = s.groupRegRepo.GetByPair(ctx, groupID, participantID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}

	if s.strict {
		if err = s.recheckGroup(ctx, group, participantID); err != nil {
			return nil, err
		}
	}

	reg, err := s.groupRegRepo.Create(ctx, &entity.GroupRegistration{
		GroupID:       groupID,
		ParticipantID: participantID,
		Status:        entity.RegistrationPending,
		Comment:       comment,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRegistered
		}
		return nil, wrapStore("create group registration", err)
	}

	s.feed.Publish(tableGroupRegistrations, changefeed.EventInsert)
	return reg, nil
}

func (s *RegistrationService) RegisterForWorkshop(ctx context.Context, participantID, workshopID, comment string) (*entity.WorkshopRegistration, error) {
	if participantID == "" {
		return nil, ErrNotAuthenticated
	}

	workshop, err := s.workshopRepo.Get(ctx, workshopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("workshop %s: %w", workshopID, ErrNotFound)
		}
		return nil, fmt.Errorf("get workshop: %w", err)
	}

	if _, err = s.workshopRegRepo.GetByPair(ctx, workshopID, participantID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing registration: %w", err)
	}

	if s.strict {
		if err = s.recheckWorkshop(ctx, workshop, participantID); err != nil {
			return nil, err
		}
	}

	reg, err := s.workshopRegRepo.Create(ctx, &entity.WorkshopRegistration{
		WorkshopID:    workshopID,
		ParticipantID: participantID,
		Comment:       comment,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRegistered
		}
		return nil, wrapStore("create workshop registration", err)
	}

	s.feed.Publish(tableWorkshopRegistrations, changefeed.EventInsert)
	return reg, nil
}

// UnregisterFromGroup deletes the caller's own row. Idempotent: a missing row
// is a success, so double-clicks and stale UIs never surface an error.
func (s *RegistrationService) UnregisterFromGroup(ctx context.Context, participantID, groupID string) error {
	if participantID == "" {
		return ErrNotAuthenticated
	}
	if err := s.groupRegRepo.DeleteByPair(ctx, groupID, participantID); err != nil {
		return wrapStore("delete group registration", err)
	}
	s.feed.Publish(tableGroupRegistrations, changefeed.EventDelete)
	return nil
}

func (s *RegistrationService) UnregisterFromWorkshop(ctx context.Context, participantID, workshopID string) error {
	if participantID == "" {
		return ErrNotAuthenticated
	}
	if err := s.workshopRegRepo.DeleteByPair(ctx, workshopID, participantID); err != nil {
		return wrapStore("delete workshop registration", err)
	}
	s.feed.Publish(tableWorkshopRegistrations, changefeed.EventDelete)
	return nil
}

// SetGroupApproval moves a pending request to approved or rejected and, on
// approval, notifies the participant. Capacity is not re-validated here,
// matching the reference behavior.
func (s *RegistrationService) SetGroupApproval(ctx context.Context, registrationID string, approved bool) (*entity.GroupRegistration, error) {
	status := entity.RegistrationRejected
	if approved {
		status = entity.RegistrationApproved
	}

	reg, err := s.groupRegRepo.UpdateStatus(ctx, registrationID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("registration %s: %w", registrationID, ErrNotFound)
		}
		return nil, wrapStore("update registration status", err)
	}

	if approved {
		group, err := s.groupRepo.Get(ctx, reg.GroupID)
		if err != nil {
			s.logger.Errorf("approved registration %s but failed to load group for notification: %v", registrationID, err)
		} else {
			s.notify.Notify(ctx, reg.ParticipantID, entity.NotificationTypeApproval,
				fmt.Sprintf("הבקשה שלך להצטרף לקבוצה %q אושרה", group.Title), group.ID)
		}
	}

	s.feed.Publish(tableGroupRegistrations, changefeed.EventUpdate)
	return reg, nil
}

func (s *RegistrationService) PendingRequests(ctx context.Context) ([]dto.PendingRequest, error) {
	return s.groupRegRepo.GetPending(ctx)
}

func (s *RegistrationService) GroupRoster(ctx context.Context, groupID string) ([]dto.RosterRow, error) {
	regs, err := s.groupRegRepo.GetByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group registrations: %w", err)
	}
	rows := make([]dto.RosterRow, 0, len(regs))
	for _, reg := range regs {
		row := dto.RosterRow{Status: string(reg.Status), Comment: reg.Comment, RegisteredAt: reg.CreatedAt}
		s.fillParticipant(ctx, reg.ParticipantID, &row)
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *RegistrationService) WorkshopRoster(ctx context.Context, workshopID string) ([]dto.RosterRow, error) {
	regs, err := s.workshopRegRepo.GetByWorkshopID(ctx, workshopID)
	if err != nil {
		return nil, fmt.Errorf("get workshop registrations: %w", err)
	}
	rows := make([]dto.RosterRow, 0, len(regs))
	for _, reg := range regs {
		row := dto.RosterRow{Status: "registered", Comment: reg.Comment, RegisteredAt: reg.CreatedAt}
		s.fillParticipant(ctx, reg.ParticipantID, &row)
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *RegistrationService) MyGroupRegistrations(ctx context.Context, participantID string) ([]entity.GroupRegistration, error) {
	if participantID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.groupRegRepo.GetByParticipantID(ctx, participantID)
}

func (s *RegistrationService) MyWorkshopRegistrations(ctx context.Context, participantID string) ([]entity.WorkshopRegistration, error) {
	if participantID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.workshopRegRepo.GetByParticipantID(ctx, participantID)
}

func (s *RegistrationService) fillParticipant(ctx context.Context, participantID string, row *dto.RosterRow) {
	participant, err := s.participantRepo.Get(ctx, participantID)
	if err != nil {
		s.logger.Warnf("roster: participant %s not found: %v", participantID, err)
		row.ParticipantName = participantID
		return
	}
	row.ParticipantName = participant.FullName
	row.Phone = participant.Phone
	row.Email = participant.Email
}

func (s *RegistrationService) recheckGroup(ctx context.Context, group *entity.Group, participantID string) error {
	approved, err := s.groupRegRepo.CountApproved(ctx, group.ID)
	if err != nil {
		return fmt.Errorf("count approved: %w", err)
	}
	tags := s.participantTags(ctx, participantID)
	if !GroupAdmissible(group, approved, tags, s.knownTags, s.clock.Now(), false) {
		return fmt.Errorf("group %s is not admissible: %w", group.ID, ErrValidationFailed)
	}
	return nil
}

func (s *RegistrationService) recheckWorkshop(ctx context.Context, workshop *entity.Workshop, participantID string) error {
	count, err := s.workshopRegRepo.Count(ctx, workshop.ID)
	if err != nil {
		return fmt.Errorf("count registrations: %w", err)
	}
	tags := s.participantTags(ctx, participantID)
	if !WorkshopAdmissible(workshop, count, tags, s.knownTags, s.clock.Now(), false) {
		return fmt.Errorf("workshop %s is not admissible: %w", workshop.ID, ErrValidationFailed)
	}
	return nil
}

func (s *RegistrationService) participantTags(ctx context.Context, participantID string) []string {
	participant, err := s.participantRepo.Get(ctx, participantID)
	if err != nil {
		return nil
	}
	return participant.CommunityStatuses
}
