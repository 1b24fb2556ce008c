package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adamatova/community-api/internal/domain/dto"
	"github.com/adamatova/community-api/internal/domain/entity"
	"github.com/adamatova/community-api/internal/domain/schedule"
	"github.com/adamatova/community-api/internal/domain/utils/validator"
	"github.com/adamatova/community-api/internal/ports/secondary"
	"github.com/adamatova/community-api/pkg/changefeed"
	"github.com/adamatova/community-api/pkg/logger/types"
)

const (
	tableGroups    = "groups"
	tableWorkshops = "workshops"
)

// ActivityService owns the activity lifecycle: drafts, publishing, manual
// ending, cascade deletion, plus the bucketed admin listings and the
// participant-facing admissibility filters.
type ActivityService struct {
	groupRepo       secondary.GroupRepository
	workshopRepo    secondary.WorkshopRepository
	groupRegRepo    secondary.GroupRegistrationRepository
	workshopRegRepo secondary.WorkshopRegistrationRepository
	participantRepo secondary.ParticipantRepository
	files           secondary.FileStorage

	feed   *changefeed.Feed
	clock  schedule.Clock
	logger *types.Logger

	knownTags []string
}

func NewActivityService(
	logger *types.Logger,
	groupRepo secondary.GroupRepository,
	workshopRepo secondary.WorkshopRepository,
	groupRegRepo secondary.GroupRegistrationRepository,
	workshopRegRepo secondary.WorkshopRegistrationRepository,
	participantRepo secondary.ParticipantRepository,
	files secondary.FileStorage,
	feed *changefeed.Feed,
	clock schedule.Clock,
	knownTags []string,
) *ActivityService {
	return &ActivityService{
		groupRepo:       groupRepo,
		workshopRepo:    workshopRepo,
		groupRegRepo:    groupRegRepo,
		workshopRegRepo: workshopRegRepo,
		participantRepo: participantRepo,
		files:           files,
		feed:            feed,
		clock:           clock,
		logger:          logger,
		knownTags:       knownTags,
	}
}

func (s *ActivityService) CreateGroup(ctx context.Context, group *entity.Group) (*entity.Group, error) {
	if !validator.ActivityTitle(group.Title) {
		return nil, fmt.Errorf("group title: %w", ErrValidationFailed)
	}
	if err := validateMeetingTime(group.MeetingTime); err != nil {
		return nil, err
	}
	group.StartDate = schedule.DayUTC(group.StartDate)
	created, err := s.groupRepo.Create(ctx, group)
	if err != nil {
		return nil, wrapStore("create group", err)
	}
	s.feed.Publish(tableGroups, changefeed.EventInsert)
	return created, nil
}

func (s *ActivityService) CreateWorkshop(ctx context.Context, workshop *entity.Workshop) (*entity.Workshop, error) {
	if !validator.ActivityTitle(workshop.Title) {
		return nil, fmt.Errorf("workshop title: %w", ErrValidationFailed)
	}
	if err := validateMeetingTime(workshop.MeetingTime); err != nil {
		return nil, err
	}
	workshop.StartDate = schedule.DayUTC(workshop.StartDate)
	created, err := s.workshopRepo.Create(ctx, workshop)
	if err != nil {
		return nil, wrapStore("create workshop", err)
	}
	s.feed.Publish(tableWorkshops, changefeed.EventInsert)
	return created, nil
}

func (s *ActivityService) GetGroup(ctx context.Context, id string) (*entity.Group, error) {
	group, err := s.groupRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("group %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return group, nil
}

func (s *ActivityService) GetWorkshop(ctx context.Context, id string) (*entity.Workshop, error) {
	workshop, err := s.workshopRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("workshop %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return workshop, nil
}

func (s *ActivityService) UpdateGroup(ctx context.Context, group *entity.Group) (*entity.Group, error) {
	if err := validateMeetingTime(group.MeetingTime); err != nil {
		return nil, err
	}
	group.StartDate = schedule.DayUTC(group.StartDate)
	updated, err := s.groupRepo.Update(ctx, group)
	if err != nil {
		return nil, wrapStore("update group", err)
	}
	s.feed.Publish(tableGroups, changefeed.EventUpdate)
	return updated, nil
}

func (s *ActivityService) UpdateWorkshop(ctx context.Context, workshop *entity.Workshop) (*entity.Workshop, error) {
	if err := validateMeetingTime(workshop.MeetingTime); err != nil {
		return nil, err
	}
	workshop.StartDate = schedule.DayUTC(workshop.StartDate)
	updated, err := s.workshopRepo.Update(ctx, workshop)
	if err != nil {
		return nil, wrapStore("update workshop", err)
	}
	s.feed.Publish(tableWorkshops, changefeed.EventUpdate)
	return updated, nil
}

// PublishGroup moves a draft to open. A start date in the past or a missing
// occurrence count keeps the draft unpublished.
func (s *ActivityService) PublishGroup(ctx context.Context, id string) (*entity.Group, error) {
	group, err := s.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if group.Status != entity.ActivityStatusDraft {
		return nil, fmt.Errorf("group %s is not a draft: %w", id, ErrValidationFailed)
	}
	now := s.clock.Now()
	if group.StartDate.IsZero() || schedule.DayUTC(group.StartDate).Before(schedule.DayUTC(now)) {
		return nil, fmt.Errorf("group start date must not be in the past: %w", ErrValidationFailed)
	}
	if !validator.OccurrenceCount(group.OccurrenceCount) || !validator.MaxParticipants(group.MaxParticipants) || group.RegistrationEndDate.IsZero() {
		return nil, fmt.Errorf("group is missing occurrence count, capacity or registration deadline: %w", ErrValidationFailed)
	}
	group.Status = entity.ActivityStatusOpen
	updated, err := s.groupRepo.Update(ctx, group)
	if err != nil {
		return nil, wrapStore("publish group", err)
	}
	s.feed.Publish(tableGroups, changefeed.EventUpdate)
	return updated, nil
}

func (s *ActivityService) PublishWorkshop(ctx context.Context, id string) (*entity.Workshop, error) {
	workshop, err := s.GetWorkshop(ctx, id)
	if err != nil {
		return nil, err
	}
	if workshop.Status != entity.ActivityStatusDraft {
		return nil, fmt.Errorf("workshop %s is not a draft: %w", id, ErrValidationFailed)
	}
	now := s.clock.Now()
	if workshop.StartDate.IsZero() || schedule.DayUTC(workshop.StartDate).Before(schedule.DayUTC(now)) {
		return nil, fmt.Errorf("workshop start date must not be in the past: %w", ErrValidationFailed)
	}
	if !validator.MaxParticipants(workshop.MaxParticipants) || workshop.RegistrationEndDate.IsZero() {
		return nil, fmt.Errorf("workshop is missing capacity or registration deadline: %w", ErrValidationFailed)
	}
	workshop.Status = entity.ActivityStatusOpen
	updated, err := s.workshopRepo.Update(ctx, workshop)
	if err != nil {
		return nil, wrapStore("publish workshop", err)
	}
	s.feed.Publish(tableWorkshops, changefeed.EventUpdate)
	return updated, nil
}

// EndGroup ends a group manually, ahead of the sweeper.
func (s *ActivityService) EndGroup(ctx context.Context, id string) error {
	if err := s.groupRepo.UpdateStatus(ctx, []string{id}, entity.ActivityStatusEnded); err != nil {
		return wrapStore("end group", err)
	}
	s.feed.Publish(tableGroups, changefeed.EventUpdate)
	return nil
}

func (s *ActivityService) EndWorkshop(ctx context.Context, id string) error {
	if err := s.workshopRepo.UpdateStatus(ctx, []string{id}, entity.ActivityStatusEnded); err != nil {
		return wrapStore("end workshop", err)
	}
	s.feed.Publish(tableWorkshops, changefeed.EventUpdate)
	return nil
}

// DeleteGroup cascades: registrations go first (same transaction as the
// group row), then the stored image. An image-deletion failure is logged and
// surfaced nowhere else — there is no rollback, and a dangling file is
// preferable to a half-deleted group.
func (s *ActivityService) DeleteGroup(ctx context.Context, id string) error {
	group, err := s.GetGroup(ctx, id)
	if err != nil {
		return err
	}
	if err := s.groupRepo.DeleteCascade(ctx, id); err != nil {
		return wrapStore("delete group", err)
	}
	if group.ImageName != "" {
		if err := s.files.Delete(ctx, group.ImageName); err != nil {
			s.logger.Errorf("failed to delete image %s for group %s: %v", group.ImageName, id, err)
		}
	}
	s.feed.Publish(tableGroups, changefeed.EventDelete)
	s.feed.Publish(tableGroupRegistrations, changefeed.EventDelete)
	return nil
}

func (s *ActivityService) DeleteWorkshop(ctx context.Context, id string) error {
	workshop, err := s.GetWorkshop(ctx, id)
	if err != nil {
		return err
	}
	if err := s.workshopRepo.DeleteCascade(ctx, id); err != nil {
		return wrapStore("delete workshop", err)
	}
	if workshop.ImageName != "" {
		if err := s.files.Delete(ctx, workshop.ImageName); err != nil {
			s.logger.Errorf("failed to delete image %s for workshop %s: %v", workshop.ImageName, id, err)
		}
	}
	s.feed.Publish(tableWorkshops, changefeed.EventDelete)
	s.feed.Publish(tableWorkshopRegistrations, changefeed.EventDelete)
	return nil
}

// UploadImage stores the activity image and records its name on whichever
// activity type owns the id.
func (s *ActivityService) UploadImage(ctx context.Context, activityID string, r io.Reader) (string, error) {
	name := fmt.Sprintf("activity-%s-%s.jpg", activityID, uuid.NewString()[:8])
	url, err := s.files.Upload(ctx, name, r)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	if group, err := s.groupRepo.Get(ctx, activityID); err == nil {
		group.ImageName = name
		if _, err = s.groupRepo.Update(ctx, group); err != nil {
			return "", wrapStore("attach image to group", err)
		}
		s.feed.Publish(tableGroups, changefeed.EventUpdate)
		return url, nil
	}

	workshop, err := s.workshopRepo.Get(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("activity %s: %w", activityID, ErrNotFound)
		}
		return "", err
	}
	workshop.ImageName = name
	if _, err = s.workshopRepo.Update(ctx, workshop); err != nil {
		return "", wrapStore("attach image to workshop", err)
	}
	s.feed.Publish(tableWorkshops, changefeed.EventUpdate)
	return url, nil
}

// ListGroupOverviews buckets every group and attaches approved counts, one
// aggregate query for the counts.
func (s *ActivityService) ListGroupOverviews(ctx context.Context) ([]dto.GroupOverview, error) {
	groups, err := s.groupRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get groups: %w", err)
	}

	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	counts, err := s.groupRegRepo.CountApprovedByGroup(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count approved registrations: %w", err)
	}

	now := s.clock.Now()
	overviews := make([]dto.GroupOverview, len(groups))
	for i, g := range groups {
		overviews[i] = dto.GroupOverview{
			Group:         g,
			Bucket:        string(ClassifyGroup(&g, now)),
			ApprovedCount: counts[g.ID],
		}
	}
	return overviews, nil
}

func (s *ActivityService) ListWorkshopOverviews(ctx context.Context) ([]dto.WorkshopOverview, error) {
	workshops, err := s.workshopRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get workshops: %w", err)
	}

	ids := make([]string, len(workshops))
	for i, w := range workshops {
		ids[i] = w.ID
	}
	counts, err := s.workshopRegRepo.CountByWorkshop(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count workshop registrations: %w", err)
	}

	now := s.clock.Now()
	overviews := make([]dto.WorkshopOverview, len(workshops))
	for i, w := range workshops {
		overviews[i] = dto.WorkshopOverview{
			Workshop:        w,
			Bucket:          string(ClassifyWorkshop(&w, now)),
			RegisteredCount: counts[w.ID],
		}
	}
	return overviews, nil
}

// AdmissibleGroups returns the open groups the participant may still join.
func (s *ActivityService) AdmissibleGroups(ctx context.Context, participantID string, showAll bool) ([]entity.Group, error) {
	groups, err := s.groupRepo.GetByStatus(ctx, entity.ActivityStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("get open groups: %w", err)
	}

	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	counts, err := s.groupRegRepo.CountApprovedByGroup(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count approved registrations: %w", err)
	}

	tags := s.tagsFor(ctx, participantID)
	now := s.clock.Now()
	var admissible []entity.Group
	for _, g := range groups {
		if GroupAdmissible(&g, counts[g.ID], tags, s.knownTags, now, showAll) {
			admissible = append(admissible, g)
		}
	}
	return admissible, nil
}

func (s *ActivityService) AdmissibleWorkshops(ctx context.Context, participantID string, showAll bool) ([]entity.Workshop, error) {
	workshops, err := s.workshopRepo.GetByStatus(ctx, entity.ActivityStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("get open workshops: %w", err)
	}

	ids := make([]string, len(workshops))
	for i, w := range workshops {
		ids[i] = w.ID
	}
	counts, err := s.workshopRegRepo.CountByWorkshop(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count workshop registrations: %w", err)
	}

	tags := s.tagsFor(ctx, participantID)
	now := s.clock.Now()
	var admissible []entity.Workshop
	for _, w := range workshops {
		if WorkshopAdmissible(&w, counts[w.ID], tags, s.knownTags, now, showAll) {
			admissible = append(admissible, w)
		}
	}
	return admissible, nil
}

func (s *ActivityService) tagsFor(ctx context.Context, participantID string) []string {
	if participantID == "" {
		return nil
	}
	participant, err := s.participantRepo.Get(ctx, participantID)
	if err != nil {
		return nil
	}
	return participant.CommunityStatuses
}

func validateMeetingTime(hhmm string) error {
	if hhmm == "" {
		return nil // drafts may be saved without a time
	}
	if !validator.MeetingTime(hhmm) {
		return fmt.Errorf("meeting time %q: %w", hhmm, ErrValidationFailed)
	}
	return nil
}
