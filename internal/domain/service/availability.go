package service

import (
	"time"

	"github.com/adamatova/community-api/internal/domain/entity"
	"github.com/adamatova/community-api/internal/domain/schedule"
)

// Bucket is the admin-view classification of an activity at a moment in time.
type Bucket string

const (
	// BucketOpen: registration still possible, or the item is a draft (a
	// draft has no meaningful registration window yet, so it always lands
	// here).
	BucketOpen Bucket = "open"
	// BucketActive: registration closed but the meeting run is still going.
	// Groups only.
	BucketActive Bucket = "active"
	// BucketEnded: explicitly ended, or registration closed and the whole
	// run elapsed.
	BucketEnded Bucket = "ended"
	// BucketPast is the workshop counterpart of Ended.
	BucketPast Bucket = "past"
)

// IsOpenForRegistration reports whether new signups are accepted: the
// activity is published and the registration deadline has not passed. Drafts
// and ended activities are never open.
func IsOpenForRegistration(status entity.ActivityStatus, registrationEnd, now time.Time) bool {
	return status == entity.ActivityStatusOpen && registrationEnd.After(now)
}

// AudienceMatches reports whether the activity's target tags admit a
// participant with the given tags. An empty target set and a target set
// covering every known tag both mean "everyone". showAll bypasses the match.
func AudienceMatches(target, participantTags, knownTags []string, showAll bool) bool {
	if showAll {
		return true
	}
	if len(target) == 0 {
		return true
	}
	if len(knownTags) > 0 && tagSet(target).containsAll(knownTags) {
		return true
	}
	for _, t := range participantTags {
		if tagSet(target).contains(t) {
			return true
		}
	}
	return false
}

type tagSet []string

func (s tagSet) contains(tag string) bool {
	for _, t := range s {
		if t == tag {
			return true
		}
	}
	return false
}

func (s tagSet) containsAll(tags []string) bool {
	for _, t := range tags {
		if !s.contains(t) {
			return false
		}
	}
	return true
}

// GroupAdmissible decides whether the participant may still join the group:
// open for registration, run not ended, capacity left, audience match.
func GroupAdmissible(group *entity.Group, approvedCount int64, participantTags, knownTags []string, now time.Time, showAll bool) bool {
	if !IsOpenForRegistration(group.Status, group.RegistrationEndDate, now) {
		return false
	}
	if schedule.GroupEnded(group.StartDate, group.OccurrenceCount, now) {
		return false
	}
	if approvedCount >= int64(group.MaxParticipants) {
		return false
	}
	return AudienceMatches(group.TargetStatuses, participantTags, knownTags, showAll)
}

// WorkshopAdmissible mirrors GroupAdmissible; workshops count every
// registration against capacity since there is no approval gate.
func WorkshopAdmissible(workshop *entity.Workshop, registeredCount int64, participantTags, knownTags []string, now time.Time, showAll bool) bool {
	if !IsOpenForRegistration(workshop.Status, workshop.RegistrationEndDate, now) {
		return false
	}
	if schedule.WorkshopPassed(workshop.StartDate, workshop.MeetingTime, now) {
		return false
	}
	if registeredCount >= int64(workshop.MaxParticipants) {
		return false
	}
	return AudienceMatches(workshop.TargetStatuses, participantTags, knownTags, showAll)
}

// ClassifyGroup puts a group in exactly one of Open, Active, Ended.
// The three buckets partition all groups for any now.
func ClassifyGroup(group *entity.Group, now time.Time) Bucket {
	if group.Status == entity.ActivityStatusDraft {
		return BucketOpen
	}
	if group.Status == entity.ActivityStatusEnded {
		return BucketEnded
	}
	if group.RegistrationEndDate.After(now) {
		return BucketOpen
	}
	if !schedule.GroupEnded(group.StartDate, group.OccurrenceCount, now) {
		return BucketActive
	}
	return BucketEnded
}

// ClassifyWorkshop puts a workshop in Open or Past, keyed on the combined
// date+time instant. Drafts are always Open.
func ClassifyWorkshop(workshop *entity.Workshop, now time.Time) Bucket {
	if workshop.Status == entity.ActivityStatusDraft {
		return BucketOpen
	}
	if workshop.Status == entity.ActivityStatusEnded {
		return BucketPast
	}
	if schedule.WorkshopPassed(workshop.StartDate, workshop.MeetingTime, now) {
		return BucketPast
	}
	return BucketOpen
}
