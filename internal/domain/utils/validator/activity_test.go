package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivityTitle(t *testing.T) {
	assert.True(t, ActivityTitle("חוג יצירה"))
	assert.True(t, ActivityTitle("אב"))
	assert.False(t, ActivityTitle("א"))
	assert.False(t, ActivityTitle(""))
	assert.False(t, ActivityTitle(strings.Repeat("א", 81)))
}

func TestMeetingTime(t *testing.T) {
	assert.True(t, MeetingTime("18:30"))
	assert.True(t, MeetingTime("18:30:00"), "stored seconds are clipped before parsing")
	assert.True(t, MeetingTime("00:00"))
	assert.False(t, MeetingTime(""))
	assert.False(t, MeetingTime("25:00"))
	assert.False(t, MeetingTime("9:30"), "unpadded hours break the lexicographic dashboard sort")
	assert.False(t, MeetingTime("9:30:00"))
	assert.False(t, MeetingTime("9:3"))
	assert.False(t, MeetingTime("ברבע לשש"))
}

func TestOccurrenceCount(t *testing.T) {
	assert.True(t, OccurrenceCount(1))
	assert.True(t, OccurrenceCount(52))
	assert.False(t, OccurrenceCount(0))
	assert.False(t, OccurrenceCount(53))
}

func TestMaxParticipants(t *testing.T) {
	assert.True(t, MaxParticipants(1))
	assert.True(t, MaxParticipants(500))
	assert.False(t, MaxParticipants(0))
	assert.False(t, MaxParticipants(501))
}
