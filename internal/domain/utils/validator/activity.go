package validator

import (
	"time"
	"unicode/utf8"
)

func ActivityTitle(title string) bool {
	return utf8.RuneCountInString(title) >= 2 && utf8.RuneCountInString(title) <= 80
}

func ActivityDescription(description string) bool {
	return utf8.RuneCountInString(description) <= 1000
}

// MeetingTime accepts only zero-padded "HH:MM" (stored seconds are ignored).
// Dashboard ordering compares these strings lexicographically, so unpadded
// input like "9:30" must be rejected, not parsed leniently.
func MeetingTime(hhmm string) bool {
	if len(hhmm) < 5 {
		return false
	}
	_, err := time.Parse("15:04", hhmm[:5])
	return err == nil
}

func OccurrenceCount(n int) bool {
	return n >= 1 && n <= 52
}

func MaxParticipants(n int) bool {
	return n >= 1 && n <= 500
}
