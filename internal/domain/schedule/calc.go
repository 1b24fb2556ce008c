// Package schedule holds the pure calendar arithmetic for recurring groups
// and one-off workshops. All day comparisons happen at UTC midnight: clients
// in different timezones must agree on what "today" means, so local-midnight
// truncation is never used here.
package schedule

import (
	"fmt"
	"time"
)

// NotYetScheduled is returned by the format helpers when the activity is a
// draft that has no date or meeting time yet.
const NotYetScheduled = "טרם נקבע מועד"

var weekdayNames = [7]string{
	"ראשון",
	"שני",
	"שלישי",
	"רביעי",
	"חמישי",
	"שישי",
	"שבת",
}

// DayUTC truncates t to UTC midnight.
func DayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// MeetingWeekday returns the weekday of the first occurrence (Sunday=0), or
// -1 when the start date is not set. The stored meeting weekday is always
// derived from the start date, never edited on its own.
func MeetingWeekday(startDate time.Time) int {
	if startDate.IsZero() {
		return -1
	}
	return int(startDate.UTC().Weekday())
}

// GroupActiveOnDay reports whether day falls inside the group's occurrence
// window [startDate, startDate+7*occurrenceCount), compared at day
// granularity. Incomplete drafts (zero start date, non-positive occurrence
// count) are never active.
func GroupActiveOnDay(startDate time.Time, occurrenceCount int, day time.Time) bool {
	if startDate.IsZero() || occurrenceCount <= 0 {
		return false
	}
	start := DayUTC(startDate)
	end := start.AddDate(0, 0, 7*occurrenceCount)
	d := DayUTC(day)
	return !d.Before(start) && d.Before(end)
}

// GroupEnded reports whether the group's entire run has elapsed: ref's day is
// strictly after startDate+7*occurrenceCount days. A run that ends exactly on
// ref's day has not ended yet. Incomplete drafts never count as ended.
func GroupEnded(startDate time.Time, occurrenceCount int, ref time.Time) bool {
	if startDate.IsZero() || occurrenceCount <= 0 {
		return false
	}
	end := DayUTC(startDate).AddDate(0, 0, 7*occurrenceCount)
	return DayUTC(ref).After(end)
}

// WorkshopPassed reports whether the workshop's single occurrence instant
// (start date combined with the HH:MM meeting time, UTC) is behind ref.
// A workshop with no start date has not passed.
func WorkshopPassed(startDate time.Time, meetingTime string, ref time.Time) bool {
	if startDate.IsZero() {
		return false
	}
	at, err := CombineDateTime(startDate, meetingTime)
	if err != nil {
		// Unparseable time falls back to end of the start day.
		at = DayUTC(startDate).AddDate(0, 0, 1)
	}
	return ref.After(at)
}

// CombineDateTime anchors an HH:MM wall-clock string onto the given date, in
// UTC. Seconds in the stored value are discarded.
func CombineDateTime(date time.Time, hhmm string) (time.Time, error) {
	clipped := ClipHHMM(hhmm)
	parsed, err := time.Parse("15:04", clipped)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse meeting time %q: %w", hhmm, err)
	}
	day := DayUTC(date)
	return day.Add(time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute), nil
}

// ClipHHMM truncates a stored time value to HH:MM. Storage precision varies
// (some rows carry HH:MM:SS), display and sorting always use five characters.
func ClipHHMM(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

// OccurrenceDates lists the dates of all weekly meetings, first to last.
// Feeds the calendar export and the per-group meeting list.
func OccurrenceDates(startDate time.Time, occurrenceCount int) []time.Time {
	if startDate.IsZero() || occurrenceCount <= 0 {
		return nil
	}
	dates := make([]time.Time, occurrenceCount)
	start := DayUTC(startDate)
	for i := 0; i < occurrenceCount; i++ {
		dates[i] = start.AddDate(0, 0, 7*i)
	}
	return dates
}

// FormatWeekly renders a recurring group's schedule, e.g. "בימי ראשון בשעה 18:30".
func FormatWeekly(weekday int, meetingTime string) string {
	if weekday < 0 || weekday > 6 || meetingTime == "" {
		return NotYetScheduled
	}
	return fmt.Sprintf("בימי %s בשעה %s", weekdayNames[weekday], ClipHHMM(meetingTime))
}

// FormatWorkshop renders a one-off workshop's schedule, e.g. "ביום שלישי בשעה 10:00".
func FormatWorkshop(weekday int, meetingTime string) string {
	if weekday < 0 || weekday > 6 || meetingTime == "" {
		return NotYetScheduled
	}
	return fmt.Sprintf("ביום %s בשעה %s", weekdayNames[weekday], ClipHHMM(meetingTime))
}
