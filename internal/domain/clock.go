package domain

import "time"

// The operating day does not flip at midnight: a driver who finishes a haul at
// 02:30 still counts it toward the previous day's statistics. The boundary is
// fixed at 04:00.

// OperatingDay maps a calendar date plus a "HH:MM" clock string to the
// operating day the event belongs to. An hour of 4 or later keeps the date;
// anything earlier belongs to the previous calendar day (AddDate handles
// month and year rollover, including leap days).
//
// Pure function: an empty or malformed clock leaves the date unchanged.
func OperatingDay(date time.Time, clock string) time.Time {
	date = truncateToDay(date)
	h, _, ok := parseClock(clock)
	if !ok || h >= 4 {
		return date
	}
	return date.AddDate(0, 0, -1)
}

// WeekOfMonth returns the 1-based week number of date within its month, where
// weeks run Sunday through Saturday and week 1 begins on the 1st:
// ceil((dayOfMonth + weekdayOfMonthStart) / 7).
func WeekOfMonth(date time.Time) int {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	return (date.Day() + int(first.Weekday()) + 6) / 7
}

// ValidClock reports whether clock is a well-formed "HH:MM" wall-clock string.
func ValidClock(clock string) bool {
	_, _, ok := parseClock(clock)
	return ok
}

// splitClock parses "HH:MM" into hour and minute, treating malformed input as
// midnight. Use parseClock when the caller must distinguish the two.
func splitClock(clock string) (hour, minute int) {
	hour, minute, _ = parseClock(clock)
	return hour, minute
}

// parseClock parses "HH:MM" (also tolerating "H:MM") into hour and minute.
func parseClock(clock string) (hour, minute int, ok bool) {
	i := 0
	for ; i < len(clock) && clock[i] >= '0' && clock[i] <= '9'; i++ {
		hour = hour*10 + int(clock[i]-'0')
	}
	if i == 0 || i > 2 || i >= len(clock) || clock[i] != ':' {
		return 0, 0, false
	}
	digits := 0
	j := i + 1
	for ; j < len(clock) && clock[j] >= '0' && clock[j] <= '9'; j++ {
		minute = minute*10 + int(clock[j]-'0')
		digits++
	}
	// The minute digits must end the string: "12:34x" is not a clock.
	if digits != 2 || j != len(clock) || hour > 23 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// truncateToDay drops the time-of-day portion.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
