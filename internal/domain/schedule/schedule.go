// Package schedule implements time-of-day and weekly working-hours logic for
// appointment booking. Times are fixed-width zero-padded "HH:MM" strings, so
// lexicographic comparison is equivalent to numeric comparison; ParseTimeOfDay
// is the only place a time enters the domain and it normalizes the padding.
package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ASAPSentinel is stored in place of start and end times for bookings that
// request immediate service. ASAP appointments carry no window and are
// excluded from conflict detection.
const ASAPSentinel = "ASAP"

var timeOfDayRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// TimeOfDay is a zero-padded "HH:MM" wall-clock time.
type TimeOfDay string

// ParseTimeOfDay validates an "HH:MM" string (hour 0-23, minute 0-59) and
// normalizes single-digit hours to two digits.
func ParseTimeOfDay(s string) (TimeOfDay, bool) {
	m := timeOfDayRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	hour, _ := strconv.Atoi(m[1])
	if hour < 10 {
		return TimeOfDay("0" + strconv.Itoa(hour) + ":" + m[2]), true
	}
	return TimeOfDay(m[1] + ":" + m[2]), true
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	hour, _ := strconv.Atoi(string(t[:2]))
	minute, _ := strconv.Atoi(string(t[3:]))
	return hour*60 + minute
}

// Overlaps reports whether the half-open windows [aStart, aEnd) and
// [bStart, bEnd) intersect: a start inside the other window, an end inside
// it, or full containment.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	if aStart >= bStart && aStart < bEnd {
		return true
	}
	if aEnd > bStart && aEnd <= bEnd {
		return true
	}
	return aStart <= bStart && aEnd >= bEnd
}

// DayHours is one weekly working-hours entry.
type DayHours struct {
	Day   string    `json:"day" db:"day"`
	Start TimeOfDay `json:"startTime" db:"start_time"`
	End   TimeOfDay `json:"endTime" db:"end_time"`
}

// WeeklyHours is an engineer's working-hours table keyed by weekday name.
type WeeklyHours []DayHours

// WindowFor returns the working-hours entry for a weekday ("Monday"...),
// or false when the engineer takes that day off.
func (w WeeklyHours) WindowFor(day string) (DayHours, bool) {
	for _, entry := range w {
		if entry.Day == day {
			return entry, true
		}
	}
	return DayHours{}, false
}

// Contains reports whether [start, end) sits entirely inside the entry's
// working hours. Partial overlap is a rejection, not a clip.
func (d DayHours) Contains(start, end TimeOfDay) bool {
	return start >= d.Start && end <= d.End
}

// DayName returns the weekday name for a date, matching the keys used in
// WeeklyHours.
func DayName(date time.Time) string {
	return date.Weekday().String()
}
