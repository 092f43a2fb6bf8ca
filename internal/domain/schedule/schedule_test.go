package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in    string
		want  TimeOfDay
		valid bool
	}{
		{"09:00", "09:00", true},
		{"9:00", "09:00", true},
		{"23:59", "23:59", true},
		{"0:05", "00:05", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"noon", "", false},
		{"", "", false},
		{"12:5", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseTimeOfDay(tt.in)
		assert.Equal(t, tt.valid, ok, "input %q", tt.in)
		if tt.valid {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestTimeOfDay_Minutes(t *testing.T) {
	tod, ok := ParseTimeOfDay("13:30")
	require.True(t, ok)
	assert.Equal(t, 13*60+30, tod.Minutes())
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     TimeOfDay
		want                           bool
	}{
		{"candidate starts inside existing", "10:30", "11:30", "10:00", "11:00", true},
		{"candidate ends inside existing", "09:30", "10:30", "10:00", "11:00", true},
		{"candidate contains existing", "09:00", "12:00", "10:00", "11:00", true},
		{"identical windows", "10:00", "11:00", "10:00", "11:00", true},
		{"back to back, candidate after", "11:00", "12:00", "10:00", "11:00", false},
		{"back to back, candidate before", "09:00", "10:00", "10:00", "11:00", false},
		{"disjoint", "14:00", "15:00", "10:00", "11:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// overlap is symmetric
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestWeeklyHours_WindowFor(t *testing.T) {
	hours := WeeklyHours{
		{Day: "Monday", Start: "09:00", End: "17:00"},
		{Day: "Wednesday", Start: "10:00", End: "16:00"},
	}

	entry, ok := hours.WindowFor("Monday")
	require.True(t, ok)
	assert.Equal(t, TimeOfDay("09:00"), entry.Start)

	_, ok = hours.WindowFor("Sunday")
	assert.False(t, ok)
}

func TestDayHours_Contains(t *testing.T) {
	entry := DayHours{Day: "Monday", Start: "09:00", End: "17:00"}

	assert.True(t, entry.Contains("10:00", "11:00"))
	assert.True(t, entry.Contains("09:00", "17:00"))
	assert.False(t, entry.Contains("08:00", "09:00"))
	assert.False(t, entry.Contains("08:30", "10:00"))
	assert.False(t, entry.Contains("16:00", "17:30"))
}

func TestDayName(t *testing.T) {
	// 2026-01-05 is a Monday
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Monday", DayName(date))
}
