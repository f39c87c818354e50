package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ywjeong/haulbook/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestOperatingDay_Boundary verifies the 04:00 cutover: 03:59 belongs to the
// previous day, 04:00 starts a new one.
func TestOperatingDay_Boundary(t *testing.T) {
	tests := []struct {
		name  string
		date  time.Time
		clock string
		want  time.Time
	}{
		{"mid-afternoon keeps date", date(2024, 6, 15), "14:30", date(2024, 6, 15)},
		{"exactly 04:00 keeps date", date(2024, 6, 15), "04:00", date(2024, 6, 15)},
		{"03:59 rolls back", date(2024, 6, 15), "03:59", date(2024, 6, 14)},
		{"midnight rolls back", date(2024, 6, 15), "00:00", date(2024, 6, 14)},
		{"month boundary", date(2024, 6, 1), "02:00", date(2024, 5, 31)},
		{"leap-year February", date(2024, 3, 1), "03:59", date(2024, 2, 29)},
		{"non-leap February", date(2023, 3, 1), "03:59", date(2023, 2, 28)},
		{"year boundary", date(2024, 1, 1), "01:30", date(2023, 12, 31)},
		{"empty clock keeps date", date(2024, 6, 15), "", date(2024, 6, 15)},
		{"malformed clock keeps date", date(2024, 6, 15), "2am", date(2024, 6, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.OperatingDay(tt.date, tt.clock))
		})
	}
}

// TestOperatingDay_DropsTimeOfDay verifies the result is always a pure date.
func TestOperatingDay_DropsTimeOfDay(t *testing.T) {
	in := time.Date(2024, 6, 15, 13, 45, 12, 999, time.UTC)
	got := domain.OperatingDay(in, "14:30")
	assert.Equal(t, date(2024, 6, 15), got)
}

// TestWeekOfMonth pins the Sunday-start week numbering.
func TestWeekOfMonth(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		// June 2024 starts on a Saturday: the 1st sits alone in week 1.
		{"first day", date(2024, 6, 1), 1},
		{"first Sunday starts week 2", date(2024, 6, 2), 2},
		{"mid-month", date(2024, 6, 15), 3},
		{"last day", date(2024, 6, 30), 6},
		// September 2024 starts on a Sunday: a clean 7-day week 1.
		{"Sunday-start month day 7", date(2024, 9, 7), 1},
		{"Sunday-start month day 8", date(2024, 9, 8), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.WeekOfMonth(tt.date))
		})
	}
}

func TestValidClock(t *testing.T) {
	valid := []string{"00:00", "04:00", "23:59", "9:05"}
	for _, c := range valid {
		assert.True(t, domain.ValidClock(c), c)
	}
	invalid := []string{"", "24:00", "12:60", "12:5", "12:345", "123:00", "ab:cd", "12-30", "12:", "12:34x", "12:34 "}
	for _, c := range invalid {
		assert.False(t, domain.ValidClock(c), c)
	}
}
