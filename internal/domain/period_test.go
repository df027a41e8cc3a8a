package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday morning", time.Date(2025, 8, 4, 9, 30, 0, 0, loc), time.Date(2025, 8, 4, 0, 0, 0, 0, loc)},
		{"wednesday", time.Date(2025, 8, 6, 12, 0, 0, 0, loc), time.Date(2025, 8, 4, 0, 0, 0, 0, loc)},
		{"sunday late", time.Date(2025, 8, 10, 23, 59, 59, 0, loc), time.Date(2025, 8, 4, 0, 0, 0, 0, loc)},
		{"crosses month", time.Date(2025, 10, 2, 8, 0, 0, 0, loc), time.Date(2025, 9, 29, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.in)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
			assert.Equal(t, time.Monday, got.Weekday())
		})
	}
}

func TestMonthStart(t *testing.T) {
	in := time.Date(2025, 2, 28, 17, 45, 12, 99, time.UTC)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), MonthStart(in))
}

func TestDaysBefore(t *testing.T) {
	now := time.Date(2025, 8, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now.AddDate(0, 0, -3), DaysBefore(now, 3))
	assert.Equal(t, now.AddDate(0, 0, -DefaultUserWindowDays), DaysBefore(now, 0))
}

func TestTotalHours(t *testing.T) {
	assert.Equal(t, 0.0, TotalHours(nil))
	assert.Equal(t, 3.75, TotalHours([]Entry{{Hours: 2.5}, {Hours: 1.25}}))
}
