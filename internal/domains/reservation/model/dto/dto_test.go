package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cowork/internal/domains/reservation/model/dto"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "same day counts as one",
			start: day(2026, time.March, 10),
			end:   day(2026, time.March, 10),
			want:  1,
		},
		{
			name:  "next day counts as two",
			start: day(2026, time.March, 10),
			end:   day(2026, time.March, 11),
			want:  2,
		},
		{
			name:  "forty day stay",
			start: day(2026, time.March, 1),
			end:   day(2026, time.April, 9),
			want:  40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dto.InclusiveDays(tt.start, tt.end))
		})
	}
}

// Dates parsed in a timezone with daylight saving have 23-hour days around
// the spring transition. The count must stay a calendar-day count.
func TestInclusiveDaysAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	dayIn := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "next day across spring forward counts as two",
			start: dayIn(2026, time.March, 8),
			end:   dayIn(2026, time.March, 9),
			want:  2,
		},
		{
			name:  "28 day stay spanning spring forward keeps its length",
			start: dayIn(2026, time.March, 1),
			end:   dayIn(2026, time.March, 28),
			want:  28,
		},
		{
			name:  "next day across fall back counts as two",
			start: dayIn(2026, time.October, 31),
			end:   dayIn(2026, time.November, 1),
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dto.InclusiveDays(tt.start, tt.end))
		})
	}
}

// A monthly stay booked across the DST transition must still reach the
// discount threshold.
func TestTotalPriceAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, loc)
	end := time.Date(2026, time.March, 28, 0, 0, 0, 0, loc)

	days := dto.InclusiveDays(start, end)

	assert.Equal(t, 28, days)
	assert.Equal(t, int64(25200), dto.TotalPrice(days, 1000, 10))
}

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name            string
		days            int
		pricePerDay     int64
		monthlyDiscount int
		want            int64
	}{
		{
			name:        "short stay has no discount",
			days:        5,
			pricePerDay: 1000,
			want:        5000,
		},
		{
			name:            "27 days is below the monthly threshold",
			days:            27,
			pricePerDay:     1000,
			monthlyDiscount: 10,
			want:            27000,
		},
		{
			name:            "28 days gets the monthly discount",
			days:            28,
			pricePerDay:     1000,
			monthlyDiscount: 10,
			want:            25200,
		},
		{
			name:            "40 days at 10 percent",
			days:            40,
			pricePerDay:     1000,
			monthlyDiscount: 10,
			want:            36000,
		},
		{
			name:            "discount truncates toward zero",
			days:            29,
			pricePerDay:     7,
			monthlyDiscount: 33,
			want:            137, // 203 - floor(203*33/100) = 203 - 66
		},
		{
			name:            "long stay with zero discount keeps full price",
			days:            30,
			pricePerDay:     1000,
			monthlyDiscount: 0,
			want:            30000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dto.TotalPrice(tt.days, tt.pricePerDay, tt.monthlyDiscount))
		})
	}
}
