package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/rental-tracker/internal/models"
)

func TestCalculateEndDate(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{
			name:   "one month",
			start:  time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			name:   "end of january rolls over february in leap year",
			start:  time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "end of january rolls over february in common year",
			start:  time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			months: 1,
			want:   time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "year transition",
			start:  time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
			months: 3,
			want:   time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "twelve months",
			start:  time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			months: 12,
			want:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "zero months",
			start:  time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC),
			months: 0,
			want:   time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateEndDate(tt.start, tt.months)
			assert.True(t, tt.want.Equal(got), "CalculateEndDate(%v, %d) = %v, want %v",
				tt.start, tt.months, got, tt.want)
		})
	}
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{name: "exactly now", end: now, want: 0},
		{name: "one second ahead rounds up", end: now.Add(time.Second), want: 1},
		{name: "exactly one day", end: now.Add(24 * time.Hour), want: 1},
		{name: "one day and a minute", end: now.Add(24*time.Hour + time.Minute), want: 2},
		{name: "one second ago", end: now.Add(-time.Second), want: 0},
		{name: "one and a half days ago", end: now.Add(-36 * time.Hour), want: -1},
		{name: "thirty days", end: now.AddDate(0, 0, 30), want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysRemaining(tt.end, now))
		})
	}
}

func TestStatus_Boundaries(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}
	days := func(n int) time.Duration { return time.Duration(n) * 24 * time.Hour }

	tests := []struct {
		name      string
		end       *time.Time
		wantState string
		wantDays  int
	}{
		{name: "no end date", end: nil, wantState: models.SubscriptionExpired, wantDays: 0},
		{name: "one second ago", end: at(-time.Second), wantState: models.SubscriptionExpired, wantDays: 0},
		{name: "two days ago", end: at(-days(2)), wantState: models.SubscriptionExpired, wantDays: -2},
		{name: "exactly now", end: at(0), wantState: models.SubscriptionCritical, wantDays: 0},
		{name: "exactly 7 days", end: at(days(7)), wantState: models.SubscriptionCritical, wantDays: 7},
		{name: "exactly 8 days", end: at(days(8)), wantState: models.SubscriptionWarning, wantDays: 8},
		{name: "exactly 30 days", end: at(days(30)), wantState: models.SubscriptionWarning, wantDays: 30},
		{name: "exactly 31 days", end: at(days(31)), wantState: models.SubscriptionActive, wantDays: 31},
		{name: "a year ahead", end: at(days(365)), wantState: models.SubscriptionActive, wantDays: 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Status(tt.end, now)
			assert.Equal(t, tt.wantState, got.State)
			assert.Equal(t, tt.wantDays, got.DaysRemaining)
			assert.NotEmpty(t, got.Message)
			assert.NotEmpty(t, got.Color)
		})
	}
}

func TestStatus_ExpiredByWholeDay(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	end := now.Add(-24*time.Hour - time.Second)

	got := Status(&end, now)
	assert.Equal(t, models.SubscriptionExpired, got.State)
	assert.Equal(t, -1, got.DaysRemaining)
	assert.Equal(t, "subscription expired", got.Message)
}

func TestStatus_Messages(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	oneDay := now.AddDate(0, 0, 1)
	tenDays := now.AddDate(0, 0, 10)

	assert.Equal(t, "expires in 1 day", Status(&oneDay, now).Message)
	assert.Equal(t, "10 days remaining", Status(&tenDays, now).Message)
	assert.Equal(t, "no subscription", Status(nil, now).Message)
}

func TestIsActive(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)
	same := now

	assert.False(t, IsActive(nil, now))
	assert.False(t, IsActive(&same, now), "expiry instant itself is not active")
	assert.False(t, IsActive(&past, now))
	assert.True(t, IsActive(&future, now))
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	same := now

	assert.False(t, IsExpired(nil, now), "missing end date does not block login")
	assert.True(t, IsExpired(&same, now))
	assert.True(t, IsExpired(&past, now))
	assert.False(t, IsExpired(&future, now))
}

func TestDurationOptions(t *testing.T) {
	opts := DurationOptions()
	months := make([]int, 0, len(opts))
	for _, o := range opts {
		months = append(months, o.Months)
	}
	assert.Equal(t, []int{1, 3, 6, 12}, months)
}
