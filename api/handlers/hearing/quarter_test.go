package hearing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/barangayph/barangay-records-api/api/handlers/hearing"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrentQuarterBounds(t *testing.T) {
	tests := []struct {
		today time.Time
		start time.Time
		end   time.Time
	}{
		{day(2025, time.January, 1), day(2025, time.January, 1), day(2025, time.March, 31)},
		{day(2025, time.February, 14), day(2025, time.January, 1), day(2025, time.March, 31)},
		{day(2025, time.April, 1), day(2025, time.April, 1), day(2025, time.June, 30)},
		{day(2025, time.July, 1), day(2025, time.July, 1), day(2025, time.September, 30)},
		{day(2025, time.September, 30), day(2025, time.July, 1), day(2025, time.September, 30)},
		{day(2025, time.December, 31), day(2025, time.October, 1), day(2025, time.December, 31)},
		{day(2024, time.February, 29), day(2024, time.January, 1), day(2024, time.March, 31)},
	}

	for _, tc := range tests {
		w := hearing.CurrentQuarter(tc.today)
		assert.Equal(t, tc.start, w.Start, "today %s", tc.today)
		assert.Equal(t, tc.end, w.End, "today %s", tc.today)
	}
}

func TestCurrentQuarterIdempotentWithinADay(t *testing.T) {
	morning := time.Date(2025, time.July, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, time.July, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, hearing.CurrentQuarter(morning), hearing.CurrentQuarter(evening))
}

func TestCurrentQuarterReflectsBoundaryCrossing(t *testing.T) {
	before := hearing.CurrentQuarter(day(2025, time.March, 31))
	after := hearing.CurrentQuarter(day(2025, time.April, 1))
	assert.NotEqual(t, before, after)
	assert.Equal(t, day(2025, time.April, 1), after.Start)
}

func TestWindowContains(t *testing.T) {
	w := hearing.CurrentQuarter(day(2025, time.July, 1))
	assert.True(t, w.Contains(day(2025, time.July, 1)))
	assert.True(t, w.Contains(day(2025, time.July, 15)))
	assert.True(t, w.Contains(day(2025, time.September, 30)))
	assert.False(t, w.Contains(day(2025, time.June, 30)))
	assert.False(t, w.Contains(day(2025, time.October, 1)))
}
