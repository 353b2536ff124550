package hearing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barangayph/barangay-records-api/api/handlers/hearing"
	"github.com/barangayph/barangay-records-api/models"
)

func summonDate(id primitive.ObjectID, d time.Time) models.SummonDate {
	return models.SummonDate{
		ID: id,
		Details: models.SummonDateDetails{
			Date: primitive.NewDateTimeFromTime(d),
		},
	}
}

func TestBuildIndexDropsDatesOutsideWindow(t *testing.T) {
	today := day(2025, time.July, 1)
	w := hearing.CurrentQuarter(today)

	inQuarter := primitive.NewObjectID()
	ix := hearing.BuildIndex(w, today, []models.SummonDate{
		summonDate(inQuarter, day(2025, time.July, 15)),
		summonDate(primitive.NewObjectID(), day(2025, time.October, 2)),
		summonDate(primitive.NewObjectID(), day(2025, time.June, 20)),
	})

	id, ok := ix.IDFor(day(2025, time.July, 15))
	assert.True(t, ok)
	assert.Equal(t, inQuarter, id)

	_, ok = ix.IDFor(day(2025, time.October, 2))
	assert.False(t, ok)
	_, ok = ix.IDFor(day(2025, time.June, 20))
	assert.False(t, ok)
}

// a day is selectable iff it is inside the quarter, after today, and published
func TestSelectable(t *testing.T) {
	today := day(2025, time.July, 1)
	w := hearing.CurrentQuarter(today)
	ix := hearing.BuildIndex(w, today, []models.SummonDate{
		summonDate(primitive.NewObjectID(), day(2025, time.July, 15)),
		summonDate(primitive.NewObjectID(), day(2025, time.July, 1)),
	})

	assert.True(t, ix.Selectable(day(2025, time.July, 15)))
	// published for today, but same-day booking is not allowed
	assert.False(t, ix.Selectable(day(2025, time.July, 1)))
	// in quarter but not published
	assert.False(t, ix.Selectable(day(2025, time.August, 5)))
	// outside the quarter entirely
	assert.False(t, ix.Selectable(day(2025, time.October, 15)))
	// past
	assert.False(t, ix.Selectable(day(2025, time.June, 30)))
}

func TestStateFor(t *testing.T) {
	today := day(2025, time.July, 10)
	w := hearing.CurrentQuarter(today)
	ix := hearing.BuildIndex(w, today, []models.SummonDate{
		summonDate(primitive.NewObjectID(), day(2025, time.July, 20)),
	})

	assert.Equal(t, hearing.DayPast, ix.StateFor(day(2025, time.July, 5)))
	assert.Equal(t, hearing.DayToday, ix.StateFor(day(2025, time.July, 10)))
	assert.Equal(t, hearing.DaySelectable, ix.StateFor(day(2025, time.July, 20)))
	assert.Equal(t, hearing.DayUnavailable, ix.StateFor(day(2025, time.July, 21)))
	assert.Equal(t, hearing.DayUnavailable, ix.StateFor(day(2025, time.November, 1)))
}

func TestStateForIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2025, time.July, 10, 17, 45, 0, 0, time.UTC)
	w := hearing.CurrentQuarter(today)
	ix := hearing.BuildIndex(w, today, []models.SummonDate{
		summonDate(primitive.NewObjectID(), time.Date(2025, time.July, 20, 9, 0, 0, 0, time.UTC)),
	})

	assert.True(t, ix.Selectable(time.Date(2025, time.July, 20, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, hearing.DayToday, ix.StateFor(time.Date(2025, time.July, 10, 0, 1, 0, 0, time.UTC)))
}
