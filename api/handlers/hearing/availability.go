package hearing

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barangayph/barangay-records-api/models"
)

// DayState describes how a calendar day should be rendered by a date picker
type DayState string

// Day states. Today is shown but never selectable for same-day booking.
const (
	DayPast        DayState = "past"
	DayToday       DayState = "today"
	DaySelectable  DayState = "selectable"
	DayUnavailable DayState = "unavailable"
)

const dayKeyFormat = "2006-01-02"

// Index maps the days of the current window onto the summon date ids the
// office published for them. Selecting a day yields the id used to fetch
// that day's time slots; no slot data is held here (slots load lazily).
type Index struct {
	window Window
	today  time.Time
	ids    map[string]primitive.ObjectID
}

// BuildIndex restricts the office's date catalog to the given window. Catalog
// entries outside the window are dropped entirely.
func BuildIndex(window Window, today time.Time, dates []models.SummonDate) Index {
	ids := make(map[string]primitive.ObjectID, len(dates))
	for _, d := range dates {
		day := d.Details.Date.Time()
		if window.Contains(day) {
			ids[day.Format(dayKeyFormat)] = d.ID
		}
	}
	return Index{window: window, today: dateOnly(today), ids: ids}
}

// Window returns the window the index was built against
func (ix Index) Window() Window {
	return ix.window
}

// IDFor returns the summon date id published for the given day
func (ix Index) IDFor(d time.Time) (primitive.ObjectID, bool) {
	id, ok := ix.ids[dateOnly(d).Format(dayKeyFormat)]
	return id, ok
}

// StateFor classifies a day for rendering
func (ix Index) StateFor(d time.Time) DayState {
	day := dateOnly(d)
	switch {
	case day.Before(ix.today):
		return DayPast
	case day.Equal(ix.today):
		return DayToday
	case ix.Selectable(day):
		return DaySelectable
	default:
		return DayUnavailable
	}
}

// Selectable reports whether a booking may target the given day: it must lie
// inside the window, be strictly after today, and have a published id.
func (ix Index) Selectable(d time.Time) bool {
	day := dateOnly(d)
	if !ix.window.Contains(day) || !day.After(ix.today) {
		return false
	}
	_, ok := ix.ids[day.Format(dayKeyFormat)]
	return ok
}
