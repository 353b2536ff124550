package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barangayph/barangay-records-api/api"
	"github.com/barangayph/barangay-records-api/api/handlers/hearing"
	"github.com/barangayph/barangay-records-api/config"
	"github.com/barangayph/barangay-records-api/databases"
	"github.com/barangayph/barangay-records-api/models"
)

// SummonDate exported for testing purposes
type SummonDate struct {
	DB  databases.SummonDateDatabase
	Now func() time.Time
}

// summonDay is one rendered day of the booking calendar
type summonDay struct {
	Date  string           `json:"date"`
	State hearing.DayState `json:"state"`
	ID    string           `json:"id,omitempty"`
}

// AvailableSummonDatesHandler returns the booking calendar for the current
// quarter: the window bounds and every published day classified for rendering.
// The window is re-derived from the clock on every call, so a session left
// open across a quarter boundary gets the new quarter on its next load.
func (s SummonDate) AvailableSummonDatesHandler(w http.ResponseWriter, r *http.Request) {
	today := s.Now()
	window := hearing.CurrentQuarter(today)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dates, err := s.DB.Find(ctx, bson.M{
		"summonDate.date": bson.M{
			"$gte": primitive.NewDateTimeFromTime(window.Start),
			"$lte": primitive.NewDateTimeFromTime(window.End.Add(24*time.Hour - time.Nanosecond)),
		},
	})
	if err != nil {
		config.ErrorStatus("failed to get summon dates", http.StatusInternalServerError, w, err)
		return
	}

	index := hearing.BuildIndex(window, today, dates)

	days := []summonDay{}
	for _, d := range dates {
		day := d.Details.Date.Time()
		if !window.Contains(day) {
			continue
		}
		entry := summonDay{
			Date:  day.Format("2006-01-02"),
			State: index.StateFor(day),
		}
		if id, ok := index.IDFor(day); ok {
			entry.ID = id.Hex()
		}
		days = append(days, entry)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"window": index.Window(),
		"today":  today.Format("2006-01-02"),
		"days":   days,
	})
}

// CreateSummonDateHandler publishes a calendar day for hearings. A day already
// published for the barangay is rejected so slots never split across two
// summon date records.
func (s SummonDate) CreateSummonDateHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date       string `json:"date"` // "2006-01-02"
		BarangayID string `json:"barangayID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	day, err := time.Parse("2006-01-02", body.Date)
	if err != nil {
		config.ErrorStatus("invalid date", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	count, err := s.DB.CountDocuments(ctx, bson.M{
		"summonDate.date":       primitive.NewDateTimeFromTime(day),
		"summonDate.barangayID": body.BarangayID,
	})
	if err != nil {
		config.ErrorStatus("failed to check existing summon dates", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("summon date already exists", http.StatusConflict, w,
			fmt.Errorf("date %s is already published", body.Date))
		return
	}

	summonDate := models.SummonDate{
		ID: primitive.NewObjectID(),
		Details: models.SummonDateDetails{
			Date:       primitive.NewDateTimeFromTime(day),
			BarangayID: body.BarangayID,
			CreatedAt:  primitive.NewDateTimeFromTime(s.Now()),
		},
	}
	if _, err := s.DB.InsertOne(ctx, summonDate); err != nil {
		config.ErrorStatus("failed to create summon date", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Summon date created successfully",
		"id":      summonDate.ID.Hex(),
	})
}
