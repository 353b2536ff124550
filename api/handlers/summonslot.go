package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barangayph/barangay-records-api/api"
	"github.com/barangayph/barangay-records-api/config"
	"github.com/barangayph/barangay-records-api/databases"
	"github.com/barangayph/barangay-records-api/models"
)

// SummonTimeSlot exported for testing purposes
type SummonTimeSlot struct {
	DB  databases.SummonTimeSlotDatabase
	DDB databases.SummonDateDatabase
	Now func() time.Time
}

// TimeSlotsBySummonDateHandler returns the time slots of one summon date.
// Slots are only fetched once a day is selected; the calendar itself carries
// no slot data.
func (s SummonTimeSlot) TimeSlotsBySummonDateHandler(w http.ResponseWriter, r *http.Request) {
	dateID := mux.Vars(r)["date_id"]

	dID, err := primitive.ObjectIDFromHex(dateID)
	if err != nil {
		config.ErrorStatus("invalid summon date ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := s.DDB.FindOne(ctx, bson.M{"_id": dID}); err != nil {
		config.ErrorStatus("failed to find summon date", http.StatusNotFound, w, err)
		return
	}

	slots, err := s.DB.Find(ctx, bson.M{"summonTimeSlot.summonDateID": dateID})
	if err != nil {
		config.ErrorStatus("failed to get time slots", http.StatusInternalServerError, w, err)
		return
	}
	if len(slots) == 0 {
		slots = []models.SummonTimeSlot{}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":  slots,
		"count": len(slots),
	})
}

// CreateTimeSlotHandler adds a time slot to a summon date
func (s SummonTimeSlot) CreateTimeSlotHandler(w http.ResponseWriter, r *http.Request) {
	dateID := mux.Vars(r)["date_id"]

	dID, err := primitive.ObjectIDFromHex(dateID)
	if err != nil {
		config.ErrorStatus("invalid summon date ID", http.StatusBadRequest, w, err)
		return
	}

	var body struct {
		StartTime string `json:"startTime"` // e.g. "09:00 AM"
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if body.StartTime == "" {
		config.ErrorStatus("startTime is required", http.StatusBadRequest, w,
			fmt.Errorf("a time slot needs a start time"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := s.DDB.FindOne(ctx, bson.M{"_id": dID}); err != nil {
		config.ErrorStatus("failed to find summon date", http.StatusNotFound, w, err)
		return
	}

	// one slot per start time and date
	if existing, err := s.DB.FindOne(ctx, bson.M{
		"summonTimeSlot.summonDateID": dateID,
		"summonTimeSlot.startTime":    body.StartTime,
	}); err == nil && existing != nil {
		config.ErrorStatus("time slot already exists", http.StatusConflict, w,
			fmt.Errorf("slot at %s already published for this date", body.StartTime))
		return
	}

	now := primitive.NewDateTimeFromTime(s.Now())
	slot := models.SummonTimeSlot{
		ID: primitive.NewObjectID(),
		Details: models.SummonTimeSlotDetails{
			SummonDateID: dateID,
			StartTime:    body.StartTime,
			Booked:       false,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	if _, err := s.DB.InsertOne(ctx, slot); err != nil {
		config.ErrorStatus("failed to create time slot", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Time slot created successfully",
		"id":      slot.ID.Hex(),
	})
}
