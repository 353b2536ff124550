package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/barangayph/barangay-records-api/api"
	"github.com/barangayph/barangay-records-api/api/handlers/hearing"
	"github.com/barangayph/barangay-records-api/config"
	"github.com/barangayph/barangay-records-api/databases"
	"github.com/barangayph/barangay-records-api/models"
)

// HearingSchedule exported for testing purposes
type HearingSchedule struct {
	DB   databases.HearingScheduleDatabase
	SCDB databases.SummonCaseDatabase
	DDB  databases.SummonDateDatabase
	STDB databases.SummonTimeSlotDatabase
	Hub  *api.Hub
	Now  func() time.Time
}

// SummonCaseByIDHandler returns a summon case by ID
func (h HearingSchedule) SummonCaseByIDHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("invalid summon case ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := h.SCDB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to find summon case", http.StatusNotFound, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dbResp)
}

// SummonCaseByComplaintHandler returns the summon case raised for a complaint
func (h HearingSchedule) SummonCaseByComplaintHandler(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["complaint_id"]

	if _, err := primitive.ObjectIDFromHex(complaintID); err != nil {
		config.ErrorStatus("invalid complaint ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := h.SCDB.FindOne(ctx, bson.M{"summonCase.complaintID": complaintID})
	if err != nil {
		config.ErrorStatus("failed to find summon case", http.StatusNotFound, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dbResp)
}

// HearingsByCaseHandler returns a case's hearing history plus the level the
// next hearing would be assigned
func (h HearingSchedule) HearingsByCaseHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	if _, err := primitive.ObjectIDFromHex(caseID); err != nil {
		config.ErrorStatus("invalid summon case ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	schedules, err := h.DB.Find(ctx, bson.M{"hearingSchedule.summonCaseID": caseID})
	if err != nil {
		config.ErrorStatus("failed to get hearing schedules", http.StatusNotFound, w, err)
		return
	}
	if len(schedules) == 0 {
		schedules = []models.HearingSchedule{}
	}

	response := map[string]interface{}{
		"data":  schedules,
		"count": len(schedules),
	}
	if len(schedules) < models.MaxHearingSchedules {
		response["nextLevel"] = hearing.LevelFor(len(schedules))
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// BookHearingHandler books the next hearing of a case into a time slot. The
// hearing level is assigned here from the case's schedule count, never taken
// from the request. Writes run as a forward sequence with compensation: the
// slot flip is the commit point, and if it loses the race the schedule insert
// and case status change are rolled back.
func (h HearingSchedule) BookHearingHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		config.ErrorStatus("invalid summon case ID", http.StatusBadRequest, w, err)
		return
	}

	var booking struct {
		SummonDateID string `json:"summonDateID"`
		TimeSlotID   string `json:"timeSlotID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	dID, err := primitive.ObjectIDFromHex(booking.SummonDateID)
	if err != nil {
		config.ErrorStatus("invalid summon date ID", http.StatusBadRequest, w, err)
		return
	}
	sID, err := primitive.ObjectIDFromHex(booking.TimeSlotID)
	if err != nil {
		config.ErrorStatus("invalid time slot ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	summonCase, err := h.SCDB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to find summon case", http.StatusNotFound, w, err)
		return
	}

	// all validation happens before any write
	count, err := h.DB.CountDocuments(ctx, bson.M{"hearingSchedule.summonCaseID": caseID})
	if err != nil {
		config.ErrorStatus("failed to count hearing schedules", http.StatusInternalServerError, w, err)
		return
	}
	if count >= models.MaxHearingSchedules {
		config.ErrorStatus("hearing limit reached", http.StatusConflict, w,
			fmt.Errorf("case %s already has %d hearings", summonCase.Details.CaseCode, count))
		return
	}

	openCount, err := h.DB.CountDocuments(ctx, bson.M{
		"hearingSchedule.summonCaseID": caseID,
		"hearingSchedule.closed":       false,
	})
	if err != nil {
		config.ErrorStatus("failed to check open hearings", http.StatusInternalServerError, w, err)
		return
	}
	if openCount > 0 {
		config.ErrorStatus("case has an open hearing", http.StatusConflict, w,
			fmt.Errorf("close the current hearing before booking another"))
		return
	}

	summonDate, err := h.DDB.FindOne(ctx, bson.M{"_id": dID})
	if err != nil {
		config.ErrorStatus("failed to find summon date", http.StatusNotFound, w, err)
		return
	}

	today := h.Now()
	index := hearing.BuildIndex(hearing.CurrentQuarter(today), today, []models.SummonDate{*summonDate})
	if !index.Selectable(summonDate.Details.Date.Time()) {
		config.ErrorStatus("summon date not selectable", http.StatusBadRequest, w,
			fmt.Errorf("date %s is outside the booking window or not after today",
				summonDate.Details.Date.Time().Format("2006-01-02")))
		return
	}

	slot, err := h.STDB.FindOne(ctx, bson.M{"_id": sID})
	if err != nil {
		config.ErrorStatus("failed to find time slot", http.StatusNotFound, w, err)
		return
	}
	if slot.Details.SummonDateID != booking.SummonDateID {
		config.ErrorStatus("time slot does not belong to summon date", http.StatusBadRequest, w,
			fmt.Errorf("slot %s belongs to date %s", booking.TimeSlotID, slot.Details.SummonDateID))
		return
	}
	if slot.Details.Booked {
		config.ErrorStatus("time slot already booked", http.StatusConflict, w,
			fmt.Errorf("slot %s at %s is taken", booking.TimeSlotID, slot.Details.StartTime))
		return
	}

	level := hearing.LevelFor(int(count))
	now := primitive.NewDateTimeFromTime(today)

	schedule := models.HearingSchedule{
		ID: primitive.NewObjectID(),
		Details: models.HearingScheduleDetails{
			SummonCaseID: caseID,
			SummonDateID: booking.SummonDateID,
			TimeSlotID:   booking.TimeSlotID,
			Level:        level.Label,
			Track:        string(level.Track),
			Closed:       false,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}

	// step 1: insert the schedule
	if _, err := h.DB.InsertOne(ctx, schedule); err != nil {
		config.ErrorStatus("failed to create hearing schedule", http.StatusInternalServerError, w, err)
		return
	}

	// step 2: flip the active track to Ongoing
	statusField := "summonCase.mediationStatus"
	previousStatus := summonCase.Details.MediationStatus
	if level.Track == hearing.TrackLupon {
		statusField = "summonCase.conciliationStatus"
		previousStatus = summonCase.Details.ConciliationStatus
	}
	err = h.SCDB.UpdateOne(ctx, bson.M{"_id": cID}, bson.M{
		"$set": bson.M{
			statusField:            models.CaseStatusOngoing,
			"summonCase.updatedAt": now,
		},
	})
	if err != nil {
		h.compensate(caseID, schedule.ID, "", previousStatus, now)
		config.ErrorStatus("failed to update case status", http.StatusInternalServerError, w, err)
		return
	}

	// step 3, the commit point: claim the slot only if still unbooked
	res, err := h.STDB.UpdateOne(ctx,
		bson.M{"_id": sID, "summonTimeSlot.booked": false},
		bson.M{"$set": bson.M{
			"summonTimeSlot.booked":    true,
			"summonTimeSlot.updatedAt": now,
		}},
	)
	if err != nil {
		h.compensate(caseID, schedule.ID, statusField, previousStatus, now)
		config.ErrorStatus("failed to book time slot", http.StatusInternalServerError, w, err)
		return
	}
	if res.ModifiedCount() == 0 {
		h.compensate(caseID, schedule.ID, statusField, previousStatus, now)
		config.ErrorStatus("time slot already booked", http.StatusConflict, w,
			fmt.Errorf("slot %s was taken by another booking", booking.TimeSlotID))
		return
	}

	h.Hub.BroadcastSlotBooked(booking.SummonDateID, booking.TimeSlotID)
	zap.S().Infow("hearing booked",
		"caseCode", summonCase.Details.CaseCode,
		"level", level.Label,
		"summonDateId", booking.SummonDateID,
		"timeSlotId", booking.TimeSlotID,
	)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Hearing booked successfully",
		"id":      schedule.ID.Hex(),
		"level":   level,
	})
}

// compensate unwinds a failed booking: the schedule insert is deleted and, if
// the status step already ran, the case status is put back. Both writes are
// best effort; a failure here is logged for manual cleanup.
func (h HearingSchedule) compensate(caseID string, scheduleID primitive.ObjectID, statusField, previousStatus string, now primitive.DateTime) {
	ctx, cancel := api.WithQueryTimeout(nil)
	defer cancel()

	if err := h.DB.DeleteOne(ctx, bson.M{"_id": scheduleID}); err != nil {
		zap.S().Errorw("failed to roll back hearing schedule",
			"caseId", caseID, "scheduleId", scheduleID.Hex(), "error", err)
	}

	if statusField == "" {
		return
	}
	cID, err := primitive.ObjectIDFromHex(caseID)
	if err != nil {
		return
	}
	err = h.SCDB.UpdateOne(ctx, bson.M{"_id": cID}, bson.M{
		"$set": bson.M{
			statusField:            previousStatus,
			"summonCase.updatedAt": now,
		},
	})
	if err != nil {
		zap.S().Errorw("failed to roll back case status",
			"caseId", caseID, "field", statusField, "error", err)
	}
}

// CloseHearingHandler closes an open hearing with a staff remark. An optional
// outcome resolves or escalates the case; without one the active track returns
// to Waiting for Schedule so the next rung can be booked.
func (h HearingSchedule) CloseHearingHandler(w http.ResponseWriter, r *http.Request) {
	hearingID := mux.Vars(r)["hearing_id"]

	hID, err := primitive.ObjectIDFromHex(hearingID)
	if err != nil {
		config.ErrorStatus("invalid hearing ID", http.StatusBadRequest, w, err)
		return
	}

	var closing struct {
		Remark    string   `json:"remark"`
		StaffName string   `json:"staffName"`
		Documents []string `json:"documents"`
		Outcome   string   `json:"outcome"` // "", "Resolved" or "Escalated"
	}
	if err := json.NewDecoder(r.Body).Decode(&closing); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if closing.Remark == "" || closing.StaffName == "" {
		config.ErrorStatus("remark and staffName are required", http.StatusBadRequest, w,
			fmt.Errorf("a hearing cannot be closed without a remark"))
		return
	}
	if closing.Outcome != "" &&
		closing.Outcome != models.CaseStatusResolved &&
		closing.Outcome != models.CaseStatusEscalated {
		config.ErrorStatus("invalid outcome", http.StatusBadRequest, w,
			fmt.Errorf("outcome '%s' is not valid", closing.Outcome))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	schedule, err := h.DB.FindOne(ctx, bson.M{"_id": hID})
	if err != nil {
		config.ErrorStatus("failed to find hearing schedule", http.StatusNotFound, w, err)
		return
	}
	if schedule.Details.Closed {
		config.ErrorStatus("hearing already closed", http.StatusConflict, w,
			fmt.Errorf("hearing %s is closed", hearingID))
		return
	}

	cID, err := primitive.ObjectIDFromHex(schedule.Details.SummonCaseID)
	if err != nil {
		config.ErrorStatus("invalid summon case ID on hearing", http.StatusInternalServerError, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(h.Now())
	remark := models.Remark{
		Text:      closing.Remark,
		StaffName: closing.StaffName,
		Documents: closing.Documents,
		CreatedAt: now,
	}

	_, err = h.DB.UpdateOne(ctx, bson.M{"_id": hID}, bson.M{
		"$set": bson.M{
			"hearingSchedule.closed":    true,
			"hearingSchedule.remark":    remark,
			"hearingSchedule.updatedAt": now,
		},
	})
	if err != nil {
		config.ErrorStatus("failed to close hearing", http.StatusInternalServerError, w, err)
		return
	}

	statusField := "summonCase.mediationStatus"
	if schedule.Details.Track == string(hearing.TrackLupon) {
		statusField = "summonCase.conciliationStatus"
	}

	caseUpdate := bson.M{
		"summonCase.updatedAt": now,
	}
	switch closing.Outcome {
	case models.CaseStatusResolved:
		caseUpdate[statusField] = models.CaseStatusResolved
		caseUpdate["summonCase.dateMarked"] = now
		caseUpdate["summonCase.markedByName"] = closing.StaffName
	case models.CaseStatusEscalated:
		caseUpdate[statusField] = models.CaseStatusEscalated
		caseUpdate["summonCase.dateMarked"] = now
		caseUpdate["summonCase.markedByName"] = closing.StaffName
		if schedule.Details.Track == string(hearing.TrackCouncil) {
			// escalation out of mediation hands the case to the Lupon
			caseUpdate["summonCase.conciliationStatus"] = models.CaseStatusWaitingForSchedule
		}
	default:
		caseUpdate[statusField] = models.CaseStatusWaitingForSchedule
	}

	err = h.SCDB.UpdateOne(ctx, bson.M{"_id": cID}, bson.M{"$set": caseUpdate})
	if err != nil {
		config.ErrorStatus("failed to update case status", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("hearing closed",
		"hearingId", hearingID,
		"level", schedule.Details.Level,
		"outcome", closing.Outcome,
		"staff", closing.StaffName,
	)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Hearing closed successfully",
	})
}
