package handlers

import (
	"encoding/json"
	"net/http"

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

// Tracking exported for testing purposes
type Tracking struct {
	CDB  databases.ComplaintDatabase
	PDB  databases.PaymentRequestDatabase
	SCDB databases.SummonCaseDatabase
	HSDB databases.HearingScheduleDatabase
}

// CaseTrackingHandler returns the derived 3-step tracker for one complaint.
// Everything is recomputed from the stored records on each call; nothing in
// the tracker is persisted.
func (t Tracking) CaseTrackingHandler(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["complaint_id"]

	cID, err := primitive.ObjectIDFromHex(complaintID)
	if err != nil {
		config.ErrorStatus("invalid complaint ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	complaint, err := t.CDB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		config.ErrorStatus("failed to find complaint", http.StatusNotFound, w, err)
		return
	}

	snapshot := hearing.Snapshot{ComplaintStatus: complaint.Details.Status}

	// payment and case records may not exist yet; the projector treats their
	// absence as defaults rather than an error
	if payment, err := t.PDB.FindOne(ctx, bson.M{"paymentRequest.complaintID": complaintID}); err == nil && payment != nil {
		snapshot.Payment = &payment.Details
	}
	if summonCase, err := t.SCDB.FindOne(ctx, bson.M{"summonCase.complaintID": complaintID}); err == nil && summonCase != nil {
		snapshot.Case = &summonCase.Details

		schedules, err := t.HSDB.Find(ctx, bson.M{"hearingSchedule.summonCaseID": summonCase.ID.Hex()})
		if err == nil {
			details := make([]models.HearingScheduleDetails, 0, len(schedules))
			for _, s := range schedules {
				details = append(details, s.Details)
			}
			snapshot.Schedules = details
		}
	}

	tracker := hearing.Project(snapshot)
	if tracker.Inconsistent {
		zap.S().Warnw("case tracker derived an inconsistent state",
			"complaintId", complaintID,
			"complaintStatus", snapshot.ComplaintStatus,
		)
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(tracker)
}
