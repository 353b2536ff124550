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
	"github.com/barangayph/barangay-records-api/config"
	"github.com/barangayph/barangay-records-api/databases"
	"github.com/barangayph/barangay-records-api/models"
)

// Payment exported for testing purposes
type Payment struct {
	DB databases.PaymentRequestDatabase
}

// PaymentByComplaintIDHandler returns the filing fee request of a complaint
func (p Payment) PaymentByComplaintIDHandler(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["complaint_id"]

	if _, err := primitive.ObjectIDFromHex(complaintID); err != nil {
		config.ErrorStatus("invalid complaint ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := p.DB.FindOne(ctx, bson.M{"paymentRequest.complaintID": complaintID})
	if err != nil {
		config.ErrorStatus("failed to find payment request", http.StatusNotFound, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dbResp)
}

// MarkPaymentPaidHandler marks a filing fee as paid. The update only matches
// an Unpaid request, so a request already paid or declined by the overdue job
// is reported as a conflict rather than silently re-paid.
func (p Payment) MarkPaymentPaidHandler(w http.ResponseWriter, r *http.Request) {
	paymentID := mux.Vars(r)["payment_id"]

	pID, err := primitive.ObjectIDFromHex(paymentID)
	if err != nil {
		config.ErrorStatus("invalid payment ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	now := primitive.NewDateTimeFromTime(time.Now())
	res, err := p.DB.UpdateOne(ctx,
		bson.M{"_id": pID, "paymentRequest.status": models.PaymentStatusUnpaid},
		bson.M{"$set": bson.M{
			"paymentRequest.status":    models.PaymentStatusPaid,
			"paymentRequest.paidDate":  now,
			"paymentRequest.updatedAt": now,
		}},
	)
	if err != nil {
		config.ErrorStatus("failed to update payment request", http.StatusInternalServerError, w, err)
		return
	}
	if res.ModifiedCount() == 0 {
		config.ErrorStatus("payment request is not unpaid", http.StatusConflict, w,
			fmt.Errorf("payment %s was already paid or declined", paymentID))
		return
	}

	zap.S().Infow("payment request marked paid", "paymentId", paymentID)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Payment marked as paid",
	})
}
