package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/barangayph/barangay-records-api/api"
	"github.com/barangayph/barangay-records-api/config"
	"github.com/barangayph/barangay-records-api/databases"
	"github.com/barangayph/barangay-records-api/models"
)

// defaultFilingFee is charged when a complaint is accepted and no amount is
// supplied by the treasurer
const defaultFilingFee = 150.0

// defaultPaymentTermDays is how long the complainant has to settle the fee
const defaultPaymentTermDays = 15

// Blotter exported for testing purposes
type Blotter struct {
	DB   databases.ComplaintDatabase
	PDB  databases.PaymentRequestDatabase
	SCDB databases.SummonCaseDatabase
}

// CreateComplaintHandler files a new blotter complaint
func (b Blotter) CreateComplaintHandler(w http.ResponseWriter, r *http.Request) {
	var complaint models.Complaint
	if err := json.NewDecoder(r.Body).Decode(&complaint.Details); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	complaint.ID = primitive.NewObjectID()
	now := primitive.NewDateTimeFromTime(time.Now())
	complaint.Details.CreatedAt = now
	complaint.Details.UpdatedAt = now
	complaint.Details.Status = models.ComplaintStatusPending

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	_, err := b.DB.InsertOne(ctx, complaint)
	if err != nil {
		config.ErrorStatus("failed to create complaint", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Complaint filed successfully",
		"id":      complaint.ID.Hex(),
		"status":  complaint.Details.Status,
	})
}

// ComplaintByIDHandler returns a complaint by ID
func (b Blotter) ComplaintByIDHandler(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["complaint_id"]

	bID, err := primitive.ObjectIDFromHex(complaintID)
	if err != nil {
		config.ErrorStatus("invalid complaint ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := b.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to find complaint", http.StatusNotFound, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(dbResp)
}

// ComplaintsByBarangayIDHandler returns paginated complaints for a barangay
func (b Blotter) ComplaintsByBarangayIDHandler(w http.ResponseWriter, r *http.Request) {
	barangayID := mux.Vars(r)["barangay_id"]
	status := r.URL.Query().Get("status")
	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || Limit <= 0 {
		Limit = 10
	}
	limit64 := int64(Limit)
	Page := getPage(0, r)
	skip64 := int64(Page * Limit)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	filter := bson.M{
		"complaint.barangayID": barangayID,
	}
	if status != "" {
		filter["complaint.status"] = status
	}

	type findResult struct {
		complaints []models.Complaint
		err        error
	}
	type countResult struct {
		count int64
		err   error
	}

	findChan := make(chan findResult, 1)
	countChan := make(chan countResult, 1)

	go func() {
		complaints, err := b.DB.Find(ctx, filter, &options.FindOptions{
			Limit: &limit64,
			Skip:  &skip64,
			Sort:  bson.M{"_id": -1},
		})
		findChan <- findResult{complaints: complaints, err: err}
	}()

	go func() {
		count, err := b.DB.CountDocuments(ctx, filter)
		countChan <- countResult{count: count, err: err}
	}()

	findRes := <-findChan
	countRes := <-countChan

	if findRes.err != nil {
		config.ErrorStatus("failed to get complaints", http.StatusNotFound, w, findRes.err)
		return
	}

	dbResp := findRes.complaints
	var totalCount int64
	if countRes.err != nil {
		totalCount = int64(len(dbResp))
	} else {
		totalCount = countRes.count
	}

	if len(dbResp) == 0 {
		dbResp = []models.Complaint{}
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(Limit)))

	response := map[string]interface{}{
		"data":       dbResp,
		"page":       Page,
		"limit":      Limit,
		"totalCount": totalCount,
		"totalPages": totalPages,
	}

	b2, err := json.Marshal(response)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b2)
}

// UpdateComplaintStatusHandler moves a complaint through its lifecycle.
// Accepting a complaint raises the filing fee request; raising it creates the
// summon case that the hearing workflow runs on.
func (b Blotter) UpdateComplaintStatusHandler(w http.ResponseWriter, r *http.Request) {
	complaintID := mux.Vars(r)["complaint_id"]

	bID, err := primitive.ObjectIDFromHex(complaintID)
	if err != nil {
		config.ErrorStatus("invalid complaint ID", http.StatusBadRequest, w, err)
		return
	}

	var statusData struct {
		Status  string  `json:"status"`
		Amount  float64 `json:"amount"`
		DueDate string  `json:"dueDate"` // "2006-01-02", optional
	}
	if err := json.NewDecoder(r.Body).Decode(&statusData); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	validStatuses := map[string]bool{
		models.ComplaintStatusPending:   true,
		models.ComplaintStatusRaised:    true,
		models.ComplaintStatusAccepted:  true,
		models.ComplaintStatusRejected:  true,
		models.ComplaintStatusCancelled: true,
		models.ComplaintStatusResolved:  true,
	}
	if !validStatuses[statusData.Status] {
		config.ErrorStatus("invalid status", http.StatusBadRequest, w, fmt.Errorf("status '%s' is not valid", statusData.Status))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	existing, err := b.DB.FindOne(ctx, bson.M{"_id": bID})
	if err != nil {
		config.ErrorStatus("failed to find complaint", http.StatusNotFound, w, err)
		return
	}

	now := primitive.NewDateTimeFromTime(time.Now())

	switch statusData.Status {
	case models.ComplaintStatusAccepted:
		if err := b.createPaymentRequest(r, bID.Hex(), statusData.Amount, statusData.DueDate, now); err != nil {
			config.ErrorStatus("failed to create payment request", http.StatusInternalServerError, w, err)
			return
		}
	case models.ComplaintStatusRaised:
		if err := b.createSummonCase(r, bID.Hex(), now); err != nil {
			config.ErrorStatus("failed to create summon case", http.StatusInternalServerError, w, err)
			return
		}
	}

	err = b.DB.UpdateOne(ctx, bson.M{"_id": bID}, bson.M{
		"$set": bson.M{
			"complaint.status":    statusData.Status,
			"complaint.updatedAt": now,
		},
	})
	if err != nil {
		config.ErrorStatus("failed to update complaint status", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("complaint status updated",
		"complaintId", bID.Hex(),
		"from", existing.Details.Status,
		"to", statusData.Status,
	)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Complaint status updated successfully",
	})
}

func (b Blotter) createPaymentRequest(r *http.Request, complaintID string, amount float64, dueDate string, now primitive.DateTime) error {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// one request per complaint
	if existing, err := b.PDB.FindOne(ctx, bson.M{"paymentRequest.complaintID": complaintID}); err == nil && existing != nil {
		return nil
	}

	if amount <= 0 {
		amount = defaultFilingFee
	}
	due := time.Now().AddDate(0, 0, defaultPaymentTermDays)
	if dueDate != "" {
		parsed, err := time.Parse("2006-01-02", dueDate)
		if err != nil {
			return fmt.Errorf("invalid due date '%s': %w", dueDate, err)
		}
		due = parsed
	}

	paymentRequest := models.PaymentRequest{
		ID: primitive.NewObjectID(),
		Details: models.PaymentRequestDetails{
			ComplaintID: complaintID,
			Amount:      amount,
			Status:      models.PaymentStatusUnpaid,
			DueDate:     primitive.NewDateTimeFromTime(due),
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}
	_, err := b.PDB.InsertOne(ctx, paymentRequest)
	return err
}

func (b Blotter) createSummonCase(r *http.Request, complaintID string, now primitive.DateTime) error {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	// one case per complaint
	if existing, err := b.SCDB.FindOne(ctx, bson.M{"summonCase.complaintID": complaintID}); err == nil && existing != nil {
		return nil
	}

	code := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	summonCase := models.SummonCase{
		ID: primitive.NewObjectID(),
		Details: models.SummonCaseDetails{
			ComplaintID:     complaintID,
			CaseCode:        fmt.Sprintf("BRGY-%s", code),
			MediationStatus: models.CaseStatusWaitingForSchedule,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}
	_, err := b.SCDB.InsertOne(ctx, summonCase)
	return err
}

func getPage(Page int, r *http.Request) int {
	if r.URL.Query().Get("page") == "" {
		zap.S().Warnf("page not set, using default of %v", Page)
	} else {
		var err error
		Page, err = strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			zap.S().Errorf(fmt.Sprintf("error parsing page number: %v", err))
		}
		if Page < 0 {
			zap.S().Warnf(fmt.Sprintf("cannot process page number less than 1. Got: %v", Page))
			return 0
		}
	}
	return Page
}
