package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barangayph/barangay-records-api/api/handlers"
	"github.com/barangayph/barangay-records-api/api/handlers/hearing"
	"github.com/barangayph/barangay-records-api/databases"
	"github.com/barangayph/barangay-records-api/databases/mocks"
	"github.com/barangayph/barangay-records-api/models"
)

const testComplaintID = "608cafe595eb9dc05379b7f8"

func trackingRequest(t *testing.T) *http.Request {
	req, err := http.NewRequest("GET", "/api/v1/complaint/"+testComplaintID+"/tracking", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": testComplaintID})
	req.Header.Set("Authorization", "Bearer abc123")
	return req
}

func newTrackingHandler(db *MockDatabaseHelper) handlers.Tracking {
	return handlers.Tracking{
		CDB:  databases.NewComplaintDatabase(db),
		PDB:  databases.NewPaymentRequestDatabase(db),
		SCDB: databases.NewSummonCaseDatabase(db),
		HSDB: databases.NewHearingScheduleDatabase(db),
	}
}

func stubComplaintFindOne(conn *mocks.CollectionHelper, status string) {
	singleResult := &mocks.SingleResultHelper{}
	singleResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Complaint)
		(*arg).Details = models.ComplaintDetails{
			ComplainantName: "Juan dela Cruz",
			Status:          status,
		}
	})
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
}

func TestTracking_CaseTrackingHandlerPaidWaitingForSchedule(t *testing.T) {
	db := &MockDatabaseHelper{}
	complaintConn := &mocks.CollectionHelper{}
	paymentConn := &mocks.CollectionHelper{}
	caseConn := &mocks.CollectionHelper{}
	hearingConn := &mocks.CollectionHelper{}
	db.On("Collection", "complaints").Return(complaintConn)
	db.On("Collection", "paymentrequests").Return(paymentConn)
	db.On("Collection", "summoncases").Return(caseConn)
	db.On("Collection", "hearingschedules").Return(hearingConn)

	stubComplaintFindOne(complaintConn, models.ComplaintStatusRaised)

	paymentResult := &mocks.SingleResultHelper{}
	paymentResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.PaymentRequest)
		(*arg).Details = models.PaymentRequestDetails{
			ComplaintID: testComplaintID,
			Amount:      150,
			Status:      models.PaymentStatusPaid,
			PaidDate:    primitive.NewDateTimeFromTime(time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC)),
		}
	})
	paymentConn.On("FindOne", mock.Anything, mock.Anything).Return(paymentResult)

	caseResult := &mocks.SingleResultHelper{}
	caseResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.SummonCase)
		(*arg).Details = models.SummonCaseDetails{
			ComplaintID:     testComplaintID,
			CaseCode:        "BRGY-AB12CD34",
			MediationStatus: models.CaseStatusWaitingForSchedule,
		}
	})
	caseConn.On("FindOne", mock.Anything, mock.Anything).Return(caseResult)

	cursor := &mocks.CursorHelper{}
	cursor.On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.HearingSchedule)
		*arg = []models.HearingSchedule{}
	})
	cursor.On("Close", mock.Anything).Return(nil)
	hearingConn.On("Find", mock.Anything, mock.Anything).Return(cursor, nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(newTrackingHandler(db).CaseTrackingHandler).ServeHTTP(rr, trackingRequest(t))

	assert.Equal(t, http.StatusOK, rr.Code)

	var tracker hearing.Tracker
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tracker))

	assert.True(t, tracker.Available)
	assert.Len(t, tracker.Steps, 3)
	assert.True(t, tracker.Steps[0].Completed)
	assert.False(t, tracker.Steps[1].Locked)
	assert.True(t, tracker.Steps[1].Actionable)
	assert.False(t, tracker.Inconsistent)
	assert.Equal(t, hearing.StageScheduling, tracker.Stage.Kind)
	assert.Equal(t, "1st MEDIATION", tracker.Stage.NextLevel.Label)
}

func TestTracking_CaseTrackingHandlerNotYetRaised(t *testing.T) {
	db := &MockDatabaseHelper{}
	complaintConn := &mocks.CollectionHelper{}
	paymentConn := &mocks.CollectionHelper{}
	caseConn := &mocks.CollectionHelper{}
	db.On("Collection", "complaints").Return(complaintConn)
	db.On("Collection", "paymentrequests").Return(paymentConn)
	db.On("Collection", "summoncases").Return(caseConn)

	stubComplaintFindOne(complaintConn, models.ComplaintStatusPending)

	// no payment or case records exist yet
	missing := &mocks.SingleResultHelper{}
	missing.On("Decode", mock.Anything).Return(assert.AnError)
	paymentConn.On("FindOne", mock.Anything, mock.Anything).Return(missing)
	caseConn.On("FindOne", mock.Anything, mock.Anything).Return(missing)

	rr := httptest.NewRecorder()
	http.HandlerFunc(newTrackingHandler(db).CaseTrackingHandler).ServeHTTP(rr, trackingRequest(t))

	assert.Equal(t, http.StatusOK, rr.Code)

	var tracker hearing.Tracker
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tracker))

	assert.False(t, tracker.Available)
	assert.Empty(t, tracker.Steps)
	assert.Contains(t, tracker.Message, "raised")
}

func TestTracking_CaseTrackingHandlerInvalidID(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/complaint/1234/tracking", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": "1234"})

	db := &MockDatabaseHelper{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(newTrackingHandler(db).CaseTrackingHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
