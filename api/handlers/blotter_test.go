package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/barangayph/barangay-records-api/api/handlers"
	"github.com/barangayph/barangay-records-api/databases"
	"github.com/barangayph/barangay-records-api/databases/mocks"
	"github.com/barangayph/barangay-records-api/models"
)

func newBlotterHandler(db *MockDatabaseHelper) handlers.Blotter {
	return handlers.Blotter{
		DB:   databases.NewComplaintDatabase(db),
		PDB:  databases.NewPaymentRequestDatabase(db),
		SCDB: databases.NewSummonCaseDatabase(db),
	}
}

func TestBlotter_CreateComplaintHandler(t *testing.T) {
	body := `{"complainantName":"Juan dela Cruz","complainantEmail":"juan@example.ph","respondentName":"Pedro Santos","incidentType":"noise","narrative":"loud karaoke past midnight","barangayID":"brgy-42"}`
	req, err := http.NewRequest("POST", "/api/v1/complaint", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer abc123")

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	conn.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil)
	db.On("Collection", "complaints").Return(conn)

	rr := httptest.NewRecorder()
	http.HandlerFunc(newBlotterHandler(db).CreateComplaintHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	// every new complaint starts out pending
	assert.Contains(t, rr.Body.String(), models.ComplaintStatusPending)
}

func TestBlotter_UpdateComplaintStatusHandlerRaised(t *testing.T) {
	body := `{"status":"Raised"}`
	req, err := http.NewRequest("PUT", "/api/v1/complaint/"+testComplaintID+"/status", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": testComplaintID})
	req.Header.Set("Authorization", "Bearer abc123")

	db := &MockDatabaseHelper{}
	complaintConn := &mocks.CollectionHelper{}
	caseConn := &mocks.CollectionHelper{}
	db.On("Collection", "complaints").Return(complaintConn)
	db.On("Collection", "summoncases").Return(caseConn)

	stubComplaintFindOne(complaintConn, models.ComplaintStatusAccepted)
	complaintConn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	// no case exists yet, so raising the complaint creates one
	missing := &mocks.SingleResultHelper{}
	missing.On("Decode", mock.Anything).Return(assert.AnError)
	caseConn.On("FindOne", mock.Anything, mock.Anything).Return(missing)

	var inserted interface{}
	caseConn.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil).
		Run(func(args mock.Arguments) { inserted = args.Get(1) })

	rr := httptest.NewRecorder()
	http.HandlerFunc(newBlotterHandler(db).UpdateComplaintStatusHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	summonCase := inserted.(models.SummonCase)
	assert.Equal(t, testComplaintID, summonCase.Details.ComplaintID)
	assert.Equal(t, models.CaseStatusWaitingForSchedule, summonCase.Details.MediationStatus)
	assert.Empty(t, summonCase.Details.ConciliationStatus)
	assert.Regexp(t, `^BRGY-[0-9A-F]{8}$`, summonCase.Details.CaseCode)
}

func TestBlotter_UpdateComplaintStatusHandlerAccepted(t *testing.T) {
	body := `{"status":"Accepted","amount":200,"dueDate":"2025-05-25"}`
	req, err := http.NewRequest("PUT", "/api/v1/complaint/"+testComplaintID+"/status", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": testComplaintID})
	req.Header.Set("Authorization", "Bearer abc123")

	db := &MockDatabaseHelper{}
	complaintConn := &mocks.CollectionHelper{}
	paymentConn := &mocks.CollectionHelper{}
	db.On("Collection", "complaints").Return(complaintConn)
	db.On("Collection", "paymentrequests").Return(paymentConn)

	stubComplaintFindOne(complaintConn, models.ComplaintStatusPending)
	complaintConn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	missing := &mocks.SingleResultHelper{}
	missing.On("Decode", mock.Anything).Return(assert.AnError)
	paymentConn.On("FindOne", mock.Anything, mock.Anything).Return(missing)

	var inserted interface{}
	paymentConn.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil).
		Run(func(args mock.Arguments) { inserted = args.Get(1) })

	rr := httptest.NewRecorder()
	http.HandlerFunc(newBlotterHandler(db).UpdateComplaintStatusHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	request := inserted.(models.PaymentRequest)
	assert.Equal(t, testComplaintID, request.Details.ComplaintID)
	assert.Equal(t, float64(200), request.Details.Amount)
	assert.Equal(t, models.PaymentStatusUnpaid, request.Details.Status)
	assert.Equal(t, "2025-05-25", request.Details.DueDate.Time().UTC().Format("2006-01-02"))
}

func TestBlotter_UpdateComplaintStatusHandlerInvalidStatus(t *testing.T) {
	body := `{"status":"Archived"}`
	req, err := http.NewRequest("PUT", "/api/v1/complaint/"+testComplaintID+"/status", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": testComplaintID})

	db := &MockDatabaseHelper{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(newBlotterHandler(db).UpdateComplaintStatusHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBlotter_ComplaintByIDHandlerInvalidID(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/complaint/1234", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"complaint_id": "1234"})

	db := &MockDatabaseHelper{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(newBlotterHandler(db).ComplaintByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBlotter_ComplaintsByBarangayIDHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/complaints/barangay/brgy-42?limit=5&page=0", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"barangay_id": "brgy-42"})
	req.Header.Set("Authorization", "Bearer abc123")

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	db.On("Collection", "complaints").Return(conn)

	cursor := &mocks.CursorHelper{}
	cursor.On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.Complaint)
		*arg = []models.Complaint{
			{Details: models.ComplaintDetails{BarangayID: "brgy-42", Status: models.ComplaintStatusPending}},
		}
	})
	cursor.On("Close", mock.Anything).Return(nil)
	conn.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursor, nil)
	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(1), nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(newBlotterHandler(db).ComplaintsByBarangayIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"totalCount":1`)
	assert.Contains(t, rr.Body.String(), `"totalPages":1`)
}
