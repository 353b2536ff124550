package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barangayph/barangay-records-api/api/handlers"
	"github.com/barangayph/barangay-records-api/databases"
	"github.com/barangayph/barangay-records-api/databases/mocks"
	"github.com/barangayph/barangay-records-api/models"
)

func TestSummonTimeSlot_TimeSlotsBySummonDateHandler(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/summon-date/"+testDateID+"/time-slots", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"date_id": testDateID})
	req.Header.Set("Authorization", "Bearer abc123")

	db := &MockDatabaseHelper{}
	dateConn := &mocks.CollectionHelper{}
	slotConn := &mocks.CollectionHelper{}
	db.On("Collection", "summondates").Return(dateConn)
	db.On("Collection", "summontimeslots").Return(slotConn)

	singleResult := &mocks.SingleResultHelper{}
	singleResult.On("Decode", mock.Anything).Return(nil)
	dateConn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)

	cursor := &mocks.CursorHelper{}
	cursor.On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.SummonTimeSlot)
		*arg = []models.SummonTimeSlot{
			{Details: models.SummonTimeSlotDetails{SummonDateID: testDateID, StartTime: "09:00 AM"}},
			{Details: models.SummonTimeSlotDetails{SummonDateID: testDateID, StartTime: "10:00 AM", Booked: true}},
		}
	})
	cursor.On("Close", mock.Anything).Return(nil)
	slotConn.On("Find", mock.Anything, mock.Anything).Return(cursor, nil)

	st := handlers.SummonTimeSlot{
		DB:  databases.NewSummonTimeSlotDatabase(db),
		DDB: databases.NewSummonDateDatabase(db),
		Now: fixedNow,
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(st.TimeSlotsBySummonDateHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"count":2`)
	assert.Contains(t, rr.Body.String(), "09:00 AM")
}

func TestSummonTimeSlot_CreateTimeSlotHandler(t *testing.T) {
	body := `{"startTime":"09:00 AM"}`
	req, err := http.NewRequest("POST", "/api/v1/summon-date/"+testDateID+"/time-slots", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"date_id": testDateID})
	req.Header.Set("Authorization", "Bearer abc123")

	db := &MockDatabaseHelper{}
	dateConn := &mocks.CollectionHelper{}
	slotConn := &mocks.CollectionHelper{}
	db.On("Collection", "summondates").Return(dateConn)
	db.On("Collection", "summontimeslots").Return(slotConn)

	dateResult := &mocks.SingleResultHelper{}
	dateResult.On("Decode", mock.Anything).Return(nil)
	dateConn.On("FindOne", mock.Anything, mock.Anything).Return(dateResult)

	// no slot exists yet for this start time
	slotResult := &mocks.SingleResultHelper{}
	slotResult.On("Decode", mock.Anything).Return(assert.AnError)
	slotConn.On("FindOne", mock.Anything, mock.Anything).Return(slotResult)

	var inserted interface{}
	slotConn.On("InsertOne", mock.Anything, mock.Anything).Return(nil, nil).
		Run(func(args mock.Arguments) { inserted = args.Get(1) })

	st := handlers.SummonTimeSlot{
		DB:  databases.NewSummonTimeSlotDatabase(db),
		DDB: databases.NewSummonDateDatabase(db),
		Now: fixedNow,
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(st.CreateTimeSlotHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	// timestamps come from the injected clock
	slot := inserted.(models.SummonTimeSlot)
	assert.Equal(t, primitive.NewDateTimeFromTime(fixedNow()), slot.Details.CreatedAt)
	assert.Equal(t, primitive.NewDateTimeFromTime(fixedNow()), slot.Details.UpdatedAt)
	assert.False(t, slot.Details.Booked)
}

func TestSummonTimeSlot_CreateTimeSlotHandlerMissingStartTime(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/summon-date/"+testDateID+"/time-slots", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"date_id": testDateID})

	db := &MockDatabaseHelper{}
	st := handlers.SummonTimeSlot{
		DB:  databases.NewSummonTimeSlotDatabase(db),
		DDB: databases.NewSummonDateDatabase(db),
		Now: fixedNow,
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(st.CreateTimeSlotHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSummonTimeSlot_CreateTimeSlotHandlerDuplicateStartTime(t *testing.T) {
	body := `{"startTime":"09:00 AM"}`
	req, err := http.NewRequest("POST", "/api/v1/summon-date/"+testDateID+"/time-slots", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"date_id": testDateID})

	db := &MockDatabaseHelper{}
	dateConn := &mocks.CollectionHelper{}
	slotConn := &mocks.CollectionHelper{}
	db.On("Collection", "summondates").Return(dateConn)
	db.On("Collection", "summontimeslots").Return(slotConn)

	dateResult := &mocks.SingleResultHelper{}
	dateResult.On("Decode", mock.Anything).Return(nil)
	dateConn.On("FindOne", mock.Anything, mock.Anything).Return(dateResult)

	slotResult := &mocks.SingleResultHelper{}
	slotResult.On("Decode", mock.Anything).Return(nil)
	slotConn.On("FindOne", mock.Anything, mock.Anything).Return(slotResult)

	st := handlers.SummonTimeSlot{
		DB:  databases.NewSummonTimeSlotDatabase(db),
		DDB: databases.NewSummonDateDatabase(db),
		Now: fixedNow,
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(st.CreateTimeSlotHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)
	slotConn.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}
