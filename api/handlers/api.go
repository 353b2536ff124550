package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/barangayph/barangay-records-api/api"
	"github.com/barangayph/barangay-records-api/api/scheduler"
	"github.com/barangayph/barangay-records-api/config"
	"github.com/barangayph/barangay-records-api/databases"
	"github.com/barangayph/barangay-records-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for middleware
	m := api.MiddlewareDB{DB: databases.NewUserDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	hub := api.NewHub()

	u := User{DB: databases.NewUserDatabase(a.dbHelper)}
	b := Blotter{
		DB:   databases.NewComplaintDatabase(a.dbHelper),
		PDB:  databases.NewPaymentRequestDatabase(a.dbHelper),
		SCDB: databases.NewSummonCaseDatabase(a.dbHelper),
	}
	p := Payment{DB: databases.NewPaymentRequestDatabase(a.dbHelper)}
	sd := SummonDate{DB: databases.NewSummonDateDatabase(a.dbHelper), Now: time.Now}
	st := SummonTimeSlot{
		DB:  databases.NewSummonTimeSlotDatabase(a.dbHelper),
		DDB: databases.NewSummonDateDatabase(a.dbHelper),
		Now: time.Now,
	}
	hs := HearingSchedule{
		DB:   databases.NewHearingScheduleDatabase(a.dbHelper),
		SCDB: databases.NewSummonCaseDatabase(a.dbHelper),
		DDB:  databases.NewSummonDateDatabase(a.dbHelper),
		STDB: databases.NewSummonTimeSlotDatabase(a.dbHelper),
		Hub:  hub,
		Now:  time.Now,
	}
	tr := Tracking{
		CDB:  databases.NewComplaintDatabase(a.dbHelper),
		PDB:  databases.NewPaymentRequestDatabase(a.dbHelper),
		SCDB: databases.NewSummonCaseDatabase(a.dbHelper),
		HSDB: databases.NewHearingScheduleDatabase(a.dbHelper),
	}
	cloudinaryHandler := CloudinaryHandler{}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", api.Middleware(http.HandlerFunc(m.CreateToken))).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	apiCreate.Handle("/user/create-user", http.HandlerFunc(u.UserCreateHandler)).Methods("POST")

	apiCreate.Handle("/complaint", api.Middleware(http.HandlerFunc(b.CreateComplaintHandler))).Methods("POST")
	apiCreate.Handle("/complaint/{complaint_id}", api.Middleware(http.HandlerFunc(b.ComplaintByIDHandler))).Methods("GET")
	apiCreate.Handle("/complaint/{complaint_id}/status", api.Middleware(http.HandlerFunc(b.UpdateComplaintStatusHandler))).Methods("PUT")
	apiCreate.Handle("/complaint/{complaint_id}/payment", api.Middleware(http.HandlerFunc(p.PaymentByComplaintIDHandler))).Methods("GET")
	apiCreate.Handle("/complaint/{complaint_id}/tracking", api.Middleware(http.HandlerFunc(tr.CaseTrackingHandler))).Methods("GET")
	apiCreate.Handle("/complaint/{complaint_id}/summon-case", api.Middleware(http.HandlerFunc(hs.SummonCaseByComplaintHandler))).Methods("GET")
	apiCreate.Handle("/complaints/barangay/{barangay_id}", api.Middleware(http.HandlerFunc(b.ComplaintsByBarangayIDHandler))).Methods("GET")

	apiCreate.Handle("/payment/{payment_id}/pay", api.Middleware(http.HandlerFunc(p.MarkPaymentPaidHandler))).Methods("PUT")

	apiCreate.Handle("/summon-dates", api.Middleware(http.HandlerFunc(sd.AvailableSummonDatesHandler))).Methods("GET")
	apiCreate.Handle("/summon-dates", api.Middleware(http.HandlerFunc(sd.CreateSummonDateHandler))).Methods("POST")
	apiCreate.Handle("/summon-date/{date_id}/time-slots", api.Middleware(http.HandlerFunc(st.TimeSlotsBySummonDateHandler))).Methods("GET")
	apiCreate.Handle("/summon-date/{date_id}/time-slots", api.Middleware(http.HandlerFunc(st.CreateTimeSlotHandler))).Methods("POST")

	apiCreate.Handle("/summon-case/{case_id}", api.Middleware(http.HandlerFunc(hs.SummonCaseByIDHandler))).Methods("GET")
	apiCreate.Handle("/summon-case/{case_id}/hearings", api.Middleware(http.HandlerFunc(hs.HearingsByCaseHandler))).Methods("GET")
	apiCreate.Handle("/summon-case/{case_id}/hearings", api.Middleware(http.HandlerFunc(hs.BookHearingHandler))).Methods("POST")
	apiCreate.Handle("/hearing/{hearing_id}/close", api.Middleware(http.HandlerFunc(hs.CloseHearingHandler))).Methods("PUT")

	apiCreate.Handle("/generate-signature", api.Middleware(http.HandlerFunc(cloudinaryHandler.GenerateSignature))).Methods("POST")

	apiCreate.Handle("/ws/slots", http.HandlerFunc(hub.ServeWS)).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("barangay-records-api has connected to the database")

	// background jobs: overdue payment declines and hearing reminders
	a.Scheduler = scheduler.NewScheduler(
		databases.NewPaymentRequestDatabase(a.dbHelper),
		databases.NewComplaintDatabase(a.dbHelper),
		databases.NewHearingScheduleDatabase(a.dbHelper),
		databases.NewSummonDateDatabase(a.dbHelper),
		databases.NewSummonCaseDatabase(a.dbHelper),
		databases.NewSchedulerLockDatabase(a.dbHelper),
		os.Getenv("DYNO"),
	)
	a.Scheduler.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
