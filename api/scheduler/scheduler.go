package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/barangayph/barangay-records-api/databases"
	"github.com/barangayph/barangay-records-api/models"
	templates "github.com/barangayph/barangay-records-api/templates/html"
)

// Scheduler handles periodic background jobs for the hearing workflow
type Scheduler struct {
	cron       *cron.Cron
	PDB        databases.PaymentRequestDatabase
	CDB        databases.ComplaintDatabase
	HSDB       databases.HearingScheduleDatabase
	DDB        databases.SummonDateDatabase
	SCDB       databases.SummonCaseDatabase
	LockDB     databases.SchedulerLockDatabase
	instanceID string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(
	pDB databases.PaymentRequestDatabase,
	cDB databases.ComplaintDatabase,
	hsDB databases.HearingScheduleDatabase,
	dDB databases.SummonDateDatabase,
	scDB databases.SummonCaseDatabase,
	lockDB databases.SchedulerLockDatabase,
	instanceID string, // Heroku sets DYNO to "web.1", "web.2", etc.
) *Scheduler {
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		PDB:        pDB,
		CDB:        cDB,
		HSDB:       hsDB,
		DDB:        dDB,
		SCDB:       scDB,
		LockDB:     lockDB,
		instanceID: instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Decline overdue filing fees daily at 1 AM UTC
	_, err := s.cron.AddFunc("0 1 * * *", s.declineOverduePayments)
	if err != nil {
		zap.S().Errorw("failed to register overdue payment job", "error", err)
	}

	// Send hearing reminders daily at 6 AM UTC for sessions happening tomorrow
	_, err = s.cron.AddFunc("0 6 * * *", s.sendHearingReminders)
	if err != nil {
		zap.S().Errorw("failed to register hearing reminder job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Hearing workflow scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Hearing workflow scheduler stopped")
}

// declineOverduePayments declines unpaid filing fee requests past their due
// date and cancels the complaints behind them. The tracker surfaces this rule
// to complainants ahead of time.
func (s *Scheduler) declineOverduePayments() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Try to acquire distributed lock (10 minute TTL)
	acquired, err := s.LockDB.TryAcquireLock(ctx, "overdue_payment_job", s.instanceID, 10*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for overdue payment job", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Overdue payment job already running on another instance, skipping")
		return
	}
	defer s.LockDB.ReleaseLock(ctx, "overdue_payment_job", s.instanceID)

	now := time.Now()
	zap.S().Infow("Running overdue payment job", "instance", s.instanceID)

	overdue, err := s.PDB.Find(ctx, bson.M{
		"paymentRequest.status":  models.PaymentStatusUnpaid,
		"paymentRequest.dueDate": bson.M{"$lt": primitive.NewDateTimeFromTime(now)},
	})
	if err != nil {
		zap.S().Errorw("failed to find overdue payment requests", "error", err)
		return
	}

	declined := 0
	for _, request := range overdue {
		if s.declinePayment(ctx, request) {
			declined++
		}
	}

	zap.S().Infow("Overdue payment job complete",
		"overdueFound", len(overdue),
		"declined", declined,
	)
}

// declinePayment declines one overdue request and cancels its complaint.
// The status filter on the update keeps a request paid between the find and
// the write from being declined.
func (s *Scheduler) declinePayment(ctx context.Context, request models.PaymentRequest) bool {
	now := primitive.NewDateTimeFromTime(time.Now())

	res, err := s.PDB.UpdateOne(ctx,
		bson.M{"_id": request.ID, "paymentRequest.status": models.PaymentStatusUnpaid},
		bson.M{"$set": bson.M{
			"paymentRequest.status":    models.PaymentStatusDeclined,
			"paymentRequest.updatedAt": now,
		}},
	)
	if err != nil {
		zap.S().Errorw("failed to decline payment request", "error", err, "paymentId", request.ID.Hex())
		return false
	}
	if res.ModifiedCount() == 0 {
		return false
	}

	complaintID, err := primitive.ObjectIDFromHex(request.Details.ComplaintID)
	if err != nil {
		zap.S().Errorw("invalid complaint id on payment request", "paymentId", request.ID.Hex())
		return true
	}

	err = s.CDB.UpdateOne(ctx, bson.M{"_id": complaintID}, bson.M{
		"$set": bson.M{
			"complaint.status":    models.ComplaintStatusCancelled,
			"complaint.updatedAt": now,
		},
	})
	if err != nil {
		zap.S().Errorw("failed to cancel complaint for declined payment",
			"error", err, "complaintId", request.Details.ComplaintID)
	}

	s.sendDeclineEmail(ctx, complaintID, request.Details.Amount)

	zap.S().Infow("Declined overdue payment request",
		"paymentId", request.ID.Hex(),
		"complaintId", request.Details.ComplaintID,
	)
	return true
}

// sendHearingReminders emails complainants whose hearing happens tomorrow
func (s *Scheduler) sendHearingReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Try to acquire distributed lock (15 minute TTL)
	acquired, err := s.LockDB.TryAcquireLock(ctx, "hearing_reminder_job", s.instanceID, 15*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for hearing reminder job", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Hearing reminder job already running on another instance, skipping")
		return
	}
	defer s.LockDB.ReleaseLock(ctx, "hearing_reminder_job", s.instanceID)

	zap.S().Infow("Running hearing reminder job", "instance", s.instanceID)

	open, err := s.HSDB.Find(ctx, bson.M{"hearingSchedule.closed": false})
	if err != nil {
		zap.S().Errorw("failed to find open hearing schedules", "error", err)
		return
	}

	tomorrow := time.Now().Add(24 * time.Hour).Format("2006-01-02")
	sent := 0
	for _, schedule := range open {
		if s.remindIfTomorrow(ctx, schedule, tomorrow) {
			sent++
		}
	}

	zap.S().Infow("Hearing reminder job complete",
		"openHearings", len(open),
		"remindersSent", sent,
	)
}

func (s *Scheduler) remindIfTomorrow(ctx context.Context, schedule models.HearingSchedule, tomorrow string) bool {
	dID, err := primitive.ObjectIDFromHex(schedule.Details.SummonDateID)
	if err != nil {
		return false
	}
	summonDate, err := s.DDB.FindOne(ctx, bson.M{"_id": dID})
	if err != nil {
		return false
	}
	if summonDate.Details.Date.Time().Format("2006-01-02") != tomorrow {
		return false
	}

	cID, err := primitive.ObjectIDFromHex(schedule.Details.SummonCaseID)
	if err != nil {
		return false
	}
	summonCase, err := s.SCDB.FindOne(ctx, bson.M{"_id": cID})
	if err != nil {
		return false
	}

	complaintID, err := primitive.ObjectIDFromHex(summonCase.Details.ComplaintID)
	if err != nil {
		return false
	}
	complaint, err := s.CDB.FindOne(ctx, bson.M{"_id": complaintID})
	if err != nil || complaint.Details.ComplainantEmail == "" {
		return false
	}

	subject := fmt.Sprintf("Hearing Reminder: %s tomorrow", schedule.Details.Level)
	body := fmt.Sprintf(
		"Good day %s,\n\nThis is a reminder that the %s for case %s is scheduled tomorrow.\nPlease arrive at the barangay hall ahead of your time slot.\n\nThank you.",
		complaint.Details.ComplainantName, schedule.Details.Level, summonCase.Details.CaseCode,
	)

	err = s.sendEmail(complaint.Details.ComplainantEmail, complaint.Details.ComplainantName,
		subject, templates.RenderGenericEmail(subject, body), body)
	if err != nil {
		zap.S().Errorw("failed to send hearing reminder",
			"error", err, "caseCode", summonCase.Details.CaseCode)
		return false
	}

	zap.S().Infow("Sent hearing reminder",
		"caseCode", summonCase.Details.CaseCode,
		"level", schedule.Details.Level,
	)
	return true
}

func (s *Scheduler) sendDeclineEmail(ctx context.Context, complaintID primitive.ObjectID, amount float64) {
	complaint, err := s.CDB.FindOne(ctx, bson.M{"_id": complaintID})
	if err != nil || complaint.Details.ComplainantEmail == "" {
		return
	}

	subject := "Filing Fee Overdue: Complaint Cancelled"
	body := fmt.Sprintf(
		"Good day %s,\n\nThe filing fee of PHP %.2f for your complaint was not settled by its due date.\nThe payment request has been declined and the complaint cancelled.\nYou may file the complaint again at the barangay hall.\n\nThank you.",
		complaint.Details.ComplainantName, amount,
	)

	if err := s.sendEmail(complaint.Details.ComplainantEmail, complaint.Details.ComplainantName,
		subject, templates.RenderGenericEmail(subject, body), body); err != nil {
		zap.S().Errorw("failed to send decline email", "error", err, "complaintId", complaintID.Hex())
	}
}

func (s *Scheduler) sendEmail(toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("Barangay Records Office", "no-reply@barangayrecords.ph")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
