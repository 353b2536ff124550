package hearing

import (
	"fmt"
	"strings"

	"github.com/barangayph/barangay-records-api/models"
)

// StageKind tags the CaseStage union
type StageKind string

// Stage kinds. Exactly one applies to a raised case at any time.
const (
	StagePayment    StageKind = "payment"
	StageScheduling StageKind = "scheduling"
	StageCompleted  StageKind = "completed"
)

// CaseStage is the single authoritative reading of where a raised case
// stands, replacing ad-hoc string matching across the two track status
// fields. Only the fields for the tagged kind are populated.
type CaseStage struct {
	Kind StageKind `json:"kind"`

	// payment
	Amount  float64 `json:"amount,omitempty"`
	DueDate string  `json:"dueDate,omitempty"`

	// scheduling
	ScheduleCount int    `json:"scheduleCount,omitempty"`
	NextLevel     *Level `json:"nextLevel,omitempty"`

	// completed
	Outcome string `json:"outcome,omitempty"`
}

// Step is one row of the 3-step case tracker
type Step struct {
	Title      string `json:"title"`
	Status     string `json:"status"`
	Detail     string `json:"detail"`
	Completed  bool   `json:"isStepCompleted"`
	Locked     bool   `json:"locked"`
	Actionable bool   `json:"actionable"`
}

// Tracker is the derived case-tracking view for one complaint
type Tracker struct {
	Available bool       `json:"available"`
	Message   string     `json:"message,omitempty"`
	Steps     []Step     `json:"steps,omitempty"`
	Stage     *CaseStage `json:"stage,omitempty"`

	// Inconsistent marks a state the lock rule should make unreachable:
	// a later step complete while the payment step is not.
	Inconsistent bool `json:"inconsistent,omitempty"`
}

// Snapshot is the raw state the tracker derives from. Payment and Case are
// nil when the backing records do not exist yet.
type Snapshot struct {
	ComplaintStatus string
	Payment         *models.PaymentRequestDetails
	Case            *models.SummonCaseDetails
	Schedules       []models.HearingScheduleDetails
}

const dateMarkFormat = "Jan 2, 2006"

// statuses that unlock the step after them
var unlocking = map[string]bool{
	"paid":      true,
	"scheduled": true,
	"resolved":  true,
	"escalated": true,
}

// Project derives the fixed Payment / Schedule Hearing / Case Completion
// tracker. Tracking is only available once the complaint has been raised
// into the hearing process; before that a placeholder is returned and no
// steps are computed.
func Project(s Snapshot) Tracker {
	if s.ComplaintStatus != models.ComplaintStatusRaised {
		return Tracker{
			Available: false,
			Message:   "case tracking becomes available once the complaint has been raised for hearing",
		}
	}

	payment := projectPayment(s.Payment)
	schedule := projectSchedule(s, payment)
	completion := projectCompletion(s, payment, schedule)

	stage := StageFor(s)
	tracker := Tracker{
		Available: true,
		Steps:     []Step{payment, schedule, completion},
		Stage:     &stage,
	}
	if (schedule.Completed || completion.Completed) && !payment.Completed {
		tracker.Inconsistent = true
	}
	return tracker
}

func projectPayment(p *models.PaymentRequestDetails) Step {
	step := Step{Title: "Payment", Status: "unpaid"}
	if p == nil {
		step.Detail = "awaiting filing fee assessment"
		return step
	}
	step.Status = strings.ToLower(p.Status)
	switch step.Status {
	case "paid":
		step.Completed = true
		step.Detail = fmt.Sprintf("PHP %.2f paid on %s", p.Amount, p.PaidDate.Time().Format(dateMarkFormat))
	default:
		step.Detail = fmt.Sprintf("PHP %.2f due on %s; unpaid requests are automatically declined after the due date",
			p.Amount, p.DueDate.Time().Format(dateMarkFormat))
	}
	return step
}

func projectSchedule(s Snapshot, payment Step) Step {
	step := Step{
		Title:  "Schedule Hearing",
		Status: strings.ToLower(activeStatus(s.Case)),
		Locked: !unlocking[payment.Status],
	}
	// the scheduling screen only opens once the filing fee is settled
	step.Actionable = payment.Status == "paid"

	switch step.Status {
	case "waiting for schedule":
		if len(s.Schedules) >= models.MaxHearingSchedules {
			step.Detail = "the final hearing has been held; awaiting the case outcome"
		} else {
			step.Detail = "select a date and time slot for the next hearing"
		}
	case "ongoing":
		open := openSchedule(s.Schedules)
		switch {
		case open == nil:
			step.Detail = "attend the scheduled session"
		case open.Remark != nil:
			step.Detail = fmt.Sprintf("%s in progress; remark recorded by %s", open.Level, open.Remark.StaffName)
		default:
			step.Detail = fmt.Sprintf("%s is scheduled; attend the session", open.Level)
		}
	case "escalated":
		step.Completed = true
		step.Detail = "mediation failed; the case was elevated to the Lupon Tagapamayapa"
	case "resolved":
		step.Completed = true
		step.Detail = "the parties reached an amicable settlement"
	default:
		step.Detail = "attend the scheduled session"
	}
	return step
}

func projectCompletion(s Snapshot, payment, schedule Step) Step {
	step := Step{
		Title:  "Case Completion",
		Status: schedule.Status,
		Locked: !unlocking[schedule.Status],
	}
	if schedule.Status == "resolved" || schedule.Status == "escalated" {
		step.Completed = true
	}
	if s.Case != nil && s.Case.DateMarked != 0 {
		step.Detail = fmt.Sprintf("marked %s on %s by %s",
			strings.ToLower(outcome(s.Case)), s.Case.DateMarked.Time().Format(dateMarkFormat), s.Case.MarkedByName)
	} else {
		step.Detail = "pending mediation outcome"
	}
	return step
}

// StageFor collapses the payment and track statuses into the CaseStage union
func StageFor(s Snapshot) CaseStage {
	if s.Payment == nil || !strings.EqualFold(s.Payment.Status, models.PaymentStatusPaid) {
		stage := CaseStage{Kind: StagePayment}
		if s.Payment != nil {
			stage.Amount = s.Payment.Amount
			stage.DueDate = s.Payment.DueDate.Time().Format(dateMarkFormat)
		}
		return stage
	}

	switch strings.ToLower(activeStatus(s.Case)) {
	case "resolved", "escalated":
		return CaseStage{Kind: StageCompleted, Outcome: outcome(s.Case)}
	default:
		next := LevelFor(len(s.Schedules))
		return CaseStage{
			Kind:          StageScheduling,
			ScheduleCount: len(s.Schedules),
			NextLevel:     &next,
		}
	}
}

// activeStatus picks the track status the tracker runs on: conciliation once
// it has started, mediation otherwise.
func activeStatus(c *models.SummonCaseDetails) string {
	if c == nil {
		return "None"
	}
	if c.ConciliationStatus != "" {
		return c.ConciliationStatus
	}
	if c.MediationStatus != "" {
		return c.MediationStatus
	}
	return "None"
}

func outcome(c *models.SummonCaseDetails) string {
	status := activeStatus(c)
	if strings.EqualFold(status, models.CaseStatusResolved) || strings.EqualFold(status, models.CaseStatusEscalated) {
		return status
	}
	return ""
}

func openSchedule(schedules []models.HearingScheduleDetails) *models.HearingScheduleDetails {
	for i := range schedules {
		if !schedules[i].Closed {
			return &schedules[i]
		}
	}
	return nil
}
