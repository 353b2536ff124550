package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Hearing track statuses. Mediation and conciliation progress independently;
// conciliation only starts once mediation escalates.
const (
	CaseStatusWaitingForSchedule = "Waiting for Schedule"
	CaseStatusOngoing            = "Ongoing"
	CaseStatusResolved           = "Resolved"
	CaseStatusEscalated          = "Escalated"
)

// SummonCase holds the structure for the summoncases collection in mongo.
// Created when a complaint is raised into the hearing process.
type SummonCase struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details SummonCaseDetails  `json:"summonCase" bson:"summonCase"`
	Version int32              `json:"__v" bson:"__v"`
}

// SummonCaseDetails holds the structure for the inner summon case details
type SummonCaseDetails struct {
	ComplaintID string `json:"complaintID" bson:"complaintID"`
	CaseCode    string `json:"caseCode" bson:"caseCode"`

	// MediationStatus/ConciliationStatus: "Waiting for Schedule", "Ongoing",
	// "Resolved", "Escalated". ConciliationStatus stays empty until the case
	// moves to the Lupon track.
	MediationStatus    string `json:"mediationStatus" bson:"mediationStatus"`
	ConciliationStatus string `json:"conciliationStatus" bson:"conciliationStatus"`

	DateMarked   primitive.DateTime `json:"dateMarked,omitempty" bson:"dateMarked,omitempty"`
	MarkedByName string             `json:"markedByName,omitempty" bson:"markedByName,omitempty"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
