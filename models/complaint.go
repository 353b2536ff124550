package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Complaint lifecycle statuses. Set by intake/staff actions; only "Raised"
// complaints participate in the hearing workflow.
const (
	ComplaintStatusPending   = "Pending"
	ComplaintStatusRaised    = "Raised"
	ComplaintStatusAccepted  = "Accepted"
	ComplaintStatusRejected  = "Rejected"
	ComplaintStatusCancelled = "Cancelled"
	ComplaintStatusResolved  = "Resolved"
)

// Complaint holds the structure for the complaints collection in mongo
type Complaint struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details ComplaintDetails   `json:"complaint" bson:"complaint"`
	Version int32              `json:"__v" bson:"__v"`
}

// ComplaintDetails holds the structure for the inner complaint details
type ComplaintDetails struct {
	ComplainantName  string `json:"complainantName" bson:"complainantName"`
	ComplainantEmail string `json:"complainantEmail" bson:"complainantEmail"`
	RespondentName   string `json:"respondentName" bson:"respondentName"`
	IncidentType     string `json:"incidentType" bson:"incidentType"`
	Narrative        string `json:"narrative" bson:"narrative"`
	BarangayID       string `json:"barangayID" bson:"barangayID"`

	// Status: "Pending", "Raised", "Accepted", "Rejected", "Cancelled", "Resolved"
	Status string `json:"status" bson:"status"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
