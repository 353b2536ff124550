package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Payment request statuses. A request past its due date while still unpaid is
// declined by the scheduler job, which also cancels the complaint.
const (
	PaymentStatusUnpaid   = "Unpaid"
	PaymentStatusPaid     = "Paid"
	PaymentStatusDeclined = "Declined"
)

// PaymentRequest holds the structure for the paymentrequests collection in mongo.
// One request per complaint; paying it unlocks hearing scheduling.
type PaymentRequest struct {
	ID      primitive.ObjectID    `json:"_id" bson:"_id"`
	Details PaymentRequestDetails `json:"paymentRequest" bson:"paymentRequest"`
	Version int32                 `json:"__v" bson:"__v"`
}

// PaymentRequestDetails holds the structure for the inner payment request details
type PaymentRequestDetails struct {
	ComplaintID string  `json:"complaintID" bson:"complaintID"`
	Amount      float64 `json:"amount" bson:"amount"`

	// Status: "Unpaid", "Paid", "Declined"
	Status   string             `json:"status" bson:"status"`
	DueDate  primitive.DateTime `json:"dueDate" bson:"dueDate"`
	PaidDate primitive.DateTime `json:"paidDate,omitempty" bson:"paidDate,omitempty"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
