package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SummonTimeSlot holds the structure for the summontimeslots collection in mongo.
// Belongs to exactly one summon date. Once booked it is never released.
type SummonTimeSlot struct {
	ID      primitive.ObjectID    `json:"_id" bson:"_id"`
	Details SummonTimeSlotDetails `json:"summonTimeSlot" bson:"summonTimeSlot"`
	Version int32                 `json:"__v" bson:"__v"`
}

// SummonTimeSlotDetails holds the structure for the inner time slot details
type SummonTimeSlotDetails struct {
	SummonDateID string `json:"summonDateID" bson:"summonDateID"`
	StartTime    string `json:"startTime" bson:"startTime"` // e.g. "09:00 AM"
	Booked       bool   `json:"booked" bson:"booked"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}
