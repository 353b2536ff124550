package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SummonDate holds the structure for the summondates collection in mongo.
// A calendar day the office has opened for hearings.
type SummonDate struct {
	ID      primitive.ObjectID `json:"_id" bson:"_id"`
	Details SummonDateDetails  `json:"summonDate" bson:"summonDate"`
	Version int32              `json:"__v" bson:"__v"`
}

// SummonDateDetails holds the structure for the inner summon date details
type SummonDateDetails struct {
	Date       primitive.DateTime `json:"date" bson:"date"`
	BarangayID string             `json:"barangayID" bson:"barangayID"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
