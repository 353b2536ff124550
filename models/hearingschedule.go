package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MaxHearingSchedules caps the ladder at 3 mediation + 3 conciliation sessions.
const MaxHearingSchedules = 6

// HearingSchedule holds the structure for the hearingschedules collection in
// mongo. Append-only per case; open (closed=false) until staff closes it.
type HearingSchedule struct {
	ID      primitive.ObjectID     `json:"_id" bson:"_id"`
	Details HearingScheduleDetails `json:"hearingSchedule" bson:"hearingSchedule"`
	Version int32                  `json:"__v" bson:"__v"`
}

// HearingScheduleDetails holds the structure for the inner hearing schedule details
type HearingScheduleDetails struct {
	SummonCaseID string `json:"summonCaseID" bson:"summonCaseID"`
	SummonDateID string `json:"summonDateID" bson:"summonDateID"`
	TimeSlotID   string `json:"timeSlotID" bson:"timeSlotID"`

	// Level label, e.g. "2nd MEDIATION" or "1st Conciliation Proceedings"
	Level string `json:"level" bson:"level"`
	// Track: "Council" (mediation) or "Lupon" (conciliation)
	Track string `json:"track" bson:"track"`

	Closed bool    `json:"closed" bson:"closed"`
	Remark *Remark `json:"remark,omitempty" bson:"remark,omitempty"`

	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
	UpdatedAt primitive.DateTime `json:"updatedAt" bson:"updatedAt"`
}

// Remark is a staff-authored note recorded when a hearing is closed
type Remark struct {
	Text      string             `json:"text" bson:"text"`
	StaffName string             `json:"staffName" bson:"staffName"`
	Documents []string           `json:"documents,omitempty" bson:"documents,omitempty"`
	CreatedAt primitive.DateTime `json:"createdAt" bson:"createdAt"`
}
