package databases

// go generate: mockery --name HearingScheduleDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barangayph/barangay-records-api/models"
)

const hearingScheduleName = "hearingschedules"

// HearingScheduleDatabase contains the methods to use with the hearing schedule database
type HearingScheduleDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.HearingSchedule, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.HearingSchedule, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (UpdateResultHelper, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
}

type hearingScheduleDatabase struct {
	db DatabaseHelper
}

// NewHearingScheduleDatabase initializes a new instance of hearing schedule database with the provided db connection
func NewHearingScheduleDatabase(db DatabaseHelper) HearingScheduleDatabase {
	return &hearingScheduleDatabase{
		db: db,
	}
}

func (h *hearingScheduleDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.HearingSchedule, error) {
	schedule := &models.HearingSchedule{}
	err := h.db.Collection(hearingScheduleName).FindOne(ctx, filter, opts...).Decode(&schedule)
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

func (h *hearingScheduleDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.HearingSchedule, error) {
	var schedules []models.HearingSchedule
	curr, err := h.db.Collection(hearingScheduleName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &schedules)
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (h *hearingScheduleDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return h.db.Collection(hearingScheduleName).CountDocuments(ctx, filter, opts...)
}

func (h *hearingScheduleDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := h.db.Collection(hearingScheduleName).InsertOne(ctx, document, opts...)
	return res, err
}

func (h *hearingScheduleDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (UpdateResultHelper, error) {
	return h.db.Collection(hearingScheduleName).UpdateOne(ctx, filter, update, opts...)
}

func (h *hearingScheduleDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return h.db.Collection(hearingScheduleName).DeleteOne(ctx, filter, opts...)
}
