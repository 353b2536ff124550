package databases

// go generate: mockery --name SummonTimeSlotDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barangayph/barangay-records-api/models"
)

const summonTimeSlotName = "summontimeslots"

// SummonTimeSlotDatabase contains the methods to use with the time slot database
type SummonTimeSlotDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.SummonTimeSlot, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.SummonTimeSlot, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (UpdateResultHelper, error)
}

type summonTimeSlotDatabase struct {
	db DatabaseHelper
}

// NewSummonTimeSlotDatabase initializes a new instance of time slot database with the provided db connection
func NewSummonTimeSlotDatabase(db DatabaseHelper) SummonTimeSlotDatabase {
	return &summonTimeSlotDatabase{
		db: db,
	}
}

func (s *summonTimeSlotDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.SummonTimeSlot, error) {
	slot := &models.SummonTimeSlot{}
	err := s.db.Collection(summonTimeSlotName).FindOne(ctx, filter, opts...).Decode(&slot)
	if err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *summonTimeSlotDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.SummonTimeSlot, error) {
	var slots []models.SummonTimeSlot
	curr, err := s.db.Collection(summonTimeSlotName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &slots)
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (s *summonTimeSlotDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := s.db.Collection(summonTimeSlotName).InsertOne(ctx, document, opts...)
	return res, err
}

func (s *summonTimeSlotDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (UpdateResultHelper, error) {
	return s.db.Collection(summonTimeSlotName).UpdateOne(ctx, filter, update, opts...)
}
