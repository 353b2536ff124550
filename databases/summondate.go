package databases

// go generate: mockery --name SummonDateDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barangayph/barangay-records-api/models"
)

const summonDateName = "summondates"

// SummonDateDatabase contains the methods to use with the summon date database
type SummonDateDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.SummonDate, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.SummonDate, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
}

type summonDateDatabase struct {
	db DatabaseHelper
}

// NewSummonDateDatabase initializes a new instance of summon date database with the provided db connection
func NewSummonDateDatabase(db DatabaseHelper) SummonDateDatabase {
	return &summonDateDatabase{
		db: db,
	}
}

func (s *summonDateDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.SummonDate, error) {
	summonDate := &models.SummonDate{}
	err := s.db.Collection(summonDateName).FindOne(ctx, filter, opts...).Decode(&summonDate)
	if err != nil {
		return nil, err
	}
	return summonDate, nil
}

func (s *summonDateDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.SummonDate, error) {
	var summonDates []models.SummonDate
	curr, err := s.db.Collection(summonDateName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &summonDates)
	if err != nil {
		return nil, err
	}
	return summonDates, nil
}

func (s *summonDateDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return s.db.Collection(summonDateName).CountDocuments(ctx, filter, opts...)
}

func (s *summonDateDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := s.db.Collection(summonDateName).InsertOne(ctx, document, opts...)
	return res, err
}
