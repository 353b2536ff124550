package databases

// go generate: mockery --name SummonCaseDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barangayph/barangay-records-api/models"
)

const summonCaseName = "summoncases"

// SummonCaseDatabase contains the methods to use with the summon case database
type SummonCaseDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.SummonCase, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
}

type summonCaseDatabase struct {
	db DatabaseHelper
}

// NewSummonCaseDatabase initializes a new instance of summon case database with the provided db connection
func NewSummonCaseDatabase(db DatabaseHelper) SummonCaseDatabase {
	return &summonCaseDatabase{
		db: db,
	}
}

func (s *summonCaseDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.SummonCase, error) {
	summonCase := &models.SummonCase{}
	err := s.db.Collection(summonCaseName).FindOne(ctx, filter, opts...).Decode(&summonCase)
	if err != nil {
		return nil, err
	}
	return summonCase, nil
}

func (s *summonCaseDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := s.db.Collection(summonCaseName).InsertOne(ctx, document, opts...)
	return res, err
}

func (s *summonCaseDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := s.db.Collection(summonCaseName).UpdateOne(ctx, filter, update, opts...)
	return err
}
