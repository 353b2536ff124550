package databases

// go generate: mockery --name PaymentRequestDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barangayph/barangay-records-api/models"
)

const paymentRequestName = "paymentrequests"

// PaymentRequestDatabase contains the methods to use with the payment request database
type PaymentRequestDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.PaymentRequest, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.PaymentRequest, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (UpdateResultHelper, error)
}

type paymentRequestDatabase struct {
	db DatabaseHelper
}

// NewPaymentRequestDatabase initializes a new instance of payment request database with the provided db connection
func NewPaymentRequestDatabase(db DatabaseHelper) PaymentRequestDatabase {
	return &paymentRequestDatabase{
		db: db,
	}
}

func (p *paymentRequestDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.PaymentRequest, error) {
	paymentRequest := &models.PaymentRequest{}
	err := p.db.Collection(paymentRequestName).FindOne(ctx, filter, opts...).Decode(&paymentRequest)
	if err != nil {
		return nil, err
	}
	return paymentRequest, nil
}

func (p *paymentRequestDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.PaymentRequest, error) {
	var paymentRequests []models.PaymentRequest
	curr, err := p.db.Collection(paymentRequestName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &paymentRequests)
	if err != nil {
		return nil, err
	}
	return paymentRequests, nil
}

func (p *paymentRequestDatabase) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	res, err := p.db.Collection(paymentRequestName).InsertOne(ctx, document, opts...)
	return res, err
}

func (p *paymentRequestDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (UpdateResultHelper, error) {
	return p.db.Collection(paymentRequestName).UpdateOne(ctx, filter, update, opts...)
}
