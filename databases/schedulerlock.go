package databases

// go generate: mockery --name SchedulerLockDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const schedulerLockName = "schedulerlocks"

// SchedulerLockDatabase provides a best-effort distributed lock so cron jobs
// run on a single instance at a time
type SchedulerLockDatabase interface {
	TryAcquireLock(ctx context.Context, jobName, instanceID string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, jobName, instanceID string) error
}

type schedulerLockDatabase struct {
	db DatabaseHelper
}

// NewSchedulerLockDatabase initializes a new instance of scheduler lock database with the provided db connection
func NewSchedulerLockDatabase(db DatabaseHelper) SchedulerLockDatabase {
	return &schedulerLockDatabase{
		db: db,
	}
}

func (s *schedulerLockDatabase) TryAcquireLock(ctx context.Context, jobName, instanceID string, ttl time.Duration) (bool, error) {
	now := time.Now()
	expiresAt := primitive.NewDateTimeFromTime(now.Add(ttl))

	// Take over the lock only if the current hold has expired
	res, err := s.db.Collection(schedulerLockName).UpdateOne(ctx,
		bson.M{"_id": jobName, "expiresAt": bson.M{"$lt": primitive.NewDateTimeFromTime(now)}},
		bson.M{"$set": bson.M{"holder": instanceID, "expiresAt": expiresAt}},
	)
	if err != nil {
		return false, err
	}
	if res.ModifiedCount() == 1 {
		return true, nil
	}

	// No expired lock to take over; claim the name outright. A duplicate-key
	// error here means another instance holds it.
	_, err = s.db.Collection(schedulerLockName).InsertOne(ctx, bson.M{
		"_id":       jobName,
		"holder":    instanceID,
		"expiresAt": expiresAt,
	})
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (s *schedulerLockDatabase) ReleaseLock(ctx context.Context, jobName, instanceID string) error {
	_, err := s.db.Collection(schedulerLockName).UpdateOne(ctx,
		bson.M{"_id": jobName, "holder": instanceID},
		bson.M{"$set": bson.M{"expiresAt": primitive.NewDateTimeFromTime(time.Unix(0, 0))}},
	)
	return err
}
