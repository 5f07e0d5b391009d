package store

import (
	"context"
	"curoo/internal/repository"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	DoctorsCollection      = "doctors"
	ServicesCollection     = "services"
	AppointmentsCollection = "appointments"
)

type Timeouts struct {
	Read  time.Duration
	Write time.Duration
}

type MongoStore[T repository.Record, D repository.Draft[T], P repository.Patch[T]] struct {
	client     *mongo.Client
	collection *mongo.Collection
	timeouts   Timeouts
	now        func() time.Time
}

func NewMongoStore[T repository.Record, D repository.Draft[T], P repository.Patch[T]](db *mongo.Database, collection string, timeouts Timeouts) *MongoStore[T, D, P] {
	return &MongoStore[T, D, P]{
		client:     db.Client(),
		collection: db.Collection(collection),
		timeouts:   timeouts,
		now:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// withTimeout applies timeout unless ctx already expires sooner.
func (s *MongoStore[T, D, P]) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (s *MongoStore[T, D, P]) Create(ctx context.Context, draft D) (T, error) {
	ctx, cancel := s.withTimeout(ctx, s.timeouts.Write)
	defer cancel()

	record := draft.Build(NewID(), s.now())
	if _, err := s.collection.InsertOne(ctx, record); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to insert into %s: %w", s.collection.Name(), err)
	}
	return record, nil
}

func (s *MongoStore[T, D, P]) Get(ctx context.Context, id string) (T, error) {
	var record T
	if !ValidID(id) {
		return record, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	ctx, cancel := s.withTimeout(ctx, s.timeouts.Read)
	defer cancel()

	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return record, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return record, fmt.Errorf("failed to find in %s: %w", s.collection.Name(), err)
	}
	return record, nil
}

func (s *MongoStore[T, D, P]) List(ctx context.Context, q Query) ([]T, error) {
	ctx, cancel := s.withTimeout(ctx, s.timeouts.Read)
	defer cancel()

	opts := options.Find()
	if q.NewestFirst {
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	cursor, err := s.collection.Find(ctx, q.filter(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.collection.Name(), err)
	}
	defer cursor.Close(ctx)

	records := []T{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.collection.Name(), err)
	}
	return records, nil
}

func (s *MongoStore[T, D, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	var record T
	if !ValidID(id) {
		return record, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	set, err := toDoc(patch)
	if err != nil {
		return record, err
	}
	set["updated_at"] = s.now()

	ctx, cancel := s.withTimeout(ctx, s.timeouts.Write)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return record, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return record, fmt.Errorf("failed to update in %s: %w", s.collection.Name(), err)
	}
	return record, nil
}

func (s *MongoStore[T, D, P]) Delete(ctx context.Context, id string) error {
	if !ValidID(id) {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}

	ctx, cancel := s.withTimeout(ctx, s.timeouts.Write)
	defer cancel()

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", s.collection.Name(), err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *MongoStore[T, D, P]) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx, s.timeouts.Read)
	defer cancel()
	return s.client.Ping(ctx, readpref.Primary())
}
