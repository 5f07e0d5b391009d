package store

import (
	"context"
	"curoo/internal/repository"
	"fmt"
	"slices"
	"time"

	apperrors "curoo/pkg/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore serves the API from an in-process repository. Queries are
// evaluated against each record's bson form so they behave as they do in
// MongoDB.
type MemoryStore[T repository.Record, D repository.Draft[T], P repository.Patch[T]] struct {
	repo *repository.Repository[T, D, P]
}

func NewMemoryStore[T repository.Record, D repository.Draft[T], P repository.Patch[T]](resource string, opts ...repository.Option) *MemoryStore[T, D, P] {
	opts = append([]repository.Option{
		repository.WithIDGenerator(NewID),
		repository.WithClock(func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }),
	}, opts...)
	return &MemoryStore[T, D, P]{repo: repository.New[T, D, P](resource, opts...)}
}

func (s *MemoryStore[T, D, P]) Create(_ context.Context, draft D) (T, error) {
	return s.repo.Create(draft)
}

func (s *MemoryStore[T, D, P]) Get(_ context.Context, id string) (T, error) {
	if !ValidID(id) {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}
	record, err := s.repo.GetByID(id)
	return record, notFound(err, id)
}

func (s *MemoryStore[T, D, P]) List(_ context.Context, q Query) ([]T, error) {
	type entry struct {
		record  T
		created time.Time
	}

	var entries []entry
	for _, record := range s.repo.List() {
		doc, err := toDoc(record)
		if err != nil {
			return nil, err
		}
		if !q.matches(doc) {
			continue
		}
		created, _ := doc["created_at"].(primitive.DateTime)
		entries = append(entries, entry{record: record, created: created.Time()})
	}

	if q.NewestFirst {
		slices.SortStableFunc(entries, func(a, b entry) int {
			return b.created.Compare(a.created)
		})
	}

	records := make([]T, 0, len(entries))
	for _, e := range entries {
		records = append(records, e.record)
	}
	return records, nil
}

func (s *MemoryStore[T, D, P]) Update(_ context.Context, id string, patch P) (T, error) {
	if !ValidID(id) {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrInvalidID, id)
	}
	record, err := s.repo.Update(id, patch)
	return record, notFound(err, id)
}

func (s *MemoryStore[T, D, P]) Delete(_ context.Context, id string) error {
	if !ValidID(id) {
		return fmt.Errorf("%w: %s", ErrInvalidID, id)
	}
	return notFound(s.repo.Remove(id), id)
}

func (s *MemoryStore[T, D, P]) Ping(context.Context) error {
	return nil
}

func notFound(err error, id string) error {
	if apperrors.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}
