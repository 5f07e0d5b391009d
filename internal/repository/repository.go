// Package repository holds the in-memory owners of the console's entity
// collections. A Repository keeps records in insertion order, assigns ids on
// create and answers point and list queries.
package repository

import (
	"curoo/pkg/logger"
	"curoo/pkg/validation"
	"fmt"
	"sync"
	"time"

	apperrors "curoo/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Record is an entity with a stable identifier.
type Record interface {
	Key() string
}

// Records holding slices or pointers implement Cloner so that callers never
// share storage with the collection.
type Cloner[T any] interface {
	Clone() T
}

func clone[T any](record T) T {
	if c, ok := any(record).(Cloner[T]); ok {
		return c.Clone()
	}
	return record
}

// Draft builds a record of type T once an id has been assigned.
type Draft[T Record] interface {
	Build(id string, now time.Time) T
}

// Patch merges the fields it carries into an existing record.
type Patch[T Record] interface {
	Apply(current T, now time.Time) T
}

type Repository[T Record, D Draft[T], P Patch[T]] struct {
	resource string

	mu      sync.RWMutex
	records []T
	index   map[string]int

	validate *validator.Validate
	newID    func() string
	now      func() time.Time
	log      *logger.Logger
}

type Option func(*options)

type options struct {
	newID func() string
	now   func() time.Time
	log   *logger.Logger
}

// WithIDGenerator overrides the UUID generator. Collisions with existing ids
// are still detected and retried.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(o *options) { o.now = fn }
}

func WithLogger(log *logger.Logger) Option {
	return func(o *options) { o.log = log }
}

// New creates an empty repository. resource names the entity in errors and logs.
func New[T Record, D Draft[T], P Patch[T]](resource string, opts ...Option) *Repository[T, D, P] {
	o := options{
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
		log:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Repository[T, D, P]{
		resource: resource,
		index:    make(map[string]int),
		validate: validation.New(),
		newID:    o.newID,
		now:      o.now,
		log:      o.log.With("resource", resource),
	}
}

func (r *Repository[T, D, P]) Resource() string {
	return r.resource
}

func (r *Repository[T, D, P]) Create(draft D) (T, error) {
	var zero T
	if err := validation.Struct(r.validate, draft); err != nil {
		r.log.Warn("Create rejected", "error", err)
		return zero, apperrors.Validation(fmt.Sprintf("Invalid %s", r.resource), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.uniqueID()
	if err != nil {
		return zero, err
	}

	record := draft.Build(id, r.now())
	r.index[id] = len(r.records)
	r.records = append(r.records, record)

	r.log.Info("Record created", "id", id, "count", len(r.records))
	return clone(record), nil
}

func (r *Repository[T, D, P]) Update(id string, patch P) (T, error) {
	var zero T

	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return zero, apperrors.NotFoundWithID(r.resource, id)
	}

	updated := patch.Apply(r.records[pos], r.now())
	r.records[pos] = updated

	r.log.Info("Record updated", "id", id)
	return clone(updated), nil
}

func (r *Repository[T, D, P]) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.index[id]
	if !ok {
		return apperrors.NotFoundWithID(r.resource, id)
	}

	r.records = append(r.records[:pos], r.records[pos+1:]...)
	delete(r.index, id)
	for i := pos; i < len(r.records); i++ {
		r.index[r.records[i].Key()] = i
	}

	r.log.Info("Record removed", "id", id, "count", len(r.records))
	return nil
}

func (r *Repository[T, D, P]) GetByID(id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.index[id]
	if !ok {
		var zero T
		return zero, apperrors.NotFoundWithID(r.resource, id)
	}
	return clone(r.records[pos]), nil
}

// List returns a copy of every record in insertion order.
func (r *Repository[T, D, P]) List() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]T, len(r.records))
	for i, record := range r.records {
		out[i] = clone(record)
	}
	return out
}

// Filter returns the records accepted by keep, in insertion order.
func (r *Repository[T, D, P]) Filter(keep func(T) bool) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []T
	for _, record := range r.records {
		if keep(record) {
			out = append(out, clone(record))
		}
	}
	return out
}

func (r *Repository[T, D, P]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Check reports whether Load would accept records, without touching the
// collection. Blank and repeated ids are rejected.
func (r *Repository[T, D, P]) Check(records []T) error {
	_, err := r.indexOf(records)
	return err
}

// Load replaces the collection with records that already carry ids, such as
// listings fetched from the persistence service. Records rejected by Check
// leave the collection untouched.
func (r *Repository[T, D, P]) Load(records []T) error {
	index, err := r.indexOf(records)
	if err != nil {
		return err
	}

	loaded := make([]T, len(records))
	for i, record := range records {
		loaded[i] = clone(record)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = loaded
	r.index = index

	r.log.Info("Collection loaded", "count", len(records))
	return nil
}

func (r *Repository[T, D, P]) indexOf(records []T) (map[string]int, error) {
	index := make(map[string]int, len(records))
	for i, record := range records {
		id := record.Key()
		if id == "" {
			return nil, apperrors.Validation(fmt.Sprintf("%s at position %d has no id", r.resource, i), nil)
		}
		if _, dup := index[id]; dup {
			return nil, apperrors.Validation(fmt.Sprintf("duplicate %s id %q", r.resource, id), nil)
		}
		index[id] = i
	}
	return index, nil
}

const maxIDAttempts = 8

func (r *Repository[T, D, P]) uniqueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := r.newID()
		if _, taken := r.index[id]; !taken && id != "" {
			return id, nil
		}
		r.log.Warn("Generated id collided, retrying", "id", id)
	}
	return "", apperrors.Internal(fmt.Sprintf("could not generate a unique %s id", r.resource), nil)
}
