// Package store persists the clinic collections behind the REST API. Records
// are keyed by the hex form of a MongoDB ObjectID, stored as a string _id.
package store

import (
	"context"
	"curoo/internal/repository"
	"fmt"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store[T repository.Record, D repository.Draft[T], P repository.Patch[T]] interface {
	Create(ctx context.Context, draft D) (T, error)
	Get(ctx context.Context, id string) (T, error)
	List(ctx context.Context, q Query) ([]T, error)
	Update(ctx context.Context, id string, patch P) (T, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// Query narrows a listing. Keys are bson field names.
type Query struct {
	// Equals requires an exact string match.
	Equals map[string]string
	// Contains requires a case-insensitive substring match.
	Contains map[string]string
	// NewestFirst orders by created_at descending instead of insertion order.
	NewestFirst bool
}

func (q Query) filter() bson.M {
	f := bson.M{}
	for field, value := range q.Equals {
		f[field] = value
	}
	for field, value := range q.Contains {
		f[field] = bson.M{"$regex": regexp.QuoteMeta(value), "$options": "i"}
	}
	return f
}

func (q Query) matches(doc bson.M) bool {
	for field, value := range q.Equals {
		if s, _ := doc[field].(string); s != value {
			return false
		}
	}
	for field, value := range q.Contains {
		s, _ := doc[field].(string)
		if !strings.Contains(strings.ToLower(s), strings.ToLower(value)) {
			return false
		}
	}
	return true
}

// NewID returns a fresh ObjectID in hex form.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// ValidID reports whether id has the shape NewID produces.
func ValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

// toDoc returns the bson form of v. For a patch it holds only the fields the
// patch carries, which is exactly what $set needs.
func toDoc(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	return doc, nil
}
