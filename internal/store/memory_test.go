package store

import (
	"context"
	"testing"
	"time"

	"curoo/internal/repository"
	"curoo/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type tickingClock struct {
	t time.Time
}

func (c *tickingClock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newAppointments() *MemoryStore[model.Appointment, model.AppointmentDraft, model.AppointmentUpdate] {
	clock := &tickingClock{t: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)}
	return NewMemoryStore[model.Appointment, model.AppointmentDraft, model.AppointmentUpdate](
		"Appointment", repository.WithClock(clock.now))
}

func draft(first, department string) model.AppointmentDraft {
	return model.AppointmentDraft{
		FirstName: first, LastName: "Doe", Email: first + "@email.com", Phone: "555",
		Department: department, PreferredDate: "2026-11-01", PreferredTime: "10:00 AM",
	}
}

func TestMemoryStore_CreateAssignsObjectIDs(t *testing.T) {
	s := newAppointments()
	ctx := context.Background()

	created, err := s.Create(ctx, draft("John", "Cardiology"))
	require.NoError(t, err)
	assert.True(t, ValidID(created.ID), "expected ObjectID hex, got %q", created.ID)
	assert.Equal(t, model.StatusPending, created.Status)

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestMemoryStore_IDErrors(t *testing.T) {
	s := newAppointments()
	ctx := context.Background()
	status := model.StatusConfirmed

	_, err := s.Get(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = s.Get(ctx, NewID())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Update(ctx, NewID(), model.AppointmentUpdate{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "123"), ErrInvalidID)
	assert.ErrorIs(t, s.Delete(ctx, NewID()), ErrNotFound)
}

func TestMemoryStore_ListQuery(t *testing.T) {
	s := newAppointments()
	ctx := context.Background()

	first, err := s.Create(ctx, draft("John", "Cardiology"))
	require.NoError(t, err)
	second, err := s.Create(ctx, draft("Jane", "Pediatrics"))
	require.NoError(t, err)
	third, err := s.Create(ctx, draft("Mike", "Pediatric Surgery"))
	require.NoError(t, err)

	confirmed := model.StatusConfirmed
	_, err = s.Update(ctx, second.ID, model.AppointmentUpdate{Status: &confirmed})
	require.NoError(t, err)

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"insertion order", Query{}, []string{first.ID, second.ID, third.ID}},
		{"newest first", Query{NewestFirst: true}, []string{third.ID, second.ID, first.ID}},
		{"equals", Query{Equals: map[string]string{"status": "pending"}}, []string{first.ID, third.ID}},
		{"contains ignores case", Query{Contains: map[string]string{"department": "PEDIATRIC"}}, []string{second.ID, third.ID}},
		{"contains is literal", Query{Contains: map[string]string{"department": "."}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.query)
			require.NoError(t, err)

			ids := []string{}
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestMemoryStore_PartialUpdate(t *testing.T) {
	s := newAppointments()
	ctx := context.Background()

	created, err := s.Create(ctx, draft("John", "Cardiology"))
	require.NoError(t, err)

	slot := "03:00 PM"
	updated, err := s.Update(ctx, created.ID, model.AppointmentUpdate{PreferredTime: &slot})
	require.NoError(t, err)

	assert.Equal(t, slot, updated.PreferredTime)
	assert.Equal(t, created.PreferredDate, updated.PreferredDate)
	assert.Equal(t, model.StatusPending, updated.Status)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestQueryFilter(t *testing.T) {
	q := Query{
		Equals:   map[string]string{"status": "pending"},
		Contains: map[string]string{"department": "a+b"},
	}
	f := q.filter()

	assert.Equal(t, "pending", f["status"])
	assert.Equal(t, `a\+b`, f["department"].(bson.M)["$regex"])
}
