package store

import (
	"context"
	"os"
	"testing"
	"time"

	"curoo/pkg/logger"
	"curoo/pkg/model"

	mongodb "curoo/pkg/db/mongo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// Runs only when TEST_MONGO_URI points at a reachable server.
func newMongoDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, err := mongodb.Connect(ctx, logger.Discard(), uri, 10*time.Second)
	require.NoError(t, err)

	db := client.Database("curoo_test_" + NewID())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("warning: failed to drop test database: %v", err)
		}
		_ = client.Disconnect(ctx)
	})

	require.NoError(t, Migrate(ctx, db, logger.Discard()))
	return db
}

func TestMongoStore_Appointments(t *testing.T) {
	db := newMongoDatabase(t)
	ctx := context.Background()
	s := NewMongoStore[model.Appointment, model.AppointmentDraft, model.AppointmentUpdate](
		db, AppointmentsCollection, Timeouts{Read: 5 * time.Second, Write: 5 * time.Second})

	require.NoError(t, s.Ping(ctx))

	first, err := s.Create(ctx, draft("john", "Cardiology"))
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.Create(ctx, draft("jane", "Neurology"))
	require.NoError(t, err)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "john", got.FirstName)
	assert.Equal(t, model.StatusPending, got.Status)

	confirmed := model.StatusConfirmed
	updated, err := s.Update(ctx, second.ID, model.AppointmentUpdate{Status: &confirmed})
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, updated.Status)
	assert.Equal(t, "jane", updated.FirstName)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt) || updated.UpdatedAt.Equal(updated.CreatedAt))

	newest, err := s.List(ctx, Query{NewestFirst: true})
	require.NoError(t, err)
	require.Len(t, newest, 2)
	assert.Equal(t, second.ID, newest[0].ID)

	pending, err := s.List(ctx, Query{Equals: map[string]string{"status": "pending"}})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)

	neuro, err := s.List(ctx, Query{Contains: map[string]string{"department": "NEURO"}})
	require.NoError(t, err)
	assert.Len(t, neuro, 1)

	require.NoError(t, s.Delete(ctx, first.ID))
	_, err = s.Get(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, first.ID), ErrNotFound)
	_, err = s.Update(ctx, "bad", model.AppointmentUpdate{})
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newMongoDatabase(t)
	require.NoError(t, Migrate(context.Background(), db, logger.Discard()))

	names, err := db.ListCollectionNames(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{DoctorsCollection, ServicesCollection, AppointmentsCollection}, names)
}
