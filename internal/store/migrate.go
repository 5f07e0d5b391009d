package store

import (
	"context"
	"curoo/pkg/logger"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type collectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

var (
	DoctorsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "specialty", Value: 1}}},
	}

	ServicesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "department", Value: 1}}},
	}

	AppointmentsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
)

// Ids are stored as hex strings, not ObjectIDs.
var (
	DoctorValidator = bson.M{
		"$jsonSchema": bson.M{
			"bsonType":             "object",
			"required":             []string{"name", "specialty", "created_at"},
			"additionalProperties": true,
			"properties": bson.M{
				"_id":              bson.M{"bsonType": "string", "minLength": 24, "maxLength": 24},
				"name":             bson.M{"bsonType": "string", "minLength": 1},
				"specialty":        bson.M{"bsonType": "string", "minLength": 1},
				"available_days":   bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
				"consultation_fee": bson.M{"bsonType": "double", "minimum": 0},
				"created_at":       bson.M{"bsonType": "date"},
				"updated_at":       bson.M{"bsonType": "date"},
			},
		},
	}

	ServiceValidator = bson.M{
		"$jsonSchema": bson.M{
			"bsonType":             "object",
			"required":             []string{"name", "description", "available", "created_at"},
			"additionalProperties": true,
			"properties": bson.M{
				"_id":         bson.M{"bsonType": "string", "minLength": 24, "maxLength": 24},
				"name":        bson.M{"bsonType": "string", "minLength": 1},
				"description": bson.M{"bsonType": "string", "minLength": 1},
				"price":       bson.M{"bsonType": "double", "minimum": 0},
				"available":   bson.M{"bsonType": "bool"},
				"features":    bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
				"created_at":  bson.M{"bsonType": "date"},
				"updated_at":  bson.M{"bsonType": "date"},
			},
		},
	}

	AppointmentValidator = bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{
				"first_name",
				"last_name",
				"email",
				"phone",
				"department",
				"preferred_date",
				"preferred_time",
				"status",
				"created_at",
			},
			"additionalProperties": true,
			"properties": bson.M{
				"_id":            bson.M{"bsonType": "string", "minLength": 24, "maxLength": 24},
				"doctor_id":      bson.M{"bsonType": "string", "minLength": 24, "maxLength": 24},
				"preferred_date": bson.M{"bsonType": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
				"status": bson.M{
					"enum": []string{"pending", "confirmed", "cancelled", "completed"},
				},
				"created_at": bson.M{"bsonType": "date"},
				"updated_at": bson.M{"bsonType": "date"},
			},
		},
	}
)

// Migrate creates the collections with their schema validators and indexes.
// It is safe to run repeatedly.
func Migrate(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	collections := map[string]collectionDef{
		DoctorsCollection:      {Indexes: DoctorsIndexes, Validator: DoctorValidator},
		ServicesCollection:     {Indexes: ServicesIndexes, Validator: ServiceValidator},
		AppointmentsCollection: {Indexes: AppointmentsIndexes, Validator: AppointmentValidator},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
		log.Info("Collection ready", "collection", name, "indexes", len(def.Indexes))
	}

	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating collection validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	_, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	return err
}
