package main

import (
	"context"
	"curoo/internal/store"
	"curoo/pkg/config"
	"time"

	mongodb "curoo/pkg/db/mongo"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.Log.Info("Starting Mongo migration job")

	client, err := mongodb.Connect(ctx, cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			cfg.Log.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}()

	if err := store.Migrate(ctx, client.Database(cfg.MongoDatabaseName), cfg.Log); err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		return
	}
	cfg.Log.Info("Migration completed successfully")
}
