package main

import (
	"context"
	"curoo/internal/api"
	"curoo/internal/store"
	"curoo/pkg/app"
	"curoo/pkg/config"
	"curoo/pkg/events"
	"curoo/pkg/kafka"
	"curoo/pkg/model"

	mongodb "curoo/pkg/db/mongo"
)

const ServiceName = "api"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting persistence service", "store_backend", cfg.StoreBackend)

	var shutdownHooks []func(context.Context) error

	stores, closeStores := initStores(cfg)
	if closeStores != nil {
		shutdownHooks = append(shutdownHooks, closeStores)
	}

	publisher, closePublisher := initPublisher(cfg)
	if closePublisher != nil {
		shutdownHooks = append(shutdownHooks, closePublisher)
	}

	router := api.NewRouter(stores, publisher, cfg.Log)
	health := api.NewHealthHandler(stores.Doctors, cfg.Log)

	serverApp := app.NewApplication(cfg, health, router)
	for _, hook := range shutdownHooks {
		serverApp.OnShutdown(hook)
	}
	serverApp.Run()
}

func initStores(cfg *config.Config) (api.Stores, func(context.Context) error) {
	if cfg.StoreBackend == config.StoreMemory {
		cfg.Log.Warn("Using in-memory store, data is lost on restart")
		return api.NewMemoryStores(), nil
	}

	client, err := mongodb.Connect(context.Background(), cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		cfg.Log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	db := client.Database(cfg.MongoDatabaseName)
	if err := store.Migrate(context.Background(), db, cfg.Log); err != nil {
		cfg.Log.Fatal("Mongo migration failed", "error", err)
	}

	timeouts := store.Timeouts{Read: cfg.RequestTimeout, Write: cfg.RequestTimeout}
	stores := api.Stores{
		Doctors:      store.NewMongoStore[model.Doctor, model.DoctorDraft, model.DoctorUpdate](db, store.DoctorsCollection, timeouts),
		Services:     store.NewMongoStore[model.Service, model.ServiceDraft, model.ServiceUpdate](db, store.ServicesCollection, timeouts),
		Appointments: store.NewMongoStore[model.Appointment, model.AppointmentDraft, model.AppointmentUpdate](db, store.AppointmentsCollection, timeouts),
	}

	cfg.Log.Info("Mongo stores initialized", "database", cfg.MongoDatabaseName)
	return stores, client.Disconnect
}

func initPublisher(cfg *config.Config) (events.Publisher, func(context.Context) error) {
	if !cfg.KafkaEnabled {
		return events.NewLogPublisher(cfg.Log), nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka.LoggingMiddleware(cfg.Log))

	publisher := events.NewKafkaPublisher(producer, ServiceName)
	return publisher, func(context.Context) error { return publisher.Close() }
}
