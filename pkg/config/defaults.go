package config

import "time"

const (
	DefaultPort     = "8000"
	DefaultLogLevel = "info"

	DefaultStoreBackend = StoreMongo

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "curoo"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultAPIBaseURL = "http://localhost:8000"
	DefaultAPITimeout = 10 * time.Second

	DefaultBookingResetDelay = 3 * time.Second
	DefaultExportDir         = "."

	DefaultRateLimitRPS   = 20
	DefaultRateLimitBurst = 40

	DefaultIdempotencyTTL = 24 * time.Hour

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 5 * 1024 * 1024 // doctor images arrive as data URIs

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultKafkaEnabled = false
	DefaultKafkaBrokers = "localhost:9092"
	DefaultKafkaTopic   = "curoo.appointments"
)
