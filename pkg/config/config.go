package config

import (
	"curoo/pkg/logger"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends for the persistence service.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port string

	StoreBackend string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	APIBaseURL string
	APITimeout time.Duration

	BookingResetDelay time.Duration
	ExportDir         string

	RateLimitRPS   int
	RateLimitBurst int

	IdempotencyTTL time.Duration

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string

	Log *logger.Logger
}

// Load reads configuration from the environment, after merging any .env file
// found in the working directory. Invalid configuration is fatal.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := FromEnv(serviceName)
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds a Config without validating it.
func FromEnv(serviceName string) *Config {
	return &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		StoreBackend: strings.ToLower(getEnvStr(EnvStoreBackend, DefaultStoreBackend)),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		APIBaseURL: strings.TrimRight(getEnvStr(EnvAPIBaseURL, DefaultAPIBaseURL), "/"),
		APITimeout: getEnvDuration(EnvAPITimeout, DefaultAPITimeout),

		BookingResetDelay: getEnvDuration(EnvBookingResetDelay, DefaultBookingResetDelay),
		ExportDir:         getEnvStr(EnvExportDir, DefaultExportDir),

		RateLimitRPS:   getEnvNum(EnvRateLimitRPS, DefaultRateLimitRPS),
		RateLimitBurst: getEnvNum(EnvRateLimitBurst, DefaultRateLimitBurst),

		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		KafkaEnabled: getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		KafkaBrokers: splitList(getEnvStr(EnvKafkaBrokers, DefaultKafkaBrokers)),
		KafkaTopic:   getEnvStr(EnvKafkaTopic, DefaultKafkaTopic),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
	}
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.StoreBackend != StoreMongo && cfg.StoreBackend != StoreMemory {
		errors = append(errors, fmt.Sprintf("StoreBackend must be %q or %q, got: %s", StoreMongo, StoreMemory, cfg.StoreBackend))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if u, err := url.Parse(cfg.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("APIBaseURL must be an absolute URL, got: %s", cfg.APIBaseURL))
	}

	positive := map[string]time.Duration{
		"MongoConnTimeout":  cfg.MongoConnTimeout,
		"APITimeout":        cfg.APITimeout,
		"BookingResetDelay": cfg.BookingResetDelay,
		"IdempotencyTTL":    cfg.IdempotencyTTL,
		"RequestTimeout":    cfg.RequestTimeout,
		"ReadTimeout":       cfg.ReadTimeout,
		"WriteTimeout":      cfg.WriteTimeout,
		"IdleTimeout":       cfg.IdleTimeout,
		"ShutdownTimeout":   cfg.ShutdownTimeout,
	}
	for _, name := range []string{"MongoConnTimeout", "APITimeout", "BookingResetDelay", "IdempotencyTTL", "RequestTimeout", "ReadTimeout", "WriteTimeout", "IdleTimeout", "ShutdownTimeout"} {
		if positive[name] <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", name, positive[name]))
		}
	}

	if cfg.RateLimitRPS <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRPS must be positive, got: %d", cfg.RateLimitRPS))
	}
	if cfg.RateLimitBurst < cfg.RateLimitRPS {
		errors = append(errors, fmt.Sprintf("RateLimitBurst (%d) must be >= RateLimitRPS (%d)", cfg.RateLimitBurst, cfg.RateLimitRPS))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			errors = append(errors, "KafkaBrokers cannot be empty when Kafka is enabled")
		}
		if cfg.KafkaTopic == "" {
			errors = append(errors, "KafkaTopic cannot be empty when Kafka is enabled")
		}
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"store_backend", cfg.StoreBackend,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"api_base_url", cfg.APIBaseURL,
		"api_timeout", cfg.APITimeout,
		"booking_reset_delay", cfg.BookingResetDelay,
		"export_dir", cfg.ExportDir,
		"rate_limit_rps", cfg.RateLimitRPS,
		"rate_limit_burst", cfg.RateLimitBurst,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"kafka_enabled", cfg.KafkaEnabled,
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_topic", cfg.KafkaTopic,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
