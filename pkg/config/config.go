package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"spacebook/pkg/client"
	"spacebook/pkg/logger"
)

type Config struct {
	StorageDriver string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	DatabaseURL string

	Port string

	CORSOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	EnforceBookingHorizon bool
	ReservationLockTTL    time.Duration
	ReservationLockWait   time.Duration

	DefaultSlotDurationMin int
	DefaultMaxAdvanceDays  int

	KafkaEnabled           bool
	KafkaReservationsTopic string

	SeedDemoData bool

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		StorageDriver: strings.ToLower(getEnvStr(EnvStorageDriver, DefaultStorageDriver)),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		DatabaseURL: getEnvStr(EnvDatabaseURL, DefaultDatabaseURL),

		Port: getEnvStr(EnvPort, DefaultPort),

		CORSOrigins: ParseCSV(getEnvStr(EnvCORSOrigins, DefaultCORSOrigins)),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		EnforceBookingHorizon: getEnvBool(EnvEnforceBookingHorizon, DefaultEnforceBookingHorizon),
		ReservationLockTTL:    getEnvDuration(EnvReservationLockTTL, DefaultReservationLockTTL),
		ReservationLockWait:   getEnvDuration(EnvReservationLockWait, DefaultReservationLockWait),

		DefaultSlotDurationMin: getEnvNum(EnvDefaultSlotDurationMin, DefaultSlotDurationMin),
		DefaultMaxAdvanceDays:  getEnvNum(EnvDefaultMaxAdvanceDays, DefaultMaxAdvanceDays),

		KafkaEnabled:           getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		KafkaReservationsTopic: getEnvStr(EnvKafkaReservationsTopic, DefaultKafkaReservationsTopic),

		SeedDemoData: getEnvBool(EnvSeedDemoData, DefaultSeedDemoData),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// SetStorage opens the client for the configured storage driver. The memory
// driver needs no connection.
func (cfg *Config) SetStorage() {
	switch cfg.StorageDriver {
	case StorageMongo:
		cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
	case StoragePostgres:
		cfg.Client.SetPostgres(cfg.Log, cfg.DatabaseURL, cfg.MongoConnTimeout)
	}
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	switch cfg.StorageDriver {
	case StorageMemory:
	case StorageMongo:
		if cfg.MongoURI == "" {
			errors = append(errors, "MongoURI cannot be empty")
		} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
			errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactURI(cfg.MongoURI)))
		}
		if cfg.MongoDatabaseName == "" {
			errors = append(errors, "MongoDatabaseName cannot be empty")
		}
	case StoragePostgres:
		if !regexp.MustCompile(`^postgres(ql)?://`).MatchString(cfg.DatabaseURL) {
			errors = append(errors, fmt.Sprintf("DatabaseURL must start with 'postgres://' or 'postgresql://', got: %s", redactURI(cfg.DatabaseURL)))
		}
	default:
		errors = append(errors, fmt.Sprintf("StorageDriver must be one of [memory, mongo, postgres], got: %s", cfg.StorageDriver))
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}
	if cfg.ReservationLockTTL <= 0 {
		errors = append(errors, fmt.Sprintf("ReservationLockTTL must be positive, got: %s", cfg.ReservationLockTTL))
	}
	if cfg.ReservationLockWait <= 0 {
		errors = append(errors, fmt.Sprintf("ReservationLockWait must be positive, got: %s", cfg.ReservationLockWait))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.DefaultSlotDurationMin <= 0 {
		errors = append(errors, fmt.Sprintf("DefaultSlotDurationMin must be positive, got: %d", cfg.DefaultSlotDurationMin))
	}
	if cfg.DefaultMaxAdvanceDays < 0 {
		errors = append(errors, fmt.Sprintf("DefaultMaxAdvanceDays cannot be negative, got: %d", cfg.DefaultMaxAdvanceDays))
	}

	if cfg.KafkaEnabled && cfg.KafkaReservationsTopic == "" {
		errors = append(errors, "KafkaReservationsTopic cannot be empty when Kafka is enabled")
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
		"storage_driver", cfg.StorageDriver,
		"mongo_uri", redactURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"database_url", redactURI(cfg.DatabaseURL),
		"port", cfg.Port,
		"cors_origins", cfg.CORSOrigins,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"enforce_booking_horizon", cfg.EnforceBookingHorizon,
		"reservation_lock_ttl", cfg.ReservationLockTTL,
		"reservation_lock_wait", cfg.ReservationLockWait,
		"default_slot_duration_min", cfg.DefaultSlotDurationMin,
		"default_max_advance_days", cfg.DefaultMaxAdvanceDays,
		"kafka_enabled", cfg.KafkaEnabled,
		"kafka_reservations_topic", cfg.KafkaReservationsTopic,
		"seed_demo_data", cfg.SeedDemoData,
	)
}

var credentialRegex = regexp.MustCompile(`^([a-z+]+://)[^:/@]+:[^@]+@`)

func redactURI(uri string) string {
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

// ParseCSV splits a comma separated list, dropping blanks.
func ParseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
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

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}
