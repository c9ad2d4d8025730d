package config

const (
	EnvStorageDriver = "STORAGE_DRIVER"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvDatabaseURL = "DATABASE_URL"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvCORSOrigins = "CORS_ORIGINS"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvEnforceBookingHorizon = "ENFORCE_BOOKING_HORIZON"
	EnvReservationLockTTL    = "RESERVATION_LOCK_TTL"
	EnvReservationLockWait   = "RESERVATION_LOCK_WAIT"

	EnvDefaultSlotDurationMin = "DEFAULT_SLOT_DURATION_MIN"
	EnvDefaultMaxAdvanceDays  = "DEFAULT_MAX_ADVANCE_DAYS"

	EnvKafkaEnabled           = "KAFKA_ENABLED"
	EnvKafkaReservationsTopic = "KAFKA_RESERVATIONS_TOPIC"

	EnvSeedDemoData = "SEED_DEMO_DATA"
)
