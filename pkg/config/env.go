package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"
	EnvRunMigrations     = "RUN_MIGRATIONS"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvJWTSecret    = "JWT_SECRET"
	EnvJWTExpiresIn = "JWT_EXPIRES_IN"
	EnvCookieSecure = "COOKIE_SECURE"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"
	EnvTrustedProxies    = "TRUSTED_PROXIES"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultPageSize = "DEFAULT_PAGE_SIZE"
	EnvMaxPageSize     = "MAX_PAGE_SIZE"
	EnvMaxPage         = "MAX_PAGE"
	EnvMaxReviewImages = "MAX_REVIEW_IMAGES"

	EnvKafkaEnabled     = "KAFKA_ENABLED"
	EnvKafkaEventsTopic = "KAFKA_EVENTS_TOPIC"
	EnvKafkaDLQTopic    = "KAFKA_DLQ_TOPIC"
)
