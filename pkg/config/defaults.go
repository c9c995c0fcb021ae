package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017/?replicaSet=rs0"
	DefaultMongoDatabaseName = "stayspot"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultRunMigrations     = true

	DefaultPort      = "8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultJWTExpiresIn = 7 * 24 * time.Hour
	DefaultCookieSecure = false

	DefaultCORSAllowedOrigins = "http://localhost:3000,http://localhost:5173"

	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = 1 * time.Minute
	DefaultTrustedProxies    = ""

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultDefaultPageSize = 20
	DefaultMaxPageSize     = 20
	DefaultMaxPage         = 10
	DefaultMaxReviewImages = 10

	DefaultKafkaEnabled     = false
	DefaultKafkaEventsTopic = "stayspot.events"
	DefaultKafkaDLQTopic    = ""
)
