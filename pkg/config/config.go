package config

import (
	"fmt"
	"os"
	"regexp"
	"stayspot/pkg/client"
	kafka_config "stayspot/pkg/kafka/config"
	"stayspot/pkg/logger"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const minJWTSecretLength = 32

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration
	RunMigrations     bool

	Port      string
	LogLevel  string
	LogFormat string

	JWTSecret    string
	JWTExpiresIn time.Duration
	CookieSecure bool

	CORSAllowedOrigins []string

	RateLimitRequests int
	RateLimitWindow   time.Duration
	TrustedProxies    []string

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	DefaultPageSize int
	MaxPageSize     int
	MaxPage         int
	MaxReviewImages int

	KafkaEnabled     bool
	KafkaEventsTopic string
	KafkaDLQTopic    string
	Kafka            *kafka_config.Config

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the environment (and a .env file when present), validates the
// result and exits the process on invalid configuration.
func Load(serviceName string) *Config {
	envFileErr := godotenv.Load()

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),
		RunMigrations:     getEnvBool(EnvRunMigrations, DefaultRunMigrations),

		Port:      getEnvStr(EnvPort, DefaultPort),
		LogLevel:  getEnvStr(EnvLogLevel, DefaultLogLevel),
		LogFormat: getEnvStr(EnvLogFormat, DefaultLogFormat),

		JWTSecret:    getEnvStr(EnvJWTSecret, ""),
		JWTExpiresIn: getEnvDuration(EnvJWTExpiresIn, DefaultJWTExpiresIn),
		CookieSecure: getEnvBool(EnvCookieSecure, DefaultCookieSecure),

		CORSAllowedOrigins: splitList(getEnvStr(EnvCORSAllowedOrigins, DefaultCORSAllowedOrigins)),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),
		TrustedProxies:    splitList(getEnvStr(EnvTrustedProxies, DefaultTrustedProxies)),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		DefaultPageSize: getEnvNum(EnvDefaultPageSize, DefaultDefaultPageSize),
		MaxPageSize:     getEnvNum(EnvMaxPageSize, DefaultMaxPageSize),
		MaxPage:         getEnvNum(EnvMaxPage, DefaultMaxPage),
		MaxReviewImages: getEnvNum(EnvMaxReviewImages, DefaultMaxReviewImages),

		KafkaEnabled:     getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		KafkaEventsTopic: getEnvStr(EnvKafkaEventsTopic, DefaultKafkaEventsTopic),
		KafkaDLQTopic:    getEnvStr(EnvKafkaDLQTopic, DefaultKafkaDLQTopic),

		Client: client.NewClient(),
	}

	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: true,
		Service:   serviceName,
	})

	if envFileErr != nil && !os.IsNotExist(envFileErr) {
		cfg.Log.Warn("Failed to read .env file", "error", envFileErr)
	}

	if cfg.KafkaEnabled {
		cfg.Kafka = kafka_config.Load()
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if len(cfg.JWTSecret) < minJWTSecretLength {
		errors = append(errors, fmt.Sprintf("JWTSecret must be at least %d characters long", minJWTSecretLength))
	}
	if cfg.JWTExpiresIn <= 0 {
		errors = append(errors, fmt.Sprintf("JWTExpiresIn must be positive, got: %s", cfg.JWTExpiresIn))
	}

	positiveDurations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RateLimitWindow", cfg.RateLimitWindow},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
	}
	for _, d := range positiveDurations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}

	positiveNumbers := []struct {
		name  string
		value int
	}{
		{"RateLimitRequests", cfg.RateLimitRequests},
		{"MaxRequestSize", cfg.MaxRequestSize},
		{"DefaultPageSize", cfg.DefaultPageSize},
		{"MaxPageSize", cfg.MaxPageSize},
		{"MaxPage", cfg.MaxPage},
		{"MaxReviewImages", cfg.MaxReviewImages},
	}
	for _, n := range positiveNumbers {
		if n.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %d", n.name, n.value))
		}
	}
	if cfg.DefaultPageSize > cfg.MaxPageSize {
		errors = append(errors, fmt.Sprintf("DefaultPageSize (%d) must be <= MaxPageSize (%d)", cfg.DefaultPageSize, cfg.MaxPageSize))
	}

	if cfg.KafkaEnabled && cfg.KafkaEventsTopic == "" {
		errors = append(errors, "KafkaEventsTopic cannot be empty when Kafka is enabled")
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
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"run_migrations", cfg.RunMigrations,
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"jwt_secret_set", cfg.JWTSecret != "",
		"jwt_expires_in", cfg.JWTExpiresIn,
		"cookie_secure", cfg.CookieSecure,
		"cors_allowed_origins", cfg.CORSAllowedOrigins,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"trusted_proxies", cfg.TrustedProxies,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"default_page_size", cfg.DefaultPageSize,
		"max_page_size", cfg.MaxPageSize,
		"max_page", cfg.MaxPage,
		"max_review_images", cfg.MaxReviewImages,
		"kafka_enabled", cfg.KafkaEnabled,
		"kafka_events_topic", cfg.KafkaEventsTopic,
	)
	if cfg.Kafka != nil {
		cfg.Kafka.LogConfiguration(cfg.Log.Info)
	}
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
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
