package main

import (
	"context"
	bookingshandler "stayspot/internal/bookings/handler"
	bookingsrepo "stayspot/internal/bookings/repository"
	bookingsservice "stayspot/internal/bookings/service"
	bookingsvalidator "stayspot/internal/bookings/validator"
	imageshandler "stayspot/internal/images/handler"
	imagesrepo "stayspot/internal/images/repository"
	imagesservice "stayspot/internal/images/service"
	imagesvalidator "stayspot/internal/images/validator"
	mongoMigration "stayspot/internal/migrations/mongo"
	reviewshandler "stayspot/internal/reviews/handler"
	reviewsrepo "stayspot/internal/reviews/repository"
	reviewsservice "stayspot/internal/reviews/service"
	reviewsvalidator "stayspot/internal/reviews/validator"
	"stayspot/internal/spots/filter"
	spotshandler "stayspot/internal/spots/handler"
	spotsrepo "stayspot/internal/spots/repository"
	spotsservice "stayspot/internal/spots/service"
	spotsvalidator "stayspot/internal/spots/validator"
	usershandler "stayspot/internal/users/handler"
	usersrepo "stayspot/internal/users/repository"
	usersservice "stayspot/internal/users/service"
	usersvalidator "stayspot/internal/users/validator"
	"stayspot/pkg/app"
	"stayspot/pkg/auth"
	"stayspot/pkg/config"
	"stayspot/pkg/contracts"
	"stayspot/pkg/events"
	"stayspot/pkg/kafka"
	kafka_middleware "stayspot/pkg/kafka/middleware"
	"time"
)

const (
	ServiceName = "stayspot-api"

	migrationTimeout = 2 * time.Minute
)

type repositories struct {
	users        usersrepo.UserRepository
	spots        spotsrepo.SpotRepository
	spotImages   imagesrepo.SpotImageRepository
	reviews      reviewsrepo.ReviewRepository
	reviewImages imagesrepo.ReviewImageRepository
	bookings     bookingsrepo.BookingRepository
	bookingLocks bookingsrepo.BookingLockRepository
}

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.Log.Info("Starting StaySpot API")

	if cfg.RunMigrations {
		runMigrations(cfg)
	}

	publisher := newPublisher(cfg)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn, cfg.CookieSecure)

	application := app.NewApplication(cfg)
	application.SetApp(tokens, publisher, initHandlers(cfg, newRepositories(cfg), tokens, publisher)...)
	application.Run()
}

func runMigrations(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
}

// newPublisher returns the Kafka publisher when enabled and a logging no-op
// otherwise.
func newPublisher(cfg *config.Config) events.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, domain events are only logged")
		return events.NewNoopPublisher(cfg.Log)
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.KafkaEventsTopic, cfg.KafkaDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if cfg.Kafka.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Kafka publisher initialized", "topic", cfg.KafkaEventsTopic)
	return events.NewKafkaPublisher(producer, ServiceName, cfg.Kafka.ProducerWriteTimeout, cfg.Log)
}

func newRepositories(cfg *config.Config) repositories {
	return repositories{
		users:        usersrepo.NewMongoUserRepository(cfg),
		spots:        spotsrepo.NewMongoSpotRepository(cfg),
		spotImages:   imagesrepo.NewMongoSpotImageRepository(cfg),
		reviews:      reviewsrepo.NewMongoReviewRepository(cfg),
		reviewImages: imagesrepo.NewMongoReviewImageRepository(cfg),
		bookings:     bookingsrepo.NewMongoBookingRepository(cfg),
		bookingLocks: bookingsrepo.NewMongoBookingLockRepository(cfg),
	}
}

func initHandlers(cfg *config.Config, repos repositories, tokens *auth.TokenManager, publisher events.Publisher) []contracts.Handler {
	userService := usersservice.NewUserService(
		repos.users,
		usersvalidator.NewUserValidator(),
		publisher,
		cfg,
	)

	spotService := spotsservice.NewSpotService(
		repos.spots,
		spotsservice.Stores{
			Users:         repos.users,
			Reviews:       repos.reviews,
			SpotImages:    repos.spotImages,
			ReviewImages:  repos.reviewImages,
			Bookings:      repos.bookings,
			BookingLedger: repos.bookingLocks,
		},
		spotsvalidator.NewSpotValidator(),
		publisher,
		cfg,
	)

	reviewService := reviewsservice.NewReviewService(
		repos.reviews,
		reviewsservice.Stores{
			Spots:        repos.spots,
			Users:        repos.users,
			SpotImages:   repos.spotImages,
			ReviewImages: repos.reviewImages,
			SpotLedger:   repos.bookingLocks,
		},
		reviewsvalidator.NewReviewValidator(),
		publisher,
		cfg,
	)

	imageService := imagesservice.NewImageService(
		repos.spotImages,
		repos.reviewImages,
		repos.spots,
		repos.bookingLocks,
		repos.reviews,
		imagesvalidator.NewImageValidator(),
		publisher,
		cfg,
	)

	bookingService := bookingsservice.NewBookingService(
		repos.bookings,
		repos.bookingLocks,
		bookingsservice.Stores{
			Spots:      repos.spots,
			Users:      repos.users,
			SpotImages: repos.spotImages,
		},
		bookingsvalidator.NewBookingValidator(),
		publisher,
		cfg,
	)

	limits := filter.Limits{
		DefaultSize: cfg.DefaultPageSize,
		MaxSize:     cfg.MaxPageSize,
		MaxPage:     cfg.MaxPage,
	}

	cfg.Log.Info("Services initialized")
	return []contracts.Handler{
		usershandler.NewSessionHandler(userService, tokens, cfg.Log),
		spotshandler.NewSpotHandler(spotService, limits, cfg.Log),
		reviewshandler.NewReviewHandler(reviewService, cfg.Log),
		imageshandler.NewImageHandler(imageService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
	}
}
