package main

import (
	"carcloud/internal/auth"
	bookingshandler "carcloud/internal/bookings/handler"
	bookingsrepository "carcloud/internal/bookings/repository"
	bookingsservice "carcloud/internal/bookings/service"
	bookingsvalidator "carcloud/internal/bookings/validator"
	carshandler "carcloud/internal/cars/handler"
	carsrepository "carcloud/internal/cars/repository"
	carsservice "carcloud/internal/cars/service"
	carsvalidator "carcloud/internal/cars/validator"
	"carcloud/pkg/app"
	"carcloud/pkg/config"
	"carcloud/pkg/events"
)

const ServiceName = "carcloud"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	publisher := initPublisher(cfg)

	sessions := auth.NewSessionAuthenticator(cfg.JWTSecret, cfg.SessionTTL)
	guard := auth.NewGuard(sessions, cfg.Log)
	authHandler := auth.NewHandler(sessions, cfg.IsProduction(), cfg.Log)

	carRepo := carsrepository.NewMongoCarRepository(cfg)
	carService := carsservice.NewCarService(carRepo, carsvalidator.NewCarValidator(cfg.Log), cfg)
	carHandler := carshandler.NewCarHandler(carService, guard, cfg.Log)

	bookingRepo := bookingsrepository.NewMongoBookingRepository(cfg)
	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		carRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	bookingHandler := bookingshandler.NewBookingHandler(bookingService, guard, cfg.Log)

	cfg.Log.Info("Starting CarCloud service", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	})
	serverApp.SetApp(authHandler, carHandler, bookingHandler)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return events.NoopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create event publisher", "error", err)
	}

	cfg.Log.Info("Booking event publisher initialized",
		"brokers", cfg.KafkaBrokers,
		"topic", cfg.KafkaBookingTopic,
	)
	return publisher
}
