package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "carCloud-db"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort        = "5000"
	DefaultEnvironment = "development"

	EnvironmentProduction = "production"

	DefaultSessionTTL = 24 * time.Hour

	DefaultKafkaBookingTopic = "carcloud.booking-events"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// LatestCarsCount is the size of the landing-page highlight feed.
	LatestCarsCount = 6
)

var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"https://carcloud-7bc2a.web.app",
	"https://carcloud-7bc2a.firebaseapp.com",
}
