package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "fastfix"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort        = "8080"
	DefaultMetricsPort = "9090"
	DefaultLogLevel    = "info"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Platform defaults seeded into the settings document on first run.
	// Amounts are decimal EGP strings; the storefront charged EGP 100 travel
	// fee, 15% commission, and required EGP 50 to accept jobs.
	DefaultTravelFee              = "100.00"
	DefaultCommissionRate         = "0.15"
	DefaultMinimumBalanceToAccept = "50.00"

	DefaultPaginationLimit = 100
)
