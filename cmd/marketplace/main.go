package main

import (
	"context"
	"time"

	accountshandler "fastfix/internal/accounts/handler"
	accountsrepo "fastfix/internal/accounts/repository"
	accountsservice "fastfix/internal/accounts/service"
	accountsvalidator "fastfix/internal/accounts/validator"
	bookingshandler "fastfix/internal/bookings/handler"
	bookingsrepo "fastfix/internal/bookings/repository"
	bookingsservice "fastfix/internal/bookings/service"
	bookingsvalidator "fastfix/internal/bookings/validator"
	platformhandler "fastfix/internal/platform/handler"
	platformrepo "fastfix/internal/platform/repository"
	platformservice "fastfix/internal/platform/service"
	wallethandler "fastfix/internal/wallet/handler"
	walletrepo "fastfix/internal/wallet/repository"
	walletservice "fastfix/internal/wallet/service"
	"fastfix/pkg/app"
	"fastfix/pkg/config"
	"fastfix/pkg/events"
	"fastfix/pkg/kafka"
	kafka_config "fastfix/pkg/kafka/config"
	kafka_middleware "fastfix/pkg/kafka/middleware"
	"fastfix/pkg/metrics"
)

const ServiceName = "marketplace"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Marketplace service")

	collector := metrics.NewCollector(cfg.Log)
	metricsServer := collector.StartServer(":" + cfg.MetricsPort)

	publisher, producer := initPublisher(cfg)

	settingsService, settingsHandler := initPlatform(cfg)
	accountService := initAccounts(cfg, publisher)
	walletService := initWallet(cfg, publisher, collector)
	bookingService := initBookings(cfg, publisher, collector)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := settingsService.EnsureDefaults(seedCtx); err != nil {
		cancel()
		cfg.Log.Fatal("Failed to seed platform settings", "error", err)
	}
	cancel()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
		accountshandler.NewAccountHandler(accountService, cfg.Log),
		wallethandler.NewWalletHandler(walletService, cfg.Log),
		settingsHandler,
	)

	serverApp.OnShutdown(func() {
		if producer != nil {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		collector.Shutdown(ctx, metricsServer)

		cfg.GracefulShutdown()
	})

	serverApp.Run()
}

func initPublisher(cfg *config.Config) (events.Publisher, *kafka.Producer) {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	if !kafkaCfg.Enabled {
		cfg.Log.Info("Kafka disabled, lifecycle events will not be published")
		return events.NewNoopPublisher(), nil
	}

	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.LifecycleTopic, kafkaCfg.LifecycleDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Kafka producer initialized",
		"brokers", kafkaCfg.Brokers,
		"topic", kafkaCfg.LifecycleTopic,
	)
	return events.NewKafkaPublisher(producer, cfg.Log), producer
}

func initPlatform(cfg *config.Config) (platformservice.SettingsService, *platformhandler.SettingsHandler) {
	settingsRepo := platformrepo.NewMongoSettingsRepository(cfg)
	settingsService := platformservice.NewSettingsService(settingsRepo, cfg)
	return settingsService, platformhandler.NewSettingsHandler(settingsService, cfg.Log)
}

func initAccounts(cfg *config.Config, publisher events.Publisher) accountsservice.AccountService {
	accountValidator := accountsvalidator.NewAccountValidator(cfg.Log)
	accountRepo := accountsrepo.NewMongoAccountRepository(cfg)
	return accountsservice.NewAccountService(accountRepo, accountValidator, publisher, cfg)
}

func initWallet(cfg *config.Config, publisher events.Publisher, collector *metrics.Collector) walletservice.WalletService {
	repo := walletrepo.NewMongoWalletRepository(cfg)
	return walletservice.NewWalletService(repo, publisher, collector, cfg)
}

func initBookings(cfg *config.Config, publisher events.Publisher, collector *metrics.Collector) bookingsservice.BookingService {
	bookingValidator := bookingsvalidator.NewBookingValidator(cfg.Log)
	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	accountRepo := accountsrepo.NewMongoAccountRepository(cfg)
	walletRepo := walletrepo.NewMongoWalletRepository(cfg)
	settingsRepo := platformrepo.NewMongoSettingsRepository(cfg)

	service := bookingsservice.NewBookingService(
		bookingRepo,
		accountRepo,
		walletRepo,
		settingsRepo,
		bookingValidator,
		publisher,
		collector,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return service
}
