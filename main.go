// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"salon-booking/cmd"
	"salon-booking/internal/data/cache"
	"salon-booking/internal/data/repository"
	"salon-booking/internal/event"
	"salon-booking/internal/wire"
	"salon-booking/pkg/database"
	"salon-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	// Price cache; without Redis every lookup goes to the database
	var store cache.Store
	if config.Redis.Addr != "" {
		store = cache.NewRedisStore(config.Redis)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := cache.Ping(pingCtx, store); err != nil {
			logger.Warn("Redis unreachable, price cache will fall back to database", zap.Error(err))
		} else {
			logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))
		}
		cancel()
	}
	prices := cache.NewPriceCache(store, repos.Service, config.Pricing.PriceCacheTTL, logger)

	// Booking events
	var publisher event.Publisher = event.Noop{}
	if len(config.Kafka.Brokers) > 0 {
		publisher = event.NewProducer(config.Kafka.Brokers, config.Kafka.BookingTopic, logger)
		logger.Info("Publishing booking events",
			zap.Strings("brokers", config.Kafka.Brokers),
			zap.String("topic", config.Kafka.BookingTopic),
		)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Failed to close event publisher", zap.Error(err))
		}
	}()

	// Wire all dependencies
	app := wire.Wiring(repos, prices, publisher, config, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
