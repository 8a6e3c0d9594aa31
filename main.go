// main.go
package main

import (
	"context"
	"log"

	"movie-review/cmd"
	"movie-review/internal/data/repository"
	"movie-review/internal/wire"
	"movie-review/pkg/cache"
	"movie-review/pkg/database"
	"movie-review/pkg/queue"
	"movie-review/pkg/utils"

	"github.com/redis/go-redis/v9"
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

	// Connect to database
	db, err := database.InitDB(context.Background(), config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.Migrate {
		if err := database.EnsureSchema(context.Background(), db); err != nil {
			logger.Fatal("Failed to apply database schema", zap.Error(err))
		}
		logger.Info("Database schema applied")
	}

	// Optional response cache
	var rdb redis.Cmdable
	if config.Redis.Addr != "" {
		client, err := cache.NewRedisClient(context.Background(), config.Redis)
		if err != nil {
			logger.Warn("Response cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			rdb = client
			logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
		}
	}

	// Optional domain events
	var publisher queue.Publisher = queue.NoopPublisher{}
	if config.AMQP.URL != "" {
		amqpPublisher, err := queue.NewAMQPPublisher(config.AMQP.URL, config.AMQP.Exchange, logger)
		if err != nil {
			logger.Warn("Event publishing disabled", zap.Error(err))
		} else {
			publisher = amqpPublisher
			logger.Info("AMQP connected", zap.String("exchange", config.AMQP.Exchange))
		}
	}
	defer publisher.Close()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, publisher, rdb, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
