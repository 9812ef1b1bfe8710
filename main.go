// main.go
package main

import (
	"context"
	"log"

	"studio-booking/cmd"
	"studio-booking/internal/data/cache"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/gateway"
	"studio-booking/internal/wire"
	"studio-booking/pkg/database"
	"studio-booking/pkg/mailer"
	"studio-booking/pkg/utils"

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
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Connect to redis (holds checkout drafts)
	redisClient, err := cache.NewRedisClient(context.Background(), config.Redis.URL)
	if err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	logger.Info("Redis connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Payment gateway, draft cache, and confirmation mailer
	gw := gateway.NewClient(config.Iyzico, logger)
	if !gw.Configured() {
		logger.Warn("Payment gateway credentials missing, checkout will be unavailable")
	}
	drafts := cache.NewDraftStore(redisClient, logger)
	mail := mailer.NewMailer(config.Email, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, gw, drafts, mail, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
