// main.go
package main

import (
	"log"

	"go.uber.org/zap"

	"movie-match/cmd"
	"movie-match/internal/data/provider"
	"movie-match/internal/session"
	"movie-match/internal/wire"
	"movie-match/pkg/utils"
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

	// Build the recommendation provider
	recommender := provider.NewRecommendProvider(config.Recommend, logger)

	// Config check that every new session runs before its first search
	checker := session.ConfigCheckFunc(func() session.CheckResult {
		missing := config.MissingKeys()
		return session.CheckResult{Valid: len(missing) == 0, MissingKeys: missing}
	})

	if missing := config.MissingKeys(); len(missing) > 0 {
		logger.Warn("Recommendation backend not fully configured",
			zap.Strings("missing", missing),
		)
	}

	// Wire all dependencies
	app := wire.Wiring(recommender, checker, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port, func() {
		app.Service.Session.Stop()
		logger.Info("All sessions closed")
	})
}
