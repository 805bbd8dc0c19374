package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/kdimtricp/plotshazam/internal/ai"
	"github.com/kdimtricp/plotshazam/internal/api"
	"github.com/kdimtricp/plotshazam/internal/config"
	"github.com/kdimtricp/plotshazam/internal/database"
	"github.com/kdimtricp/plotshazam/internal/identification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	provider, err := ai.NewProvider(cfg.AI)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize AI provider")
	}

	db, err := database.NewDB(cfg.DB)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	if cfg.DB.Type == "postgres" {
		logrus.WithField("path", cfg.MigrationsPath).Info("running database migrations")
		if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
			logrus.WithError(err).Fatal("failed to run migrations")
		}
	}

	historyRepo := database.NewHistoryRepository(db)
	identService := identification.NewService(provider, historyRepo)

	app := &api.App{
		Ident:          identService,
		AllowedOrigins: cfg.AllowedOrigins,
	}

	router := api.NewRouter(app)

	logrus.WithFields(logrus.Fields{
		"port":     cfg.Port,
		"provider": provider.Name(),
		"db_type":  cfg.DB.Type,
	}).Info("server starting")
	if cfg.DB.Type == "sqlite" {
		logrus.WithField("path", cfg.DB.SQLitePath).Info("using sqlite database")
	}

	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
