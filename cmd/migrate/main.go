// Command migrate applies pending SQL migrations to the configured
// postgres database. SQLite deployments create their tables directly
// and do not need it.
package main

import (
	"github.com/sirupsen/logrus"

	"github.com/kdimtricp/plotshazam/internal/config"
	"github.com/kdimtricp/plotshazam/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	if cfg.DB.Type != "postgres" {
		logrus.WithField("db_type", cfg.DB.Type).Info("nothing to do: migrations only apply to postgres")
		return
	}

	db, err := database.NewDB(cfg.DB)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}

	logrus.Info("migrations complete")
}
