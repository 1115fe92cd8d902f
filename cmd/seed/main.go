// cmd/seed/main.go
package main

import (
	"github.com/sirupsen/logrus"

	"github.com/pantrypal/pantrypal-backend/internal/config"
	"github.com/pantrypal/pantrypal-backend/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.Fatal("Failed to initialize database: ", err)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		logrus.Fatal("Failed to run migrations: ", err)
	}

	if err := database.Seed(db); err != nil {
		logrus.Fatal("Seed failed: ", err)
	}

	logrus.Info("Seed completed successfully")
}
