package main

import (
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-predictor/internal/models"
	"github.com/jstittsworth/fpl-predictor/pkg/config"
	"github.com/jstittsworth/fpl-predictor/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down]")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	switch os.Args[1] {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	default:
		log.Fatalf("Unknown command: %s", os.Args[1])
	}
}

func runMigrations(db *database.DB) error {
	return db.AutoMigrate(
		&models.Team{},
		&models.Player{},
		&models.Fixture{},
		&models.PlayerStat{},
		&models.AvailabilityStatus{},
	)
}

func dropTables(db *database.DB) error {
	return db.Migrator().DropTable(
		&models.AvailabilityStatus{},
		&models.PlayerStat{},
		&models.Fixture{},
		&models.Player{},
		&models.Team{},
	)
}
