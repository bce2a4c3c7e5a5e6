package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/cloudpulse-dev/cloudpulse/db"
	"github.com/cloudpulse-dev/cloudpulse/internal/handlers"
	"github.com/cloudpulse-dev/cloudpulse/internal/probes"
	"github.com/cloudpulse-dev/cloudpulse/internal/router"
	"github.com/cloudpulse-dev/cloudpulse/internal/scheduler"
	"github.com/cloudpulse-dev/cloudpulse/internal/seed"
	"github.com/cloudpulse-dev/cloudpulse/internal/services"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		if err := db.ConnectDatabase(dsn); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
	} else {
		log.Println("DATABASE_URL not set, using local SQLite database")
		if err := db.ConnectSQLite("cloudpulse.db"); err != nil {
			log.Fatalf("Failed to open SQLite database: %v", err)
		}
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seed.Run(db.DB); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}

	checks := services.NewHealthCheckService(db.DB, probes.NewSimulatedProber())
	checks.OnCheck = handlers.BroadcastCheck

	resources := services.NewResourceService(db.DB)

	scheduler.Initialize(resources, checks, checkInterval())
	defer scheduler.Shutdown()

	r := router.NewRouter(router.NewDeps(db.DB, checks))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func checkInterval() time.Duration {
	raw := os.Getenv("CHECK_INTERVAL_SECONDS")
	if raw == "" {
		return scheduler.DefaultInterval
	}

	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		log.Printf("Invalid CHECK_INTERVAL_SECONDS %q, using default", raw)
		return scheduler.DefaultInterval
	}

	return time.Duration(seconds) * time.Second
}
