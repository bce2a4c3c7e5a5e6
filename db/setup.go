package db

import (
	"github.com/cloudpulse-dev/cloudpulse/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

// ConnectSQLite opens a file-backed SQLite database. Used for local
// development and tests when no Postgres DSN is configured.
func ConnectSQLite(path string) error {
	var err error

	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	return Migrate(DB)
}

func Migrate(database *gorm.DB) error {
	models := []interface{}{
		&models.Resource{},
		&models.HealthCheck{},
		&models.Incident{},
	}

	migrator := database.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := database.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
