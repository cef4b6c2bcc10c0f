package database

import (
	"fmt"

	"github.com/girmesh03/taskforce/internal/config"
	"github.com/girmesh03/taskforce/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the postgres connection and stores the handle.
func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"host": cfg.DBHost,
		"db":   cfg.DBName,
	}).Info("database connection established")
	return nil
}

// Migrate creates or updates the schema for all models.
func Migrate() error {
	logrus.Info("running database migrations")
	err := DB.AutoMigrate(
		&models.Company{},
		&models.Department{},
		&models.User{},
		&models.CompanySuperAdmin{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.TaskActivity{},
		&models.RoutineTask{},
		&models.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logrus.Info("database migrations completed")
	return nil
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing).
func SetDB(db *gorm.DB) {
	DB = db
}
