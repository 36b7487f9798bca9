package database

import (
	"fmt"

	"learnhub/config"
	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// DSN builds the connection string for the configured driver
func DSN(cfg *config.Config) string {
	if cfg.DBDsn != "" {
		return cfg.DBDsn
	}
	switch cfg.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	case "sqlite":
		return cfg.DBName + ".db"
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	}
}

// Open opens a gorm connection for driver (postgres, mysql or sqlite)
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

// ConnectDb establishes the connection, tunes the pool and runs migrations
func ConnectDb(cfg *config.Config, log *logrus.Entry) (*gorm.DB, error) {
	db, err := Open(cfg.DBDriver, DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)
	if cfg.DBDriver == "sqlite" {
		// sqlite serialises writers
		sqlDB.SetMaxOpenConns(1)
	}

	log.WithField("driver", cfg.DBDriver).Info("Running Migrations...")
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	log.Info("Migrations completed successfully.")

	Database = DbInstance{Db: db}
	return db, nil
}

// Migrate creates or updates every table owned by the service
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&courseModels.CertificateRequest{},
		&courseModels.Course{},
		&courseModels.CourseProgress{},
		&models.Book{},
	)
}

// Close releases the pool of the global instance
func Close() error {
	if Database.Db == nil {
		return nil
	}
	sqlDB, err := Database.Db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
