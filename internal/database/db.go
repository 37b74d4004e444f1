package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"dairy-pos/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options describe how to reach the database.
type Options struct {
	Driver   string // mysql, postgres or sqlite
	DSN      string
	Retries  int
	LogLevel string
}

// Connect opens the database, retrying while it comes up, and syncs the schema.
func Connect(opts Options) (*gorm.DB, error) {
	if opts.DSN == "" {
		return nil, fmt.Errorf("DB_DSN is not set, please configure your database")
	}
	if opts.Retries < 1 {
		opts.Retries = 1
	}

	var db *gorm.DB
	var err error
	for i := 0; i < opts.Retries; i++ {
		db, err = Open(opts.Driver, opts.DSN, opts.LogLevel)
		if err == nil {
			break
		}
		slog.Warn("database not ready, retrying", "attempt", i+1, "of", opts.Retries, "err", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s after %d attempts: %w", opts.Driver, opts.Retries, err)
	}
	slog.Info("database connected", "driver", opts.Driver)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	slog.Info("database schema synced")
	return db, nil
}

// Open returns a gorm handle for the named driver without migrating.
func Open(driver, dsn, logLevel string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case "mysql", "":
		dialector = mysql.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	case "sqlite", "sqlite3":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(logLevel)),
		// Sales keep dangling customer/product ids after a delete, like the
		// document store they replace.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.Product{},
		&models.Customer{},
		&models.Sale{},
		&models.SaleItem{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func parseLogLevel(v string) logger.LogLevel {
	switch strings.ToLower(v) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
