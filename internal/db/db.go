package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/lesson-booking/internal/config"
	"github.com/BruksfildServices01/lesson-booking/internal/domain/settings"
	"github.com/BruksfildServices01/lesson-booking/internal/models"
)

// Open connects to the configured database and migrates the schema. The
// memory driver has no database and returns nil.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return nil, nil
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.URL)
	case config.DriverSQLite, "":
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if cfg.Driver == config.DriverPostgres {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
	} else {
		// sqlite serialises writers; one connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready", zap.String("driver", cfg.Driver))
	return db, nil
}

// Migrate creates the schema and the default form settings row.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.AvailabilityWindow{},
		&models.Booking{},
		&models.FormSettings{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	var existing models.FormSettings
	err := db.First(&existing, "id = ?", settings.SingletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := settings.Defaults()
		if err := db.Create(&defaults).Error; err != nil {
			return fmt.Errorf("seed form settings: %w", err)
		}
		return nil
	}
	return err
}

// Ping reports whether the underlying connection pool is reachable.
func Ping(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// Close releases the connection pool. A nil db is a no-op.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
