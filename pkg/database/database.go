package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Payphone-Digital/dashboard/config"
	"github.com/Payphone-Digital/dashboard/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for the configured DB_DRIVER.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		return NewMySQLDialector(cfg.DatabaseConnectionString()), nil
	case config.DriverPostgres:
		return NewPostgresDialector(cfg.DatabaseConnectionString()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// Open connects, sizes the pool and pings the database.
func Open(cfg *config.Config) (*gorm.DB, error) {
	startTime := time.Now()

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	var dbLogger gormLogger.Interface
	switch cfg.App.Environment {
	case config.EnvProduction:
		dbLogger = gormLogger.Default.LogMode(gormLogger.Silent)
	case config.EnvStaging:
		dbLogger = gormLogger.Default.LogMode(gormLogger.Warn)
	default:
		dbLogger = gormLogger.Default.LogMode(gormLogger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   dbLogger,
		PrepareStmt:                              true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.GetLogger().Info("Database connected",
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Name),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Duration("connection_time", time.Since(startTime)),
	)

	return db, nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance for closing: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	logger.GetLogger().Info("Database connection closed successfully")
	return nil
}
