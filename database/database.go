package database

import (
	"fmt"
	"strings"
	"time"

	"favorites-restful/config"
	"favorites-restful/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database and returns the handle that
// repositories receive. No package-level connection is kept.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	// GORM logger writes through zap
	gormLogger := logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if cfg.Driver == "sqlite" && isMemoryDSN(cfg.URL) {
		// Every new connection to :memory: is a fresh, empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info("Database connection established", zap.String("driver", cfg.Driver))
	return db, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		return mysql.Open(cfg.URL), nil
	case "postgres":
		return postgres.Open(cfg.URL), nil
	case "sqlite", "":
		return sqlite.Open(withForeignKeys(cfg.URL)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// withForeignKeys turns on SQLite foreign key enforcement, which is off by default.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "foreign_keys(") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	if dsn == ":memory:" {
		dsn = "file::memory:"
	}
	return dsn + "?_foreign_keys=on"
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
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

// Migrate creates or updates every table, including the two join tables.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.User{}, "FavoriteCharacters", &models.FavoriteCharacter{}); err != nil {
		return fmt.Errorf("failed to set up favorite_characters: %w", err)
	}
	if err := db.SetupJoinTable(&models.User{}, "FavoriteLocations", &models.FavoriteLocation{}); err != nil {
		return fmt.Errorf("failed to set up favorite_locations: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Character{},
		&models.Location{},
		&models.FavoriteCharacter{},
		&models.FavoriteLocation{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
