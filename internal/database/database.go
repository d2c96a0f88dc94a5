package database

import (
	"embed"
	"fmt"
	"time"

	"spendlog/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Manager handles database operations
type Manager struct {
	db     *gorm.DB
	config *Config
}

// NewManager creates a new database manager
func NewManager(config *Config) (*Manager, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case DriverPostgres:
		dialector = postgres.New(postgres.Config{
			DSN:                  config.DSN(),
			PreferSimpleProtocol: true,
		})
	default:
		dialector = sqlite.Open(config.DSN())
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if config.Driver == DriverSQLite {
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db, config: config}, nil
}

// Migrator returns a golang-migrate instance reading the embedded SQL files
// for the configured driver. Callers must Close it.
func (m *Manager) Migrator() (*migrate.Migrate, error) {
	return NewMigrator(m.config)
}

// NewMigrator builds a golang-migrate instance for config without opening a GORM connection.
func NewMigrator(config *Config) (*migrate.Migrate, error) {
	dir := "migrations/sqlite"
	if config.Driver == DriverPostgres {
		dir = "migrations/postgres"
	}

	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", src, config.MigrateURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return mig, nil
}

// RunMigrations applies pending SQL migrations.
func (m *Manager) RunMigrations() error {
	logger.Get().Info("Running database migrations...")

	mig, err := m.Migrator()
	if err != nil {
		return err
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// Close closes the underlying connection pool.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
