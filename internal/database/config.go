package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Supported values for DB_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds database configuration
type Config struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewConfig creates a new database configuration
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, we'll use defaults or environment variables
		fmt.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Driver:   getEnv("DB_DRIVER", DriverSQLite),
		Path:     getEnv("DB_PATH", "spendlog.db"),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "spendlog"),
		Password: getEnv("DB_PASSWORD", "spendlog"),
		DBName:   getEnv("DB_NAME", "spendlog"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	switch cfg.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use %s or %s)", cfg.Driver, DriverSQLite, DriverPostgres)
	}
	return cfg, nil
}

// DSN returns the connection string understood by the GORM driver.
func (c *Config) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Path + "?_foreign_keys=on"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MigrateURL returns the database URL understood by golang-migrate.
func (c *Config) MigrateURL() string {
	if c.Driver == DriverSQLite {
		return "sqlite3://" + c.Path
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
