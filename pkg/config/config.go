package config

import (
	"fmt"
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"

	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/parser"
)

// Config holds all application configuration
type Config struct {
	Database      DatabaseConfig
	Import        ImportConfig
	Observability ObservabilityConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type ImportConfig struct {
	// RetentionDays is how long finalized import batches are kept before
	// the sweep deletes them.
	RetentionDays int
	// ScanBound caps the multi-line statement parser's lookahead.
	ScanBound int
	// UnsignedPolicy decides the direction of unsigned statement amounts.
	UnsignedPolicy parser.UnsignedAmountPolicy
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	MetricsPort    int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "statement-ingest-dev"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Import: ImportConfig{
			RetentionDays:  getEnvAsInt("IMPORT_RETENTION_DAYS", 90),
			ScanBound:      getEnvAsInt("IMPORT_SCAN_BOUND", 8),
			UnsignedPolicy: parser.UnsignedAmountPolicy(getEnv("IMPORT_UNSIGNED_POLICY", string(parser.DefaultExpense))),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			MetricsPort:    getEnvAsInt("METRICS_PORT", 9090),
		},
	}

	switch cfg.Import.UnsignedPolicy {
	case parser.DefaultExpense, parser.KeywordHeuristic:
	default:
		return nil, fmt.Errorf("IMPORT_UNSIGNED_POLICY: unknown value %q", cfg.Import.UnsignedPolicy)
	}
	if cfg.Import.RetentionDays <= 0 {
		return nil, fmt.Errorf("IMPORT_RETENTION_DAYS must be positive, got %d", cfg.Import.RetentionDays)
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
