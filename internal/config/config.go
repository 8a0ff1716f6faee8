package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Sheets   SheetsConfig
	Workday  WorkdayConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// SheetsConfig holds the remote spreadsheet mirror configuration. Sync is
// optional: an empty credentials path disables it.
type SheetsConfig struct {
	Enabled         bool
	CredentialsFile string
	SpreadsheetID   string
	SheetName       string
	SyncInterval    time.Duration
}

// WorkdayConfig holds punch behaviour knobs.
type WorkdayConfig struct {
	PendingTTL time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// Running without a .env file is fine; the environment may carry
		// everything already.
		slog.Debug("No .env file loaded", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "fichador"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Spreadsheet sync configuration
	syncInterval, err := time.ParseDuration(getEnv("SHEETS_SYNC_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHEETS_SYNC_INTERVAL: %w", err)
	}

	credentialsFile := getEnv("SHEETS_CREDENTIALS_FILE", "")
	config.Sheets = SheetsConfig{
		Enabled:         credentialsFile != "",
		CredentialsFile: credentialsFile,
		SpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
		SheetName:       getEnv("SHEETS_SHEET_NAME", "datos"),
		SyncInterval:    syncInterval,
	}

	// Workday configuration
	pendingTTL, err := time.ParseDuration(getEnv("PUNCH_PENDING_TTL", "8s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PUNCH_PENDING_TTL: %w", err)
	}
	config.Workday = WorkdayConfig{
		PendingTTL: pendingTTL,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Sheets.Enabled && c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("SHEETS_SPREADSHEET_ID is required when sync is enabled")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key, fallback string) []string {
	return strings.Split(getEnv(key, fallback), ",")
}
