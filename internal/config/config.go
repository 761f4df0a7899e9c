package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config movequote (HTTP API) configuration
type Config struct {
	HTTP struct {
		Addr          string
		AllowedOrigin string
	}
	Env string

	Sheet SheetConfig
	Mail  MailConfig

	RedisEnabled bool
	Redis        struct {
		Addr     string
		Password string
		DB       int
	}

	DBEnabled bool
	Database  DatabaseConfig

	Log struct {
		Level  string
		Format string
	}
}

// SheetConfig points the row store at either the hosted spreadsheet API
// (when SpreadsheetID is set) or a local workbook file.
type SheetConfig struct {
	APIBase       string
	APIKey        string
	SpreadsheetID string
	SheetName     string
	WorkbookPath  string
}

// MailConfig configures the transactional email API client.
// An empty APIKey disables sending entirely.
type MailConfig struct {
	APIBase  string
	APIKey   string
	From     string
	NotifyTo string
}

// DatabaseConfig configures the optional Postgres archive mirror.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.HTTP.AllowedOrigin = getEnv("ALLOWED_ORIGIN", "http://localhost:3000")
	cfg.Env = getEnv("ENV", "development")

	cfg.Sheet.APIBase = getEnv("SHEET_API_BASE", "https://sheets.googleapis.com")
	cfg.Sheet.APIKey = getEnv("SHEET_API_KEY", "")
	cfg.Sheet.SpreadsheetID = getEnv("SHEET_SPREADSHEET_ID", "")
	cfg.Sheet.SheetName = getEnv("SHEET_NAME", "Quotes")
	cfg.Sheet.WorkbookPath = getEnv("SHEET_WORKBOOK_PATH", "quotes.xlsx")

	cfg.Mail.APIBase = getEnv("MAIL_API_BASE", "https://api.resend.com")
	cfg.Mail.APIKey = getEnv("MAIL_API_KEY", "")
	cfg.Mail.From = getEnv("MAIL_FROM", "quotes@movequote.local")
	cfg.Mail.NotifyTo = getEnv("MAIL_NOTIFY_TO", "")

	cfg.RedisEnabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.DBEnabled = getEnv("DB_ENABLED", "false") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "movequote")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

// Production reports whether secure cookie attributes should be enforced.
func (c *Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
