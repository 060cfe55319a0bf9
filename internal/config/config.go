package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Store   StoreConfig
	Export  ExportConfig
	Notify  NotifyConfig
	Billing BillingConfig
}

// StoreConfig selects and configures the invoice record store.
type StoreConfig struct {
	Provider    string `mapstructure:"provider"` // postgres | http
	BaseURL     string `mapstructure:"base_url"`
	APIToken    string `mapstructure:"api_token"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Timeout returns the upstream request timeout.
func (s *StoreConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSecs) * time.Second
}

// ExportConfig holds invoice export settings.
type ExportConfig struct {
	ArchiveEnabled bool   `mapstructure:"archive_enabled"`
	ArchivePrefix  string `mapstructure:"archive_prefix"`
}

// NotifyConfig holds failure notification delivery settings.
type NotifyConfig struct {
	Provider    string   `mapstructure:"provider"` // noop | ses
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	Recipients  []string `mapstructure:"recipients"`
}

// BillingConfig holds presentation settings for the billing view.
type BillingConfig struct {
	CurrencySymbol string        `mapstructure:"currency_symbol"`
	BoardTTL       time.Duration `mapstructure:"board_ttl"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from a .env file (if present) and environment
// variables with the MEDIBILL_ prefix.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MEDIBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "medibill")
	v.SetDefault("db.password", "medibill_secret")
	v.SetDefault("db.name", "medibill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.issuer", "medibill")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "medibill-exports")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Store defaults
	v.SetDefault("store.provider", "postgres")
	v.SetDefault("store.base_url", "")
	v.SetDefault("store.api_token", "")
	v.SetDefault("store.timeout_secs", 10)

	// Export defaults
	v.SetDefault("export.archive_enabled", false)
	v.SetDefault("export.archive_prefix", "invoice-exports")

	// Notify defaults
	v.SetDefault("notify.provider", "noop")
	v.SetDefault("notify.region", "us-east-1")
	v.SetDefault("notify.from_address", "noreply@medibill.local")
	v.SetDefault("notify.from_name", "MediBill")
	v.SetDefault("notify.recipients", "")

	// Billing defaults
	v.SetDefault("billing.currency_symbol", "$")
	v.SetDefault("billing.board_ttl", "15m")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "MEDIBILL_SERVER_PORT",
		"server.read_timeout":     "MEDIBILL_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "MEDIBILL_SERVER_WRITE_TIMEOUT",
		"server.environment":      "MEDIBILL_SERVER_ENVIRONMENT",
		"db.host":                 "MEDIBILL_DB_HOST",
		"db.port":                 "MEDIBILL_DB_PORT",
		"db.user":                 "MEDIBILL_DB_USER",
		"db.password":             "MEDIBILL_DB_PASSWORD",
		"db.name":                 "MEDIBILL_DB_NAME",
		"db.sslmode":              "MEDIBILL_DB_SSLMODE",
		"db.max_open":             "MEDIBILL_DB_MAX_OPEN",
		"db.max_idle":             "MEDIBILL_DB_MAX_IDLE",
		"jwt.secret":              "MEDIBILL_JWT_SECRET",
		"jwt.access_expiry":       "MEDIBILL_JWT_ACCESS_EXPIRY",
		"jwt.issuer":              "MEDIBILL_JWT_ISSUER",
		"s3.region":               "MEDIBILL_S3_REGION",
		"s3.bucket":               "MEDIBILL_S3_BUCKET",
		"s3.endpoint":             "MEDIBILL_S3_ENDPOINT",
		"s3.access_key":           "MEDIBILL_S3_ACCESS_KEY",
		"s3.secret_key":           "MEDIBILL_S3_SECRET_KEY",
		"s3.presign_expiry":       "MEDIBILL_S3_PRESIGN_EXPIRY",
		"log.level":               "MEDIBILL_LOG_LEVEL",
		"log.format":              "MEDIBILL_LOG_FORMAT",
		"cors.allowed_origins":    "MEDIBILL_CORS_ALLOWED_ORIGINS",
		"store.provider":          "MEDIBILL_STORE_PROVIDER",
		"store.base_url":          "MEDIBILL_STORE_BASE_URL",
		"store.api_token":         "MEDIBILL_STORE_API_TOKEN",
		"store.timeout_secs":      "MEDIBILL_STORE_TIMEOUT_SECS",
		"export.archive_enabled":  "MEDIBILL_EXPORT_ARCHIVE_ENABLED",
		"export.archive_prefix":   "MEDIBILL_EXPORT_ARCHIVE_PREFIX",
		"notify.provider":         "MEDIBILL_NOTIFY_PROVIDER",
		"notify.region":           "MEDIBILL_NOTIFY_REGION",
		"notify.from_address":     "MEDIBILL_NOTIFY_FROM_ADDRESS",
		"notify.from_name":        "MEDIBILL_NOTIFY_FROM_NAME",
		"notify.recipients":       "MEDIBILL_NOTIFY_RECIPIENTS",
		"billing.currency_symbol": "MEDIBILL_BILLING_CURRENCY_SYMBOL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if MEDIBILL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MEDIBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	cfg.Store = StoreConfig{
		Provider:    strings.ToLower(v.GetString("store.provider")),
		BaseURL:     strings.TrimRight(v.GetString("store.base_url"), "/"),
		APIToken:    v.GetString("store.api_token"),
		TimeoutSecs: v.GetInt("store.timeout_secs"),
	}
	if cfg.Store.Provider != "postgres" && cfg.Store.Provider != "http" {
		return nil, fmt.Errorf("unsupported store provider %q: must be postgres or http", cfg.Store.Provider)
	}
	if cfg.Store.Provider == "http" && cfg.Store.BaseURL == "" {
		return nil, fmt.Errorf("store.base_url is required when store.provider is http")
	}

	cfg.Export = ExportConfig{
		ArchiveEnabled: v.GetBool("export.archive_enabled"),
		ArchivePrefix:  strings.Trim(v.GetString("export.archive_prefix"), "/"),
	}

	cfg.Notify = NotifyConfig{
		Provider:    strings.ToLower(v.GetString("notify.provider")),
		Region:      v.GetString("notify.region"),
		FromAddress: v.GetString("notify.from_address"),
		FromName:    v.GetString("notify.from_name"),
		Recipients:  splitList(v.GetString("notify.recipients")),
	}

	cfg.Billing = BillingConfig{
		CurrencySymbol: v.GetString("billing.currency_symbol"),
	}

	return cfg, nil
}

// splitList parses a comma-separated setting, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
