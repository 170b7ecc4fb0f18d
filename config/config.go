package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            string        `env:"PORT"             envDefault:"8080"`
	GinMode         string        `env:"GIN_MODE"         envDefault:"debug"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	LogPretty       bool          `env:"LOG_PRETTY"       envDefault:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Database DatabaseConfig
	R2       R2Config `envPrefix:"CLOUDFLARE_"`

	NATSURL            string   `env:"NATS_URL"`
	CategoriesFile     string   `env:"CATEGORIES_FILE"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	FeaturedLimit      int      `env:"FEATURED_LIMIT"       envDefault:"3"`
	VisibleCount       int      `env:"VISIBLE_COUNT"        envDefault:"9"`
}

type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER"      envDefault:"postgres"`
	Host       string `env:"DB_HOST"        envDefault:"localhost"`
	Port       string `env:"DB_PORT"        envDefault:"5432"`
	User       string `env:"DB_USER"`
	Password   string `env:"DB_PASSWORD"`
	Name       string `env:"DB_NAME"`
	SSLMode    string `env:"DB_SSLMODE"     envDefault:"disable"`
	SQLitePath string `env:"DB_SQLITE_PATH" envDefault:"salone.db"`
	LogLevel   string `env:"DB_LOG_LEVEL"   envDefault:"warn"`
}

// R2Config holds the Cloudflare R2 bucket settings. Fields are read from
// CLOUDFLARE_-prefixed variables.
type R2Config struct {
	AccountID       string `env:"ACCOUNT_ID"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	BucketName      string `env:"BUCKET_NAME"`
	PublicURL       string `env:"PUBLIC_URL"`
	Region          string `env:"REGION" envDefault:"auto"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Load reads a .env file when one exists and then the process environment.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.FeaturedLimit <= 0 {
		return fmt.Errorf("FEATURED_LIMIT must be positive, got %d", c.FeaturedLimit)
	}
	if c.VisibleCount <= 0 {
		return fmt.Errorf("VISIBLE_COUNT must be positive, got %d", c.VisibleCount)
	}
	return nil
}

// DSN is the Postgres connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

// Configured reports whether enough settings are present to reach a bucket.
func (c R2Config) Configured() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != ""
}

func (c R2Config) Endpoint() string {
	return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
}

// PublicBaseURL is PublicURL without a trailing slash.
func (c R2Config) PublicBaseURL() string {
	return strings.TrimRight(c.PublicURL, "/")
}
