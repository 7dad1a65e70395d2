package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	ServerPort  int      `yaml:"port"`
	Env         string   `yaml:"env"`
	LogLevel    string   `yaml:"log_level"`
	CORSOrigins []string `yaml:"cors_origins"`

	DatabaseDriver string `yaml:"database_driver"` // sqlite or postgres
	DatabaseURL    string `yaml:"database_url"`

	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`

	CodeTTL        time.Duration `yaml:"code_ttl"`
	CodeLength     int           `yaml:"code_length"`
	StrictDelivery bool          `yaml:"strict_delivery"`

	SMTP  SMTPConfig  `yaml:"smtp"`
	Redis RedisConfig `yaml:"redis"`
	S3    S3Config    `yaml:"s3"`

	DraftTTL time.Duration `yaml:"draft_ttl"`
}

// SMTPConfig configures outbound verification mail.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Enabled reports whether enough is set to send real mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

// RedisConfig configures the draft session store. An empty Addr keeps drafts in memory.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// S3Config configures the optional PDF archive. An empty Bucket disables it.
type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	// Static keys override the default AWS credential chain when both are set.
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load loads configuration from .env, an optional YAML file and environment
// variables, in increasing order of precedence, then applies defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	path := getEnv("CONFIG_FILE", "configs/config.yaml")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	for name, d := range map[string]time.Duration{
		"TOKEN_TTL": c.TokenTTL,
		"CODE_TTL":  c.CodeTTL,
		"DRAFT_TTL": c.DraftTTL,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if c.CodeLength < 6 {
		return fmt.Errorf("CODE_LENGTH must be at least 6, got %d", c.CodeLength)
	}
	if c.IsProduction() && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required in production")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var err error
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok && err == nil {
			n, convErr := strconv.Atoi(v)
			if convErr != nil {
				err = fmt.Errorf("invalid %s: %w", key, convErr)
				return
			}
			*dst = n
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(key); ok && err == nil {
			d, convErr := time.ParseDuration(v)
			if convErr != nil {
				err = fmt.Errorf("invalid %s: %w", key, convErr)
				return
			}
			*dst = d
		}
	}

	setInt("PORT", &cfg.ServerPort)
	setString("APP_ENV", &cfg.Env)
	setString("LOG_LEVEL", &cfg.LogLevel)
	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		cfg.CORSOrigins = splitCSV(v)
	}
	setString("DATABASE_DRIVER", &cfg.DatabaseDriver)
	setString("DATABASE_URL", &cfg.DatabaseURL)
	setString("JWT_SECRET", &cfg.JWTSecret)
	setDuration("TOKEN_TTL", &cfg.TokenTTL)
	setDuration("CODE_TTL", &cfg.CodeTTL)
	setInt("CODE_LENGTH", &cfg.CodeLength)
	if v, ok := os.LookupEnv("STRICT_DELIVERY"); ok && err == nil {
		b, convErr := strconv.ParseBool(v)
		if convErr != nil {
			err = fmt.Errorf("invalid STRICT_DELIVERY: %w", convErr)
		}
		cfg.StrictDelivery = b
	}
	setString("SMTP_HOST", &cfg.SMTP.Host)
	setInt("SMTP_PORT", &cfg.SMTP.Port)
	setString("SMTP_USER", &cfg.SMTP.User)
	setString("SMTP_PASSWORD", &cfg.SMTP.Password)
	setString("SMTP_FROM", &cfg.SMTP.From)
	setString("REDIS_ADDR", &cfg.Redis.Addr)
	setString("REDIS_PASSWORD", &cfg.Redis.Password)
	setInt("REDIS_DB", &cfg.Redis.DB)
	setDuration("DRAFT_TTL", &cfg.DraftTTL)
	setString("S3_BUCKET", &cfg.S3.Bucket)
	setString("S3_REGION", &cfg.S3.Region)
	setString("S3_ENDPOINT", &cfg.S3.Endpoint)
	setString("S3_ACCESS_KEY_ID", &cfg.S3.AccessKeyID)
	setString("S3_SECRET_ACCESS_KEY", &cfg.S3.SecretAccessKey)
	return err
}

func applyDefaults(cfg *Config) {
	if cfg.ServerPort == 0 {
		cfg.ServerPort = 8080
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	}
	if cfg.DatabaseDriver == "" {
		cfg.DatabaseDriver = "sqlite"
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseDriver == "sqlite" {
		cfg.DatabaseURL = "./resume.db"
	}
	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = "dev-secret"
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.CodeTTL == 0 {
		cfg.CodeTTL = 15 * time.Minute
	}
	if cfg.CodeLength == 0 {
		cfg.CodeLength = 6
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}
	if cfg.DraftTTL == 0 {
		cfg.DraftTTL = 2 * time.Hour
	}
	if cfg.S3.Region == "" {
		cfg.S3.Region = "us-east-1"
	}
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
