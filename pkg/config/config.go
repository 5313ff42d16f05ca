package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "supersecretjwtkey"

type Config struct {
	Port                    string  `mapstructure:"PORT"`
	Env                     string  `mapstructure:"ENV"`
	LogLevel                string  `mapstructure:"LOG_LEVEL"`
	FirebaseCredentialsPath string  `mapstructure:"FIREBASE_CREDENTIALS_PATH"`
	PostgresURL             string  `mapstructure:"POSTGRES_CONN_STR"`
	MongoURI                string  `mapstructure:"MONGO_URI"`
	MongoDatabase           string  `mapstructure:"MONGO_DATABASE"`
	RedisURL                string  `mapstructure:"REDIS_URL"`
	MetricsPort             string  `mapstructure:"METRICS_PORT"`
	JWTSecret               string  `mapstructure:"JWT_SECRET"`
	StorageDriver           string  `mapstructure:"STORAGE_DRIVER"`
	MediaBucket             string  `mapstructure:"MEDIA_BUCKET"`
	AvatarBucket            string  `mapstructure:"AVATAR_BUCKET"`
	LocalStorageDir         string  `mapstructure:"LOCAL_STORAGE_DIR"`
	PublicBaseURL           string  `mapstructure:"PUBLIC_BASE_URL"`
	MaxUploadMB             int     `mapstructure:"MAX_UPLOAD_MB"`
	AuthRateLimit           float64 `mapstructure:"AUTH_RATE_LIMIT"`
	AllowedOrigins          string  `mapstructure:"ALLOWED_ORIGINS"`
}

// Load reads .env (when present) and the process environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, assuming environment variables are set.")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FIREBASE_CREDENTIALS_PATH", "")
	v.SetDefault("POSTGRES_CONN_STR", "")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "eventmories")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("METRICS_PORT", "9090")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("MEDIA_BUCKET", "post-media")
	v.SetDefault("AVATAR_BUCKET", "avatars")
	v.SetDefault("LOCAL_STORAGE_DIR", "./uploads")
	v.SetDefault("PUBLIC_BASE_URL", "http://localhost:8080/media")
	v.SetDefault("MAX_UPLOAD_MB", 25)
	v.SetDefault("AUTH_RATE_LIMIT", 5)
	v.SetDefault("ALLOWED_ORIGINS", "*")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether strict checks apply.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Origins splits ALLOWED_ORIGINS on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StorageDriver {
	case "local", "gcs":
	default:
		return fmt.Errorf("STORAGE_DRIVER must be local or gcs, got %q", c.StorageDriver)
	}
	if c.StorageDriver == "gcs" && c.FirebaseCredentialsPath == "" {
		return errors.New("FIREBASE_CREDENTIALS_PATH is required for the gcs storage driver")
	}
	if c.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	if c.IsProduction() {
		if c.JWTSecret == defaultJWTSecret || len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be changed and at least 32 characters in production")
		}
		if c.AllowedOrigins == "*" {
			log.Warn().Msg("ALLOWED_ORIGINS is '*' in production")
		}
	}
	return nil
}
