package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL is the staff session lifetime.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	// BaseURL is the public site root used in notification links.
	BaseURL string `env:"BASE_URL, default=http://localhost:3000"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
	Queue QueueConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=shipment_tracker"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	From     string `env:"SMTP_FROM, default=noreply@hiptrack.example"`
	// SupportEmail receives customer feedback submissions.
	SupportEmail string `env:"SUPPORT_EMAIL, default=support@hiptrack.example"`
}

type QueueConfig struct {
	// Workers is the write-behind shard count.
	Workers int `env:"QUEUE_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
