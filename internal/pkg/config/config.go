package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`

	// DefaultDepartment is assigned to students added without one.
	DefaultDepartment string `env:"DEFAULT_DEPARTMENT, default=Computer Science"`
	// WriteConcurrency bounds the parallel writes of one attendance or import batch.
	WriteConcurrency int `env:"WRITE_CONCURRENCY, default=16"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=attendance"`
}

type RedisConfig struct {
	Addr          string        `env:"REDIS_ADDR,       default=localhost:6379"`
	Password      string        `env:"REDIS_PASSWORD"`
	DB            int           `env:"REDIS_DB,         default=0"`
	RosterTTL     time.Duration `env:"ROSTER_CACHE_TTL, default=5m"`
	SubmissionTTL time.Duration `env:"SUBMISSION_TTL,   default=12h"`
}

// IsDevelopment reports whether human-readable logs should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
