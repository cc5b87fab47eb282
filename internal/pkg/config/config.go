package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string `env:"PORT,       default=3000"`
	Env        string `env:"ENV,        default=development"`
	JWTSecret  string `env:"JWT_SECRET, required"`
	LogLevel   string `env:"LOG_LEVEL,  default=info"`
	BcryptCost int    `env:"BCRYPT_COST, default=10"`
	StaticDir  string `env:"STATIC_DIR"`

	// GitHubStatusURL is probed by /api/health to report GitHub availability.
	GitHubStatusURL string `env:"GITHUB_STATUS_URL, default=https://api.github.com"`
	AuditWorkers    int    `env:"AUDIT_WORKERS,     default=4"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=blog"`
}

// RedisConfig is optional; an empty Addr disables idempotent post creation.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
