package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Port          string `env:"PORT" envDefault:"8080"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"3s"`

	PostgresHost     string `env:"POSTGRES_HOST"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER"`
	PostgresPass     string `env:"POSTGRES_PASSWORD"`
	PostgresDatabase string `env:"POSTGRES_DB"`
	PostgresSSLMode  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`
	MigrateOnStart   bool   `env:"MIGRATE_ON_START" envDefault:"true"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	MaxConns          int32         `env:"DB_MAX_CONNS" envDefault:"25"`
	MinConns          int32         `env:"DB_MIN_CONNS" envDefault:"5"`
	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	MaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	HealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	DefaultMaxPlayers  int           `env:"DEFAULT_MAX_PLAYERS" envDefault:"15"`
	InvitationTTL      time.Duration `env:"INVITATION_TTL" envDefault:"168h"`
	SwipeInvitationTTL time.Duration `env:"SWIPE_INVITATION_TTL" envDefault:"720h"`
}

func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			slog.Warn("env file not found", "files", envFiles)
		}
	} else {
		if err := godotenv.Load(); err != nil {
			slog.Warn("env file not found, using system environment variables")
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Info("configuration loaded",
		"port", cfg.Port,
		"storage", cfg.StorageDriver,
		"db_host", cfg.PostgresHost,
	)

	return &cfg, nil
}

func (c *Config) validate() error {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))

	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		required := map[string]string{
			"POSTGRES_HOST":     c.PostgresHost,
			"POSTGRES_USER":     c.PostgresUser,
			"POSTGRES_PASSWORD": c.PostgresPass,
			"POSTGRES_DB":       c.PostgresDatabase,
		}
		for _, key := range []string{"POSTGRES_HOST", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB"} {
			if required[key] == "" {
				return fmt.Errorf("%s is required", key)
			}
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.DefaultMaxPlayers <= 0 {
		return fmt.Errorf("DEFAULT_MAX_PLAYERS must be positive")
	}
	if c.InvitationTTL <= 0 || c.SwipeInvitationTTL <= 0 {
		return fmt.Errorf("invitation TTLs must be positive")
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
