package config

import (
	"time"

	"github.com/shawn0818/lebron-bot/internal/logger"
)

// API holds the upstream stats-feed connection settings.
type API struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retries int           `mapstructure:"retries" validate:"gte=0"`
}

// Database points at the local SQLite file.
type Database struct {
	Path string `mapstructure:"path" validate:"required"`
}

// Server configures the read-only HTTP API.
type Server struct {
	Addr string `mapstructure:"addr"`
}

type Config struct {
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	API      API                 `mapstructure:"api"`
	Database Database            `mapstructure:"database"`
	Server   Server              `mapstructure:"server"`
}
