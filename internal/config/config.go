package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingConnString = errors.New("CONN_STR not set (postgres connection string)")

type Config struct {
	Database DatabaseConfig
	Feed     FeedConfig
	Export   ExportConfig
	Logger   LoggerConfig
}

type DatabaseConfig struct {
	ConnString     string
	MaxConns       int
	ConnectTimeout time.Duration
}

type FeedConfig struct {
	Timeout time.Duration
}

type ExportConfig struct {
	Dir string
}

type LoggerConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment, after merging an optional
// .env file from the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// Defaults
	v.SetDefault("DB_MAX_CONNS", 4)
	v.SetDefault("DB_CONNECT_TIMEOUT", "10s")
	v.SetDefault("FEED_TIMEOUT", "30s")
	v.SetDefault("EXPORT_DIR", "json-dumps")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "text")

	// Env
	v.AutomaticEnv()

	connString := v.GetString("CONN_STR")
	if connString == "" {
		return nil, ErrMissingConnString
	}

	cfg := &Config{
		Database: DatabaseConfig{
			ConnString:     connString,
			MaxConns:       v.GetInt("DB_MAX_CONNS"),
			ConnectTimeout: duration(v, "DB_CONNECT_TIMEOUT", 10*time.Second),
		},
		Feed: FeedConfig{
			Timeout: duration(v, "FEED_TIMEOUT", 30*time.Second),
		},
		Export: ExportConfig{
			Dir: v.GetString("EXPORT_DIR"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}

func duration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
