package config

import (
	"fmt"
	"path/filepath"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Catalog
	DataPath     string // directory holding Data1000Movies.csv
	SeedDefaults bool   // register the default user and review after loading

	// Featured movies
	FeaturedCount    int
	FeaturedSchedule string // cron spec (default: @hourly)

	// Server
	ServerPort     string
	RateLimitRPS   float64
	RateLimitBurst int
	MoviesPerPage  int

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = v.ReadInConfig()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATA_PATH", "./data")
	v.SetDefault("SEED_DEFAULTS", true)
	v.SetDefault("FEATURED_COUNT", 3)
	v.SetDefault("FEATURED_SCHEDULE", "@hourly")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("MOVIES_PER_PAGE", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

func fromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	dataPath, err := filepath.Abs(v.GetString("DATA_PATH"))
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for DATA_PATH: %w", err)
	}

	config := &Config{
		// Catalog
		DataPath:     dataPath,
		SeedDefaults: v.GetBool("SEED_DEFAULTS"),

		// Featured movies
		FeaturedCount:    v.GetInt("FEATURED_COUNT"),
		FeaturedSchedule: v.GetString("FEATURED_SCHEDULE"),

		// Server
		ServerPort:     v.GetString("SERVER_PORT"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
		MoviesPerPage:  v.GetInt("MOVIES_PER_PAGE"),

		// Logging
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// validate checks field ranges
func (c *Config) validate() error {
	if c.FeaturedCount < 0 {
		return fmt.Errorf("FEATURED_COUNT must not be negative")
	}
	if _, err := cron.ParseStandard(c.FeaturedSchedule); err != nil {
		return fmt.Errorf("FEATURED_SCHEDULE is invalid: %w", err)
	}
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive")
	}
	if c.MoviesPerPage <= 0 {
		return fmt.Errorf("MOVIES_PER_PAGE must be positive")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json")
	}
	return nil
}
