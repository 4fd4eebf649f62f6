package config

import (
	"os"
	"strconv"

	"coatlas/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Color     ColorConfig
	Profiling ProfilingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds the source dataset settings
type DataConfig struct {
	GeoJSONFile string
}

// ColorConfig holds the shared choropleth/indicator color settings.
// One ramp and class count feed both color paths so the indicator stays
// visually consistent with the map.
type ColorConfig struct {
	Ramp    string
	Classes int
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Data: DataConfig{
			GeoJSONFile: getEnvOrDefault("CO_DATA_FILE", "data/nigeria_state_co.geojson"),
		},
		Color: ColorConfig{
			Ramp:    getEnvOrDefault("COLOR_RAMP", "Greens"),
			Classes: getEnvIntOrDefault("COLOR_CLASSES", 5),
		},
		Profiling: ProfilingConfig{
			Port:    getEnvOrDefault("PPROF_PORT", "6060"),
			Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Data.GeoJSONFile == "" {
		return errors.ConfigInvalid("CO_DATA_FILE must not be empty")
	}
	if config.Color.Ramp == "" {
		return errors.ConfigInvalid("COLOR_RAMP must not be empty")
	}
	if config.Color.Classes < 2 {
		return errors.ConfigInvalid("COLOR_CLASSES must be at least 2")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
