package config

import (
	"os"
	"strconv"

	"crimerisk/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Model  ModelConfig  `validate:"required"`
	Server ServerConfig `validate:"required"`
	Batch  BatchConfig
}

// ModelConfig holds classifier artifact settings
type ModelConfig struct {
	Path     string `validate:"required"`
	CardPath string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string `validate:"required"`
	GinMode string
}

// BatchConfig holds batch scoring settings
type BatchConfig struct {
	MaxRows     int
	Concurrency int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{}

	modelConfig, err := loadModelConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load model configuration")
	}
	config.Model = *modelConfig

	config.Server = *loadServerConfig()
	config.Batch = *loadBatchConfig()

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadModelConfig() (*ModelConfig, error) {
	path := os.Getenv("MODEL_PATH")
	if path == "" {
		return nil, errors.ConfigInvalid("MODEL_PATH is required")
	}

	return &ModelConfig{
		Path:     path,
		CardPath: getEnvOrDefault("MODEL_CARD_PATH", "docs/model_card.md"),
	}, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadBatchConfig() *BatchConfig {
	return &BatchConfig{
		MaxRows:     getEnvIntOrDefault("BATCH_MAX_ROWS", 5000),
		Concurrency: getEnvIntOrDefault("BATCH_CONCURRENCY", 4),
	}
}

func validateConfig(config *Config) error {
	if config.Model.Path == "" {
		return errors.ConfigInvalid("model artifact path is required")
	}
	if config.Batch.Concurrency < 1 {
		return errors.ConfigInvalid("BATCH_CONCURRENCY must be at least 1")
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
