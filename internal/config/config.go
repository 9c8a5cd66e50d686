// Package config provides environment-backed configuration for the server.
package config

import (
	"fmt"
	"os"
)

// Config holds everything the server needs to start. Values come from the
// environment (a .env file is loaded by the entry point when present).
type Config struct {
	DatabaseURL  string
	GeminiAPIKey string
	GeminiModel  string

	// Object store for résumé uploads
	StorageEndpoint  string
	StorageRegion    string
	StorageBucket    string
	StorageAccessKey string
	StorageSecretKey string
	ResumePublicURL  string
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      os.Getenv("GEMINI_MODEL"),
		StorageEndpoint:  os.Getenv("STORAGE_ENDPOINT"),
		StorageRegion:    os.Getenv("STORAGE_REGION"),
		StorageBucket:    os.Getenv("STORAGE_BUCKET"),
		StorageAccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey: os.Getenv("STORAGE_SECRET_KEY"),
		ResumePublicURL:  os.Getenv("RESUME_PUBLIC_URL"),
	}
	if cfg.StorageRegion == "" {
		cfg.StorageRegion = "auto"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all required settings are present
func (c *Config) Validate() error {
	required := map[string]string{
		"DATABASE_URL":       c.DatabaseURL,
		"GEMINI_API_KEY":     c.GeminiAPIKey,
		"STORAGE_BUCKET":     c.StorageBucket,
		"STORAGE_ACCESS_KEY": c.StorageAccessKey,
		"STORAGE_SECRET_KEY": c.StorageSecretKey,
		"RESUME_PUBLIC_URL":  c.ResumePublicURL,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("config error: %s environment variable is required", name)
		}
	}
	return nil
}
