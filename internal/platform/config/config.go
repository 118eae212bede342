// Copyright (c) 2026 Ludex. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (Mongo, Redis, Cloudinary) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Ludex API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Document Database (MongoDB)
	MongoURI      string `env:"MONGODB_URI,required"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"ludex"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Media Host (Cloudinary)
	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME,required"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY,required"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET,required"`

	// Image acceptance policy
	MaxImageSizeMB    float64  `env:"MAX_IMAGE_SIZE_MB"        envDefault:"5"`
	AllowedExtensions []string `env:"ALLOWED_IMAGE_EXTENSIONS" envDefault:".jpg,.jpeg,.png,.webp"`

	// UploadTempDir is where multipart file parts are staged before upload.
	UploadTempDir string `env:"UPLOAD_TEMP_DIR" envDefault:"./upload"`

	// Cross-Origin Resource Sharing: comma-separated origin whitelist.
	WhitelistedOrigins string `env:"WHITELISTED_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// Origins returns the parsed CORS origin whitelist.
func (c *Config) Origins() []string {
	if c.WhitelistedOrigins == "" {
		return nil
	}

	var origins []string
	for _, origin := range strings.Split(c.WhitelistedOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
