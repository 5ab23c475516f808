// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config types define the configuration structures used throughout
// the catalog client. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

import "time"

// Config represents the complete configuration for the catalog client.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	API       APIConfig       `yaml:"api" validate:"required"`
	Auth      AuthConfig      `yaml:"auth" validate:"required"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Defaults  DefaultsConfig  `yaml:"defaults" validate:"required"`
	Log       LogConfig       `yaml:"log" validate:"required"`
}

// APIConfig points the client at a catalog service. BaseURL is prefixed to
// every request path, so a staging or local service can be swapped in
// without touching the client.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `yaml:"timeout"`
}

// AuthConfig names the environment variables that carry the student
// credentials. The credentials themselves are never stored in the file.
type AuthConfig struct {
	UsernameEnv string `yaml:"username_env" validate:"required"`
	PasswordEnv string `yaml:"password_env" validate:"required"`
}

// RateLimitConfig throttles outgoing requests on the client side.
// A zero RequestsPerSecond disables throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`
	Burst             int     `yaml:"burst" validate:"gte=0"`
}

// DefaultsConfig contains default settings for CLI output and the
// directory holding saved schedule snapshots.
type DefaultsConfig struct {
	OutputFormat string `yaml:"output_format" validate:"oneof=ndjson json"`
	StateDir     string `yaml:"state_dir" validate:"required"`
}

// LogConfig controls the zerolog logger built by the logger package.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// DefaultBaseURL is the public Purdue.io endpoint.
const DefaultBaseURL = "https://api.purdue.io"

// DefaultConfig returns a Config with sensible defaults suitable for the
// public Purdue.io service.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: 30 * time.Second,
		},
		Auth: AuthConfig{
			UsernameEnv: "PURDUEIO_USERNAME",
			PasswordEnv: "PURDUEIO_PASSWORD",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 0,
			Burst:             1,
		},
		Defaults: DefaultsConfig{
			OutputFormat: "ndjson",
			StateDir:     "~/.purdueio/state",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}
