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

// Package config provides configuration management for the catalog client
// with support for multiple configuration sources and a well-defined
// precedence order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	catalogerrors "github.com/sanbir/WebApp/internal/errors"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .purdueio.yaml (current directory)
//   - .purdueio.yml (current directory)
//   - ~/.purdueio/config.yaml
//   - ~/.purdueio/config.yml
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".purdueio.yaml",
			".purdueio.yml",
			filepath.Join(os.Getenv("HOME"), ".purdueio", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".purdueio", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	cfg.API.BaseURL = NormalizeBaseURL(cfg.API.BaseURL)
	cfg.Defaults.StateDir = expandPath(cfg.Defaults.StateDir)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("PURDUEIO_API_URL"); endpoint != "" {
		cfg.API.BaseURL = endpoint
	}
	if timeout := os.Getenv("PURDUEIO_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.API.Timeout = d
		}
	}
	if stateDir := os.Getenv("PURDUEIO_STATE_DIR"); stateDir != "" {
		cfg.Defaults.StateDir = stateDir
	}
	if level := os.Getenv("PURDUEIO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(level))
	}
	if format := os.Getenv("PURDUEIO_LOG_FORMAT"); format != "" {
		cfg.Log.Format = strings.ToLower(strings.TrimSpace(format))
	}
	if rps := os.Getenv("PURDUEIO_RATE_LIMIT"); rps != "" {
		if v, err := strconv.ParseFloat(rps, 64); err == nil && v >= 0 {
			cfg.RateLimit.RequestsPerSecond = v
		}
	}
}

// NormalizeBaseURL resolves a scheme-relative URL ("//api.purdue.io") to
// https and trims trailing slashes so paths can be appended directly.
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	return strings.TrimRight(raw, "/")
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// Credentials reads the username and password from the environment
// variables named in the auth section. Missing values come back empty.
func (c *Config) Credentials() (username, password string) {
	return os.Getenv(c.Auth.UsernameEnv), os.Getenv(c.Auth.PasswordEnv)
}

// Validate checks if the configuration contains valid values. Struct tags
// are enforced with go-playground/validator; the base URL must be http(s)
// and the timeout positive.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", catalogerrors.ErrInvalidConfig, err)
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: base url: %v", catalogerrors.ErrInvalidConfig, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: base url scheme must be http or https, got %q", catalogerrors.ErrInvalidConfig, u.Scheme)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api timeout must be positive, got: %s", catalogerrors.ErrInvalidConfig, c.API.Timeout)
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst < 1 {
		return fmt.Errorf("%w: rate limit burst must be at least 1 when throttling is enabled", catalogerrors.ErrInvalidConfig)
	}
	return nil
}
