// Package config handles the configuration for the jstring server and CLI
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Protocol names accepted for Config.Protocol
const (
	ProtocolJSON     = "json"
	ProtocolProtobuf = "protobuf"
)

// Config represents the application configuration
type Config struct {
	// Intern pool settings
	InternCapacity   int64 `json:"intern_capacity_bytes" yaml:"intern_capacity_bytes"`
	InternTTLSeconds int   `json:"intern_ttl_seconds" yaml:"intern_ttl_seconds"`

	// Server settings
	Host     string `json:"host" yaml:"host"`
	APIPort  int    `json:"api_port" yaml:"api_port"`
	BasePath string `json:"base_path" yaml:"base_path"`
	Protocol string `json:"protocol" yaml:"protocol"`

	// Logging settings
	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		InternCapacity:   1024 * 1024 * 16, // 16MB
		InternTTLSeconds: 0,                // never expire
		Host:             "localhost",
		APIPort:          9999,
		BasePath:         "/api/",
		Protocol:         ProtocolJSON,
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

// InternTTL returns InternTTLSeconds as a duration
func (c *Config) InternTTL() time.Duration {
	return time.Duration(c.InternTTLSeconds) * time.Second
}

// Addr returns host:port of the HTTP API
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.APIPort)
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.InternCapacity < 0 {
		return fmt.Errorf("intern_capacity_bytes must not be negative: %d", c.InternCapacity)
	}
	if c.APIPort <= 0 || c.APIPort > 65535 {
		return fmt.Errorf("api_port out of range: %d", c.APIPort)
	}
	if !strings.HasPrefix(c.BasePath, "/") || !strings.HasSuffix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start and end with '/': %q", c.BasePath)
	}
	switch c.Protocol {
	case ProtocolJSON, ProtocolProtobuf:
	default:
		return fmt.Errorf("unsupported protocol %q", c.Protocol)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadFromFile loads configuration from a JSON file, or YAML for .yaml/.yml paths.
// Settings missing from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config %s: %w", path, err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return config, fmt.Errorf("parse config %s: %w", path, err)
	}

	return config, nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	config := DefaultConfig()

	if val := os.Getenv("JSTRING_INTERN_BYTES"); val != "" {
		if parsed, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.InternCapacity = parsed
		}
	}

	if val := os.Getenv("JSTRING_INTERN_TTL_SECONDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.InternTTLSeconds = parsed
		}
	}

	if val := os.Getenv("JSTRING_HOST"); val != "" {
		config.Host = val
	}

	if val := os.Getenv("JSTRING_API_PORT"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.APIPort = parsed
		}
	}

	if val := os.Getenv("JSTRING_BASE_PATH"); val != "" {
		config.BasePath = val
	}

	if val := os.Getenv("JSTRING_PROTOCOL"); val != "" {
		config.Protocol = strings.ToLower(val)
	}

	if val := os.Getenv("JSTRING_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	if val := os.Getenv("JSTRING_LOG_FORMAT"); val != "" {
		config.LogFormat = val
	}

	return config
}

// SaveToFile saves configuration as JSON, or YAML for .yaml/.yml paths
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
