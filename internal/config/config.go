package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BPA"

// ServerPolicy controls the HTTP listener.
type ServerPolicy struct {
	Listen          string        `yaml:"listen"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogPolicy controls logging.
type LogPolicy struct {
	Level       string `yaml:"level"`        // debug, info, warn, error
	Format      string `yaml:"format"`       // json or console
	BufferSize  int    `yaml:"buffer_size"`  // entries kept in memory for /admin/logs
	ServiceName string `yaml:"service_name"` // attached to every zap entry
}

// ExportPolicy controls the Excel report.
type ExportPolicy struct {
	Creator        string `yaml:"creator"`
	DefaultPatient string `yaml:"default_patient"` // used when a request names no patient
}

type Config struct {
	Server ServerPolicy `yaml:"server"`
	Log    LogPolicy    `yaml:"log"`
	Export ExportPolicy `yaml:"export"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerPolicy{
			Listen:          ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogPolicy{
			Level:       "info",
			Format:      "json",
			BufferSize:  1000,
			ServiceName: "bp-advisor",
		},
		Export: ExportPolicy{
			Creator:        "BP Monitor App",
			DefaultPatient: "Patient",
		},
	}
}

// Load reads a YAML file over the defaults and then applies environment
// overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.LoadFromEnv(EnvPrefix); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv overrides values from <prefix>_LISTEN, <prefix>_LOG_LEVEL,
// <prefix>_LOG_FORMAT, <prefix>_LOG_BUFFER_SIZE and <prefix>_EXPORT_CREATOR.
func (c *Config) LoadFromEnv(prefix string) error {
	if v := os.Getenv(prefix + "_LISTEN"); v != "" {
		c.Server.Listen = v
	}
	if v := os.Getenv(prefix + "_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(prefix + "_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(prefix + "_LOG_BUFFER_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s_LOG_BUFFER_SIZE: %w", prefix, err)
		}
		c.Log.BufferSize = n
	}
	if v := os.Getenv(prefix + "_EXPORT_CREATOR"); v != "" {
		c.Export.Creator = v
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Server.Listen == "" {
		return errors.New("server.listen must not be empty")
	}
	if c.Log.BufferSize <= 0 {
		return fmt.Errorf("log.buffer_size must be positive, got %d", c.Log.BufferSize)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}
