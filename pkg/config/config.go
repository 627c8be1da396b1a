package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	xdgAppName = "taskdeck"
	configFile = "config.json"

	DefaultCalendar   = "Tasks"
	DefaultAPIBaseURL = "http://localhost:8000"
	DefaultAPITimeout = 30 * time.Second
	DefaultServerPort = "5000"
)

type Config struct {
	Calendar   string `json:"calendar"`
	APIBaseURL string `json:"api_base_url,omitempty"`
	// APITimeout is a Go duration string such as "30s".
	APITimeout string `json:"api_timeout,omitempty"`
	ServerPort string `json:"server_port,omitempty"`
	LogFile    string `json:"log_file,omitempty"`
	LogLevel   string `json:"log_level,omitempty"`
}

// Timeout returns APITimeout, or the default when unset or unparsable.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.APITimeout)
	if err != nil || d <= 0 {
		return DefaultAPITimeout
	}
	return d
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", xdgAppName), nil
}

func GetConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config file, fills defaults and then applies environment
// overrides. A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	_ = godotenv.Load() // optional
	cfg.applyEnv()
	return cfg, nil
}

// LoadFile reads one config file without environment overrides. A missing
// file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		defer f.Close()
		if err := json.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	if c.Calendar == "" {
		c.Calendar = DefaultCalendar
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.ServerPort == "" {
		c.ServerPort = DefaultServerPort
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

var envOverrides = []struct {
	key   string
	field func(*Config) *string
}{
	{"TASKDECK_CALENDAR", func(c *Config) *string { return &c.Calendar }},
	{"TASKDECK_API_BASE_URL", func(c *Config) *string { return &c.APIBaseURL }},
	{"TASKDECK_API_TIMEOUT", func(c *Config) *string { return &c.APITimeout }},
	{"PORT", func(c *Config) *string { return &c.ServerPort }},
	{"TASKDECK_LOG_FILE", func(c *Config) *string { return &c.LogFile }},
	{"TASKDECK_LOG_LEVEL", func(c *Config) *string { return &c.LogLevel }},
}

func (c *Config) applyEnv() {
	for _, o := range envOverrides {
		if v := os.Getenv(o.key); v != "" {
			*o.field(c) = v
		}
	}
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

func SaveFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}
