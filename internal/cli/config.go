package cli

import (
	"os"

	"github.com/mcoot/benched/internal/config"
)

// Config holds CLI configuration
type Config struct {
	ConfigPath string
	FilePath   string
	Storage    string
	ServerURL  string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("BENCHED_SERVER", "http://localhost:8080"),
		Output:    "text",
		Verbose:   false,
	}
}

// Settings loads the config file and applies flag overrides on top.
// Flags beat environment variables, which beat the file.
func (c *Config) Settings() (config.Config, error) {
	settings, err := config.Load(c.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if c.Storage != "" {
		settings.Storage.Type = c.Storage
	}
	if c.FilePath != "" {
		settings.Storage.File = c.FilePath
	}
	if err := settings.Validate(); err != nil {
		return config.Config{}, err
	}
	return settings, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
