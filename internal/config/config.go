// Package config loads benched settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no config file is named explicitly
const DefaultPath = "benched.yaml"

// Storage backends
const (
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Environment overrides
const (
	EnvStorage  = "BENCHED_STORAGE"
	EnvFile     = "BENCHED_FILE"
	EnvRedisURL = "REDIS_URL"
	EnvAddr     = "BENCHED_ADDR"
	EnvTeamSize = "BENCHED_TEAM_SIZE"
)

// StorageConfig selects where the roster lives
type StorageConfig struct {
	Type  string      `yaml:"type"`
	File  string      `yaml:"file"`
	Redis RedisConfig `yaml:"redis"`
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	URL    string `yaml:"url"`
	Roster string `yaml:"roster"`
}

// RosterConfig holds roster behaviour settings
type RosterConfig struct {
	TeamSize      int           `yaml:"team_size"`
	WriteDebounce time.Duration `yaml:"write_debounce"`
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Config models benched.yaml
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Roster  RosterConfig  `yaml:"roster"`
	Server  ServerConfig  `yaml:"server"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Type: StorageFile,
			File: "players.json",
			Redis: RedisConfig{
				URL:    "redis://localhost:6379/0",
				Roster: "default",
			},
		},
		Roster: RosterConfig{
			TeamSize:      2,
			WriteDebounce: 200 * time.Millisecond,
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// Load reads path (or DefaultPath when empty) and applies environment
// overrides. A missing DefaultPath is not an error; a missing explicit path is.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with a custom environment lookup
func LoadWithEnv(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Addr returns the host:port the HTTP server listens on
func (c Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Validate checks the settings are usable
func (c Config) Validate() error {
	switch c.Storage.Type {
	case StorageFile, StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("unknown storage type %q (want file, redis or memory)", c.Storage.Type)
	}
	if c.Storage.Type == StorageRedis && c.Storage.Redis.URL == "" {
		return errors.New("storage.redis.url is required for redis storage")
	}
	if c.Roster.TeamSize < 1 {
		return fmt.Errorf("roster.team_size must be at least 1, got %d", c.Roster.TeamSize)
	}
	if c.Roster.WriteDebounce < 0 {
		return errors.New("roster.write_debounce must not be negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvStorage); ok && v != "" {
		c.Storage.Type = strings.ToLower(v)
	}
	if v, ok := lookup(EnvFile); ok && v != "" {
		c.Storage.File = v
	}
	if v, ok := lookup(EnvRedisURL); ok && v != "" {
		c.Storage.Redis.URL = v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		host, port, err := net.SplitHostPort(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAddr, err)
		}
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("%s: invalid port %q", EnvAddr, port)
		}
		c.Server.Host = host
		c.Server.Port = p
	}
	if v, ok := lookup(EnvTeamSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid team size %q", EnvTeamSize, v)
		}
		c.Roster.TeamSize = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Storage.Type == "" {
		c.Storage.Type = def.Storage.Type
	}
	if c.Storage.File == "" {
		c.Storage.File = def.Storage.File
	}
	if c.Storage.Redis.Roster == "" {
		c.Storage.Redis.Roster = def.Storage.Redis.Roster
	}
	if c.Roster.TeamSize == 0 {
		c.Roster.TeamSize = def.Roster.TeamSize
	}
}
