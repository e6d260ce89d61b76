package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hance08/payledger/internal/constants"
)

type Config struct {
	Database   DatabaseConfig `mapstructure:"database"`
	Log        LogConfig      `mapstructure:"log"`
	Output     OutputConfig   `mapstructure:"output"`
	Kafka      KafkaConfig    `mapstructure:"kafka"`
	ConfigPath string         `mapstructure:"-"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
}

type KafkaConfig struct {
	Brokers     []string      `mapstructure:"brokers"`
	Topic       string        `mapstructure:"topic"`
	Partition   int           `mapstructure:"partition"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

func NewDefault() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: constants.DriverMemory},
		Log:      LogConfig{Level: "warn", Format: "console"},
		Output:   OutputConfig{Format: "csv"},
		Kafka:    KafkaConfig{Brokers: []string{}, Topic: "ledger-events", IdleTimeout: 5 * time.Second},
	}
}

// DBPath returns the sqlite file to use, falling back to the app data dir.
func (c DatabaseConfig) DBPath() (string, error) {
	if c.Path != "" {
		return ExpandPath(c.Path)
	}
	dir, err := AppDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.DBFileName), nil
}

func AppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, "."+constants.AppName), nil
	}

	return filepath.Join(configDir, constants.AppName), nil
}

func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	if path[1] == '/' || path[1] == '\\' {
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
