package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/hance08/payledger/internal/constants"
)

// SetDefaults registers every key with its default so env overrides and
// freshly written config files see the full key set.
func SetDefaults(v *viper.Viper) {
	d := NewDefault()
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("kafka.brokers", d.Kafka.Brokers)
	v.SetDefault("kafka.topic", d.Kafka.Topic)
	v.SetDefault("kafka.partition", d.Kafka.Partition)
	v.SetDefault("kafka.idle_timeout", d.Kafka.IdleTimeout)
}

// Load reads configuration in increasing precedence: defaults, the config
// file, a .env file in the working directory, then LEDGER_* variables.
//
// With an empty cfgFile the file is looked up in dir and is optional.
func Load(v *viper.Viper, cfgFile, dir string) (*Config, error) {
	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName(constants.ConfigName)
		v.SetConfigType(constants.ConfigType)
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("config file error: %w", err)
		}
	}

	cfg := NewDefault()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteDefault creates dir/config.yaml with default values unless it exists.
func WriteDefault(v *viper.Viper, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, constants.ConfigName+"."+constants.ConfigType)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case constants.DriverMemory, constants.DriverSQLite:
	case constants.DriverPostgres:
		if c.Database.DSN == "" {
			return errors.New("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("%q is an invalid database driver", c.Database.Driver)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%q is an invalid log format", c.Log.Format)
	}
	return nil
}
