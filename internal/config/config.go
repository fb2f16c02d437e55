package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

const (
	UpdateModeLenient = "lenient"
	UpdateModeStrict  = "strict"

	DriverSqlite = "sqlite"
	DriverMemory = "memory"
)

type Server struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Debug      bool   `toml:"debug_mode"`
	LogLevel   string `toml:"log_level"`
	UpdateMode string `toml:"update_mode"`
	SeedDemo   bool   `toml:"seed_demo"`
}

type Storage struct {
	Driver     string `toml:"driver"`
	SqliteFile string `toml:"sqlite_file"`
}

type Config struct {
	Server  Server  `toml:"server"`
	Storage Storage `toml:"storage"`
}

// New reads the toml file at path, applies environment overrides and fills
// in defaults.
func New(path string) (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if port := os.Getenv("ROSTER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("env ROSTER_PORT: %w", err)
		}
		cfg.Server.Port = p
	}
	if file := os.Getenv("ROSTER_SQLITE_FILE"); file != "" {
		cfg.Storage.SqliteFile = file
	}
	if mode := os.Getenv("ROSTER_UPDATE_MODE"); mode != "" {
		cfg.Server.UpdateMode = mode
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Server.UpdateMode == "" {
		cfg.Server.UpdateMode = UpdateModeLenient
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverSqlite
	}
	if cfg.Storage.SqliteFile == "" {
		cfg.Storage.SqliteFile = "players.sqlite"
	}
}

func (c Config) Validate() error {
	var err error
	switch c.Server.UpdateMode {
	case UpdateModeLenient, UpdateModeStrict:
	default:
		err = errors.Join(err, fmt.Errorf("unknown update_mode %q", c.Server.UpdateMode))
	}
	switch c.Storage.Driver {
	case DriverSqlite, DriverMemory:
	default:
		err = errors.Join(err, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		err = errors.Join(err, fmt.Errorf("port %d out of range", c.Server.Port))
	}
	return err
}
