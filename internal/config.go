package internal

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/tuannm99/arenadb/internal/heap"
)

// EnvPrefix prefixes environment overrides, e.g. ARENADB_SERVER_ADDR.
const EnvPrefix = "ARENADB"

type ArenaConfig struct {
	AppName string `mapstructure:"app_name"`

	Storage struct {
		TableCapacity int `mapstructure:"table_capacity"`
	} `mapstructure:"storage"`

	Shell struct {
		Prompt      string `mapstructure:"prompt"`
		HistoryFile string `mapstructure:"history_file"`
	} `mapstructure:"shell"`

	Server struct {
		Addr        string `mapstructure:"addr"`
		MetricsAddr string `mapstructure:"metrics_addr"`
	} `mapstructure:"server"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

// NewViper returns a viper instance with defaults and env overrides set up.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("app_name", "arenadb")
	v.SetDefault("storage.table_capacity", heap.DefaultCapacity)
	v.SetDefault("shell.prompt", "db > ")
	v.SetDefault("shell.history_file", "")
	v.SetDefault("server.addr", "127.0.0.1:8866")
	v.SetDefault("server.metrics_addr", "")
	v.SetDefault("log.level", "warn")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads path (YAML) when given, then decodes v.
// An empty path means defaults, env and bound flags only.
func LoadConfig(v *viper.Viper, path string) (*ArenaConfig, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg ArenaConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Storage.TableCapacity <= 0 {
		return nil, fmt.Errorf("config: storage.table_capacity must be positive, got %d", cfg.Storage.TableCapacity)
	}
	if _, err := ParseLogLevel(cfg.Log.Level); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ParseLogLevel maps debug|info|warn|error to a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: invalid log.level %q", s)
	}
	return lvl, nil
}
