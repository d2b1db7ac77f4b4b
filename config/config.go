package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Log represents logger specific options
type Log struct {
	Level string `mapstructure:"level"`
}

// Server represents http server settings
type Server struct {
	Port int `mapstructure:"port"`
}

// Storage represents storage settings
type Storage struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Config is a toplevel config structure
type Config struct {
	Log     Log     `mapstructure:"log"`
	Server  Server  `mapstructure:"server"`
	Storage Storage `mapstructure:"storage"`
}

// Load will load and initialize config from env.
// Env vars are prefixed with LEDGER, e.g LEDGER_STORAGE_DSN.
// Missing storage DSN is a fatal condition
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ledger")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("server.port", 3000)
	v.SetDefault("storage.driver", "sqlite3")

	// AutomaticEnv resolves keys lazily so bind them explicitly
	// to have them picked up by Unmarshal
	for _, key := range []string{"log.level", "server.port", "storage.driver", "storage.dsn"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "Failed to unmarshal config")
	}

	if cfg.Storage.DSN == "" {
		return nil, errors.New("Missing required config: storage.dsn (LEDGER_STORAGE_DSN)")
	}

	return &cfg, nil
}
