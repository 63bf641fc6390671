package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"svw.info/battleship/internal/movelog"
)

// Config holds startup settings. Board size is fixed for the lifetime of a
// run; the fleet is always the standard one.
type Config struct {
	BoardSize   int    `mapstructure:"size"`
	Addr        string `mapstructure:"addr"`
	PersistPath string `mapstructure:"persist-path"`
	LogLevel    string `mapstructure:"log-level"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("size", 10)
	v.SetDefault("addr", ":8080")
	v.SetDefault("persist-path", "./data")
	v.SetDefault("log-level", "info")
}

// Load reads the optional config file and BATTLESHIP_* environment
// variables into a Config. A missing default config file is not an error.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("battleship")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("battleship")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if c.BoardSize <= 0 || c.BoardSize > movelog.MaxBoardSize {
		return Config{}, fmt.Errorf("size %d not in [1, %d]", c.BoardSize, movelog.MaxBoardSize)
	}
	return c, nil
}

// Level maps the log-level setting to a slog level.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
