// Package config loads CLI settings from .modelgen.yaml, MODELGEN_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileName = ".modelgen"
	configFileType = "yaml"
	envPrefix      = "MODELGEN"

	KeyDev         = "dev"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
	KeyAllowHTTP   = "allow_http"
	KeyHTTPTimeout = "http_timeout"
	KeyMaxBytes    = "max_bytes"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds resolved CLI settings.
type Config struct {
	Dev         bool
	LogLevel    string
	LogFormat   string
	AllowHTTP   bool
	HTTPTimeout time.Duration
	MaxBytes    int64

	// File is the config file that was read, empty when none was found.
	File string
}

// Options controls where Load looks for settings.
type Options struct {
	// Path points at an explicit config file. A missing explicit file is an
	// error; a missing .modelgen.yaml in SearchPaths is not.
	Path string

	// SearchPaths are directories searched for .modelgen.yaml. Defaults to
	// the working directory.
	SearchPaths []string

	// Flags are bound over file and environment values. Flag names use
	// dashes ("log-level" maps to log_level).
	Flags *pflag.FlagSet
}

// Load resolves settings with precedence flags > env > file > defaults.
func Load(opts Options) (Config, error) {
	v := viper.New()
	v.SetDefault(KeyDev, true)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, FormatText)
	v.SetDefault(KeyAllowHTTP, false)
	v.SetDefault(KeyHTTPTimeout, 10*time.Second)
	v.SetDefault(KeyMaxBytes, int64(8<<20))

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for _, key := range []string{KeyDev, KeyLogLevel, KeyLogFormat, KeyAllowHTTP, KeyHTTPTimeout, KeyMaxBytes} {
			flag := opts.Flags.Lookup(strings.ReplaceAll(key, "_", "-"))
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return Config{}, fmt.Errorf("config: bind flag %s: %w", flag.Name, err)
			}
		}
	}

	if opts.Path != "" {
		v.SetConfigFile(opts.Path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		paths := opts.SearchPaths
		if len(paths) == 0 {
			paths = []string{"."}
		}
		for _, path := range paths {
			v.AddConfigPath(path)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.Path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := Config{
		Dev:         v.GetBool(KeyDev),
		LogLevel:    strings.ToLower(v.GetString(KeyLogLevel)),
		LogFormat:   strings.ToLower(v.GetString(KeyLogFormat)),
		AllowHTTP:   v.GetBool(KeyAllowHTTP),
		HTTPTimeout: v.GetDuration(KeyHTTPTimeout),
		MaxBytes:    v.GetInt64(KeyMaxBytes),
		File:        v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown log settings and negative limits.
func (c Config) Validate() error {
	if _, err := c.level(); err != nil {
		return err
	}
	switch c.LogFormat {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("config: log_format must be %q or %q, got %q", FormatText, FormatJSON, c.LogFormat)
	}
	if c.HTTPTimeout < 0 {
		return errors.New("config: http_timeout must not be negative")
	}
	if c.MaxBytes < 0 {
		return errors.New("config: max_bytes must not be negative")
	}
	return nil
}

func (c Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: log_level: %w", err)
	}
	return level, nil
}

// Logger builds a slog logger writing to w in the configured format.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
}
