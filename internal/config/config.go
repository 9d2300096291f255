// Package config loads the settings of the command line tool from a YAML file, DESCRIBE_ environment
// variables and command line flags, in increasing order of precedence.
package config

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/askiada/go-describe/internal/logging"
	"github.com/askiada/go-describe/internal/report"
	"github.com/askiada/go-describe/pkg/dataset"
)

const (
	EnvPrefix = "DESCRIBE"
	// FileName is the name of the configuration file looked up in the working directory, without extension.
	FileName = "describe"

	KeyOutput      = "output"
	KeyLogLevel    = "log-level"
	KeyDelimiter   = "delimiter"
	KeyConcurrency = "concurrency"
	KeyNaValues    = "na-values"
	KeyGraph       = "graph"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings shared by every command.
type Config struct {
	Output      string   `mapstructure:"output"`
	LogLevel    string   `mapstructure:"log-level"`
	Delimiter   string   `mapstructure:"delimiter"`
	Concurrency int      `mapstructure:"concurrency"`
	NaValues    []string `mapstructure:"na-values"`
	// Graph is the path of the DOT file describing the profiling stream. Empty means no file.
	Graph string `mapstructure:"graph"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutput, string(report.Text))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyDelimiter, ",")
	v.SetDefault(KeyConcurrency, 1)
	v.SetDefault(KeyNaValues, dataset.DefaultNaValues)
	v.SetDefault(KeyGraph, "")
}

// BindFlags binds the flags named after the configuration keys.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeyOutput, KeyLogLevel, KeyDelimiter, KeyConcurrency, KeyNaValues, KeyGraph} {
		flag := flags.Lookup(key)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "unable to bind flag %s", key)
		}
	}

	return nil
}

// Load reads the configuration file at path, or ./describe.yaml when path is empty and the file exists,
// then applies the environment and validates the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "unable to read config file %s", path)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "unable to read config file")
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if _, err := report.ParseFormat(c.Output); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if _, err := parseDelimiter(c.Delimiter); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		return errors.Wrapf(ErrInvalidConfig, "concurrency must be at least 1, got %d", c.Concurrency)
	}

	return nil
}

// Format returns the output format. It is only valid once Validate returned nil.
func (c *Config) Format() report.Format {
	f, _ := report.ParseFormat(c.Output)

	return f
}

// DelimiterRune returns the field delimiter. It is only valid once Validate returned nil.
func (c *Config) DelimiterRune() rune {
	r, _ := parseDelimiter(c.Delimiter)

	return r
}

// parseDelimiter accepts a single character, or "tab" and "\t" for tabulations.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.Wrapf(ErrInvalidConfig, "delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, errors.Wrapf(ErrInvalidConfig, "delimiter %q is not allowed", s)
	}

	return r, nil
}
