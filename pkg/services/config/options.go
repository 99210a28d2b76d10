package config

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
)

const envPrefix = "RUNAI"

const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Options are the tool's own settings, separate from the persisted connection.
type Options struct {
	ConfigPath string `mapstructure:"config_path"`
	LogLevel   string `mapstructure:"log_level"`
	Output     string `mapstructure:"output"`
	Addr       string `mapstructure:"addr"`

	// APIURL and Token override the stored connection when set.
	APIURL string `mapstructure:"api_url"`
	Token  string `mapstructure:"token"`
}

// LoadOptions reads an optional options file and RUNAI_* environment variables.
// An empty path skips the file.
func LoadOptions(path string) (*Options, error) {
	v := viper.New()
	v.SetDefault("config_path", DefaultPath())
	v.SetDefault("log_level", zerolog.LevelWarnValue)
	v.SetDefault("output", OutputTable)
	v.SetDefault("addr", "127.0.0.1:8787")
	v.SetDefault("api_url", "")
	v.SetDefault("token", "")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read options file: %w", err)
		}
	}

	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return nil, fmt.Errorf("failed to parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

func (o *Options) Validate() error {
	switch o.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("unsupported output %q, expected one of table, json, yaml", o.Output)
	}
	if _, err := zerolog.ParseLevel(o.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", o.LogLevel, err)
	}
	return nil
}

func (o *Options) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(o.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}

// Apply layers the environment overrides on top of a stored connection.
func (o *Options) Apply(cfg domain.ConnectionConfig) domain.ConnectionConfig {
	if o.APIURL != "" {
		cfg.APIURL = o.APIURL
	}
	if o.Token != "" {
		cfg.Token = o.Token
	}
	return cfg
}
