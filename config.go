package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/linfeas/linfeas/solver"
)

const defaultConfigPath = "linfeas.yaml"

// config holds the settings of the linfeas command.
// It is read from a YAML file; command-line flags take precedence.
type config struct {
	MaxInequalities int    `yaml:"max_inequalities"`
	Workers         int    `yaml:"workers"`
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
}

func defaultConfig() config {
	return config{
		MaxInequalities: solver.DefaultMaxInequalities,
		Workers:         runtime.GOMAXPROCS(0),
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// loadConfig reads the configuration from path, on top of the default values.
// A missing file is only an error if required is true.
func loadConfig(path string, required bool) (config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return cfg, nil
	}
	if err != nil {
		return config{}, fmt.Errorf("could not read config: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return config{}, fmt.Errorf("could not parse config %q: %v", path, err)
	}
	return cfg, nil
}

func (c config) validate() error {
	if c.MaxInequalities <= 0 {
		return fmt.Errorf("max_inequalities must be positive, got %d", c.MaxInequalities)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func (c config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return lvl, nil
}

// logger returns a logger writing on w with the configured level and format.
func (c config) logger(w io.Writer) (*slog.Logger, error) {
	lvl, err := c.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func (c config) solverOptions(logger *slog.Logger) solver.Options {
	return solver.Options{MaxInequalities: c.MaxInequalities, Logger: logger}
}
