// Package config loads the writer configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/japaniel/writer/pkg/cedict"
)

// DefaultPath is where the CLI looks for configuration when no path is given.
const DefaultPath = "config.toml"

// Config is the root configuration. It is loaded once at startup and passed
// by value to whatever needs it.
type Config struct {
	// Database is the SQLite file holding documents and dictionaries.
	Database string `toml:"database"`
	// StrokeOrderData is the directory with stroke-order data for the
	// writing pages.
	StrokeOrderData string       `toml:"stroke_order_data"`
	Import          ImportConfig `toml:"import"`
	Log             LogConfig    `toml:"log"`
}

// ImportConfig holds dictionary import settings.
type ImportConfig struct {
	Workers   int    `toml:"workers"`
	ChunkSize int    `toml:"chunk_size"`
	SourceURL string `toml:"source_url"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Database:        "writer.sqlite",
		StrokeOrderData: "www/stroke-order",
		Import: ImportConfig{
			Workers:   4,
			ChunkSize: 2000,
			SourceURL: cedict.DefaultSourceURL,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the file at path on top of Default. Keys absent from the file
// keep their default values. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("config %s: %s", path, strict.String())
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when path is the
// default path and no such file exists.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Database) == "" {
		errs = append(errs, errors.New("database must be set"))
	}
	if c.Import.Workers < 1 {
		errs = append(errs, fmt.Errorf("import.workers must be at least 1, got %d", c.Import.Workers))
	}
	if c.Import.ChunkSize < 1 {
		errs = append(errs, fmt.Errorf("import.chunk_size must be at least 1, got %d", c.Import.ChunkSize))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
