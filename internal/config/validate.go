package config

import (
	"errors"
	"fmt"
	"sort"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateHandBrake(); err != nil {
		return err
	}
	if err := c.validateEpisodes(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateHandBrake() error {
	if c.HandBrake.Binary == "" {
		return errors.New("handbrake.binary must be set")
	}
	return nil
}

func (c *Config) validateEpisodes() error {
	if c.Episodes.MinimumLengthSeconds <= 0 {
		return errors.New("episodes.minimum_length_seconds must be positive")
	}
	if c.Episodes.DurationDeviation <= 0 || c.Episodes.DurationDeviation > 1 {
		return errors.New("episodes.duration_deviation must be greater than 0 and at most 1")
	}
	return nil
}

func (c *Config) validateEncoding() error {
	tables := []struct {
		name   string
		values map[string]any
	}{
		{"encoding.common", c.Encoding.Common},
		{"encoding.dvd", c.Encoding.DVD},
		{"encoding.bluray", c.Encoding.BluRay},
	}
	for _, table := range tables {
		keys := make([]string, 0, len(table.values))
		for key := range table.values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			switch table.values[key].(type) {
			case string, bool, int, int64, float64:
			default:
				return fmt.Errorf("%s.%s: unsupported value type %T", table.name, key, table.values[key])
			}
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
