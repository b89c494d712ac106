package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeHandBrake()
	c.normalizeIFlicks()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.VolumesRoot, err = expandPath(strings.TrimSpace(c.Paths.VolumesRoot)); err != nil {
		return fmt.Errorf("paths.volumes_root: %w", err)
	}
	c.Paths.MountTable = strings.TrimSpace(c.Paths.MountTable)
	return nil
}

func (c *Config) normalizeHandBrake() {
	if value, ok := os.LookupEnv("SHOWBRAKE_HANDBRAKE"); ok && strings.TrimSpace(value) != "" {
		c.HandBrake.Binary = value
	}
	c.HandBrake.Binary = strings.TrimSpace(c.HandBrake.Binary)
	if c.HandBrake.Binary == "" {
		c.HandBrake.Binary = defaultHandBrakeBinary
	}

	dirs := make([]string, 0, len(c.HandBrake.SearchDirs))
	for _, dir := range c.HandBrake.SearchDirs {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		if expanded, err := expandPath(dir); err == nil {
			dir = expanded
		}
		dirs = append(dirs, dir)
	}
	c.HandBrake.SearchDirs = dirs
}

func (c *Config) normalizeIFlicks() {
	c.IFlicks.AppPath = strings.TrimSpace(c.IFlicks.AppPath)
	c.IFlicks.OSAScript = strings.TrimSpace(c.IFlicks.OSAScript)
	if c.IFlicks.OSAScript == "" {
		c.IFlicks.OSAScript = defaultOSAScript
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
