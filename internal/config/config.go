package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StateDir    string `toml:"state_dir"`
	LogDir      string `toml:"log_dir"`
	OutputDir   string `toml:"output_dir"`
	VolumesRoot string `toml:"volumes_root"`
	MountTable  string `toml:"mount_table"`
}

// HandBrake contains HandBrakeCLI discovery and invocation settings.
type HandBrake struct {
	Binary     string   `toml:"binary"`
	SearchDirs []string `toml:"search_dirs"`
	// ExtraArgs are appended verbatim to every invocation.
	ExtraArgs []string `toml:"extra_args"`
}

// Episodes contains the thresholds used to suggest episode boundaries.
type Episodes struct {
	MinimumLengthSeconds int     `toml:"minimum_length_seconds"`
	DurationDeviation    float64 `toml:"duration_deviation"`
}

// Encoding holds HandBrakeCLI option overrides. Keys are long option names
// without the leading dashes; true renders a bare flag and false removes a
// built-in default.
type Encoding struct {
	Common map[string]any `toml:"common"`
	DVD    map[string]any `toml:"dvd"`
	BluRay map[string]any `toml:"bluray"`
}

// IFlicks contains settings for handing finished episodes to iFlicks.
type IFlicks struct {
	AppPath   string `toml:"app_path"`
	OSAScript string `toml:"osascript"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for showbrake.
//
// Configuration sections by subsystem:
//   - Paths: state, logs, episode output and volume discovery
//   - HandBrake: scan/rip binary and pass-through arguments
//   - Episodes: episode suggestion thresholds
//   - Encoding: HandBrakeCLI option overrides per media type
//   - IFlicks: media library hand-off
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	HandBrake HandBrake `toml:"handbrake"`
	Episodes  Episodes  `toml:"episodes"`
	Encoding  Encoding  `toml:"encoding"`
	IFlicks   IFlicks   `toml:"iflicks"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/showbrake/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("showbrake.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state, log and output directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir, c.Paths.OutputDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// EncodingOptions returns the HandBrakeCLI options for a media type
// ("dvd" or "bluray"): built-in defaults, then [encoding.common], then the
// media-specific table.
func (c *Config) EncodingOptions(mediaType string) map[string]any {
	merged := map[string]any{}
	apply := func(src map[string]any) {
		for key, value := range src {
			merged[strings.TrimLeft(strings.TrimSpace(key), "-")] = value
		}
	}

	apply(defaultEncoding.Common)
	apply(c.Encoding.Common)
	switch strings.ToLower(strings.TrimSpace(mediaType)) {
	case "dvd":
		apply(defaultEncoding.DVD)
		apply(c.Encoding.DVD)
	case "bluray":
		apply(defaultEncoding.BluRay)
		apply(c.Encoding.BluRay)
	}
	return merged
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
