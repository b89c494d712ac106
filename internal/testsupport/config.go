package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"showbrake/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// File logging is disabled and the mount table points at a missing file so
// only the temp volumes root is searched.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = ""
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.VolumesRoot = filepath.Join(base, "Volumes")
	cfgVal.Paths.MountTable = filepath.Join(base, "mounts")
	cfgVal.HandBrake.SearchDirs = nil
	cfgVal.IFlicks.AppPath = filepath.Join(base, "Applications", "iFlicks.app")

	if err := os.MkdirAll(cfgVal.Paths.VolumesRoot, 0o755); err != nil {
		t.Fatalf("mkdir volumes root: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithVolume creates a mounted-volume directory with a DVD (VIDEO_TS) or
// Blu-ray (BDMV) layout below the volumes root.
func WithVolume(name string, bluray bool) ConfigOption {
	return func(b *configBuilder) {
		marker := "VIDEO_TS"
		if bluray {
			marker = "BDMV"
		}
		dir := filepath.Join(b.cfg.Paths.VolumesRoot, name, marker)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			b.t.Fatalf("mkdir volume %s: %v", name, err)
		}
	}
}

// WithIFlicksInstalled creates the iFlicks app bundle directory.
func WithIFlicksInstalled() ConfigOption {
	return func(b *configBuilder) {
		if err := os.MkdirAll(b.cfg.IFlicks.AppPath, 0o755); err != nil {
			b.t.Fatalf("mkdir iflicks app: %v", err)
		}
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, HandBrakeCLI and osascript are
// stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"HandBrakeCLI", "osascript"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
