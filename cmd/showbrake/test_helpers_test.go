package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"showbrake/internal/config"
	"showbrake/internal/testsupport"
)

const stubScan = `[10:02:11] hb_init: starting libhb thread
[10:02:11] Disc has 3 title(s)
Scanning title 1 of 3, preview 1
Scanning title 2 of 3, preview 1
Scanning title 3 of 3, preview 1
[10:02:14] libhb: scan thread found 3 valid title(s)
+ title 1:
  + chapters:
    + 1: cells 0->0, 100 blocks, duration 00:22:00
    + 2: cells 1->1, 100 blocks, duration 00:22:00
  + audio tracks:
    + 1, English (AC3) (5.1 ch) (iso639-2: eng), 48000Hz, 448000bps
  + subtitle tracks:
+ title 4:
  + chapters:
    + 1: cells 0->0, 100 blocks, duration 00:22:00
  + audio tracks:
    + 1, English (AC3) (5.1 ch) (iso639-2: eng), 48000Hz, 448000bps
  + subtitle tracks:
+ title 5:
  + chapters:
    + 1: cells 0->0, 100 blocks, duration 00:21:30
  + audio tracks:
    + 1, English (AC3) (5.1 ch) (iso639-2: eng), 48000Hz, 448000bps
  + subtitle tracks:
HandBrake has exited.
`

// stubHandBrake scans by printing stubScan and rips by creating the output
// file. Each invocation's arguments are appended to calls.log.
const stubHandBrake = `#!/bin/sh
dir=$(dirname "$0")
echo "$@" >> "$dir/calls.log"
out=""
prev=""
for arg in "$@"; do
  if [ "$prev" = "--output" ]; then out="$arg"; fi
  prev="$arg"
done
if [ -n "$out" ]; then
  echo "Encoding: task 1 of 1, 100.00 %"
  : > "$out"
  exit 0
fi
cat "$dir/scan.txt"
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	binDir     string
	volumePath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	opts = append([]testsupport.ConfigOption{testsupport.WithVolume("SHOW_S1_D1", false)}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	binDir := filepath.Join(base, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	if err := os.WriteFile(filepath.Join(binDir, "scan.txt"), []byte(stubScan), 0o644); err != nil {
		t.Fatalf("write scan output: %v", err)
	}
	binary := filepath.Join(binDir, "HandBrakeCLI")
	if err := os.WriteFile(binary, []byte(stubHandBrake), 0o755); err != nil {
		t.Fatalf("write handbrake stub: %v", err)
	}
	cfg.HandBrake.Binary = binary

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		binDir:     binDir,
		volumePath: filepath.Join(cfg.Paths.VolumesRoot, "SHOW_S1_D1"),
	}
}

func (e *cliTestEnv) handBrakeCalls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.binDir, "calls.log"))
	if err != nil {
		t.Fatalf("read calls: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
state_dir = %q
log_dir = ""
output_dir = %q
volumes_root = %q
mount_table = %q

[handbrake]
binary = %q
search_dirs = []

[iflicks]
app_path = %q

[logging]
level = "error"
`,
		cfg.Paths.StateDir,
		cfg.Paths.OutputDir,
		cfg.Paths.VolumesRoot,
		cfg.Paths.MountTable,
		cfg.HandBrake.Binary,
		cfg.IFlicks.AppPath,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
