package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"showbrake/internal/episode"
	"showbrake/internal/testsupport"
)

func TestInteractiveSessionRipsEpisodes(t *testing.T) {
	env := setupCLITestEnv(t)

	input := strings.Join([]string{
		"Bluey", // show
		"",      // season 1
		"",      // first episode 1
		"n",     // foreign subtitles
		"1",     // decomb off
		"",      // accept suggestion
	}, "\n") + "\n"

	out, _, err := runCLI(t, []string{env.volumePath, "--", "--verbose", "0"}, env.configPath, input)
	if err != nil {
		t.Fatalf("session: %v\n%s", err, out)
	}
	requireContains(t, out, "[ 2 3 ] > ")
	requireContains(t, out, "Creating Bluey S01E01.mp4")
	requireContains(t, out, "Finished 2 episode(s) from SHOW_S1_D1")

	for _, name := range []string{"Bluey S01E01.mp4", "Bluey S01E02.mp4"} {
		if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, name)); err != nil {
			t.Fatalf("expected episode file %s: %v", name, err)
		}
	}

	calls := env.handBrakeCalls(t)
	if len(calls) != 3 {
		t.Fatalf("expected scan plus 2 rips, got %d calls: %v", len(calls), calls)
	}
	if !strings.HasPrefix(calls[0], "--input "+env.volumePath+" --title 0 --min-duration 600") {
		t.Fatalf("unexpected scan call %q", calls[0])
	}
	for i, title := range []string{"--title 4", "--title 5"} {
		call := calls[i+1]
		if !strings.Contains(call, title) || !strings.HasSuffix(call, "--verbose 0") {
			t.Fatalf("unexpected rip call %q", call)
		}
		if strings.Contains(call, "--decomb") || strings.Contains(call, "--subtitle") {
			t.Fatalf("unexpected DVD filters in %q", call)
		}
	}

	out, _, err = runCLI(t, []string{"prefs", "show"}, env.configPath, "")
	if err != nil {
		t.Fatalf("prefs show: %v", err)
	}
	requireContains(t, out, "Updated")
	requireContains(t, out, "show_title")
	requireContains(t, out, `"Bluey"`)

	out, _, err = runCLI(t, []string{"prefs", "reset"}, env.configPath, "")
	if err != nil {
		t.Fatalf("prefs reset: %v", err)
	}
	requireContains(t, out, "Cleared 5 remembered answer(s)")
}

func TestInteractiveSessionStopsWhenInputEnds(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{env.volumePath}, env.configPath, "Bluey\n")
	if err == nil {
		t.Fatal("expected error when input ends early")
	}
	if _, statErr := os.Stat(filepath.Join(env.binDir, "calls.log")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no HandBrakeCLI calls before answers are complete, stat err=%v", statErr)
	}
}

func TestScanCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"scan"}, env.configPath, "")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	requireContains(t, out, env.volumePath+" (DVD)")
	requireContains(t, out, "1h 27m 30s")
	requireContains(t, out, "44m 00s")
	requireContains(t, out, "Suggested episodes: 2 3")

	out, _, err = runCLI(t, []string{"scan", env.volumePath, "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("scan --json: %v", err)
	}
	var report scanReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode scan json: %v\n%s", err, out)
	}
	if report.Suggestion != "2 3" || report.Disc.TitleCount() != 3 {
		t.Fatalf("unexpected report: suggestion=%q titles=%d", report.Suggestion, report.Disc.TitleCount())
	}
	if report.Disc.Titles[2].Number != 5 {
		t.Fatalf("expected tool title number 5, got %d", report.Disc.Titles[2].Number)
	}
}

func TestScanCommandRejectsNonDiscPath(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"scan", t.TempDir()}, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "is not a DVD or Blu-ray volume") {
		t.Fatalf("expected volume error, got %v", err)
	}

	typo := filepath.Join(env.cfg.Paths.VolumesRoot, "SHOW_S1_D2")
	_, _, err = runCLI(t, []string{"scan", typo}, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "did you mean "+env.volumePath+"?") {
		t.Fatalf("expected suggestion, got %v", err)
	}
}

func TestPlanCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"plan", env.volumePath, "2", "3", "1.1", "--show", "Bluey", "--season", "2", "--episode", "5"}, env.configPath, "")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	for _, want := range []string{"Bluey S02E05.mp4", "Bluey S02E06.mp4", "Bluey S02E07.mp4", "22m 00s"} {
		requireContains(t, out, want)
	}

	_, _, err = runCLI(t, []string{"plan", env.volumePath, "1 4"}, env.configPath, "")
	if err == nil || !strings.Contains(err.Error(), "invalid descriptor 4: title must be between 1 and 3") {
		t.Fatalf("expected range error, got %v", err)
	}

	_, _, err = runCLI(t, []string{"plan", env.volumePath, "1.x"}, env.configPath, "")
	if !errors.Is(err, episode.ErrSyntax) {
		t.Fatalf("expected syntax error, got %v", err)
	}
}

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"status"}, env.configPath, "")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "HandBrakeCLI:")
	requireContains(t, out, "[OK] Ready ("+env.cfg.HandBrake.Binary+")")
	requireContains(t, out, "State directory:")
	requireContains(t, out, "SHOW_S1_D1:")
	requireContains(t, out, "iFlicks:")
	requireContains(t, out, "Not installed")
}

func TestStatusCommandWithOptionalTools(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries("osascript"), testsupport.WithIFlicksInstalled())

	out, _, err := runCLI(t, []string{"status"}, env.configPath, "")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "osascript:")
	requireContains(t, out, "[OK] Installed")
	if strings.Contains(out, "Missing dependencies") {
		t.Fatalf("unexpected missing dependencies:\n%s", out)
	}
}

func TestSplitDashArgs(t *testing.T) {
	tests := []struct {
		args       []string
		dash       int
		positional int
		extra      int
	}{
		{args: []string{"/Volumes/A"}, dash: -1, positional: 1},
		{args: []string{"/Volumes/A", "--verbose", "0"}, dash: 1, positional: 1, extra: 2},
		{args: []string{"--verbose"}, dash: 0, extra: 1},
		{args: nil, dash: -1},
	}
	for _, tc := range tests {
		positional, extra := splitDashArgs(tc.args, tc.dash)
		if len(positional) != tc.positional || len(extra) != tc.extra {
			t.Fatalf("splitDashArgs(%v, %d) = %v, %v", tc.args, tc.dash, positional, extra)
		}
	}
}
