package disc_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"showbrake/internal/disc"
)

type stubSource struct {
	output string
	err    error

	input       string
	minDuration int
}

func (s *stubSource) Scan(ctx context.Context, input string, minDuration int, onLine func(string)) error {
	s.input = input
	s.minDuration = minDuration
	for _, line := range strings.Split(s.output, "\n") {
		onLine(line)
	}
	return s.err
}

func TestScannerBuildsDisc(t *testing.T) {
	volume := t.TempDir()
	if err := os.Mkdir(filepath.Join(volume, "VIDEO_TS"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	source := &stubSource{output: sampleScan}
	scanner := disc.NewScanner(source, 600, nil)

	var last disc.ScanProgress
	result, err := scanner.Scan(context.Background(), volume, func(p disc.ScanProgress) { last = p })
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if source.input != volume || source.minDuration != 600 {
		t.Fatalf("unexpected scan invocation: input=%q min=%d", source.input, source.minDuration)
	}
	if result.MediaType != disc.MediaTypeDVD {
		t.Fatalf("expected dvd media type, got %q", result.MediaType)
	}
	if len(result.Titles) != 2 {
		t.Fatalf("expected 2 titles, got %d", len(result.Titles))
	}
	if !last.Complete || last.ExpectedTitles != 2 {
		t.Fatalf("unexpected final progress: %+v", last)
	}
}

func TestScannerEmptyOutputIsNotAnError(t *testing.T) {
	scanner := disc.NewScanner(&stubSource{}, 600, nil)
	result, err := scanner.Scan(context.Background(), t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(result.Titles) != 0 {
		t.Fatalf("expected no titles, got %d", len(result.Titles))
	}
}

func TestScannerReturnsSourceErrorBeforeCompletion(t *testing.T) {
	boom := errors.New("exec: HandBrakeCLI: not found")
	scanner := disc.NewScanner(&stubSource{err: boom}, 600, nil)
	if _, err := scanner.Scan(context.Background(), "/nowhere", nil); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
}

func TestScannerKeepsTitlesWhenToolFailsAfterCompletion(t *testing.T) {
	scanner := disc.NewScanner(&stubSource{output: sampleScan, err: errors.New("exit status 3")}, 600, nil)
	result, err := scanner.Scan(context.Background(), "/nowhere", nil)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(result.Titles) != 2 {
		t.Fatalf("expected titles to be kept, got %d", len(result.Titles))
	}
}

func TestScannerRequiresSource(t *testing.T) {
	scanner := disc.NewScanner(nil, 600, nil)
	if _, err := scanner.Scan(context.Background(), "/nowhere", nil); err == nil {
		t.Fatal("expected error for missing source")
	}
}
