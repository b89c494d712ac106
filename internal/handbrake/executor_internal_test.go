package handbrake

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

func TestScanLinesOrCarriageReturns(t *testing.T) {
	input := "first\nsecond\r\nEncoding 10 %\rEncoding 20 %\rlast"
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Split(scanLinesOrCarriageReturns)

	var got []string
	for scanner.Scan() {
		got = append(got, scanner.Text())
	}
	want := []string{"first", "second", "Encoding 10 %", "Encoding 20 %", "last"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tokens: %q", got)
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts unavailable on windows")
	}
	path := filepath.Join(t.TempDir(), "tool.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestCommandExecutorMergesStreamsInOrder(t *testing.T) {
	script := writeScript(t, "echo one\necho two >&2\necho three\n")

	var got []string
	err := commandExecutor{}.Lines(context.Background(), script, nil, func(line string) {
		got = append(got, line)
	})
	if err != nil {
		t.Fatalf("Lines returned error: %v", err)
	}
	want := []string{"one", "two", "three"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected lines: %q", got)
	}
}

func TestCommandExecutorReportsExitStatus(t *testing.T) {
	script := writeScript(t, "echo partial\nexit 3\n")

	var got []string
	err := commandExecutor{}.Lines(context.Background(), script, nil, func(line string) {
		got = append(got, line)
	})
	if err == nil {
		t.Fatal("expected exit status error")
	}
	if len(got) != 1 || got[0] != "partial" {
		t.Fatalf("expected output before failure, got %q", got)
	}
}

func TestCommandExecutorRunDiscardsStderr(t *testing.T) {
	script := writeScript(t, "echo visible\necho hidden >&2\n")

	var out strings.Builder
	if err := (commandExecutor{}).Run(context.Background(), script, nil, &out); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if out.String() != "visible\n" {
		t.Fatalf("unexpected stdout %q", out.String())
	}
}
