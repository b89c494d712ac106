package handbrake

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

// Executor abstracts command execution for testability.
type Executor interface {
	// Lines runs binary and hands each line of its combined stdout and
	// stderr to onLine in output order.
	Lines(ctx context.Context, binary string, args []string, onLine func(string)) error
	// Run runs binary with stdout copied to the writer and stderr discarded.
	Run(ctx context.Context, binary string, args []string, stdout io.Writer) error
}

const maxLineBytes = 1024 * 1024

type commandExecutor struct{}

func (commandExecutor) Lines(ctx context.Context, binary string, args []string, onLine func(string)) error {
	reader, writer, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("output pipe: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Stdout = writer
	cmd.Stderr = writer
	if err := cmd.Start(); err != nil {
		_ = reader.Close()
		_ = writer.Close()
		return fmt.Errorf("start command: %w", err)
	}
	// The child holds its own copy; closing ours lets the reader see EOF.
	_ = writer.Close()

	var group errgroup.Group
	group.Go(func() error {
		defer reader.Close()
		scanner := bufio.NewScanner(reader)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		scanner.Split(scanLinesOrCarriageReturns)
		for scanner.Scan() {
			if onLine != nil {
				onLine(scanner.Text())
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read output: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("wait command: %w", err)
		}
		return nil
	})
	return group.Wait()
}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, stdout io.Writer) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	if stdout == nil {
		stdout = io.Discard
	}
	cmd.Stdout = stdout
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run command: %w", err)
	}
	return nil
}

// scanLinesOrCarriageReturns splits on \n, \r\n and bare \r so in-place
// progress updates arrive as separate lines.
func scanLinesOrCarriageReturns(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\r' {
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if !atEOF {
				// Need one more byte to tell \r from \r\n.
				return 0, nil, nil
			}
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
