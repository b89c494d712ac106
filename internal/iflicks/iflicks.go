package iflicks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"showbrake/internal/logging"
)

// Mode selects what happens to a finished episode.
type Mode int

const (
	// ModeSkip leaves episodes alone.
	ModeSkip Mode = iota
	// ModeAdd imports episodes without starting the iFlicks queue.
	ModeAdd
	// ModeQueue imports episodes and lets iFlicks process them at once.
	ModeQueue
)

// Options lists the menu labels for each Mode, in Mode order.
var Options = []string{
	"Do not add to iFlicks",
	"Add to iFlicks, but do not queue",
	"Add to iFlicks and queue immediately",
}

// String returns the menu label for the mode.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(Options) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return Options[m]
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		if text := strings.TrimSpace(string(output)); text != "" {
			return fmt.Errorf("%w: %s", err, text)
		}
		return err
	}
	return nil
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "iflicks")
	}
}

// Client hands finished episodes to iFlicks through AppleScript.
type Client struct {
	appPath   string
	osascript string
	mode      Mode
	exec      Executor
	logger    *slog.Logger
}

// New constructs a client for the app bundle at appPath.
func New(appPath, osascript string, opts ...Option) *Client {
	if strings.TrimSpace(osascript) == "" {
		osascript = "osascript"
	}
	client := &Client{
		appPath:   strings.TrimSpace(appPath),
		osascript: osascript,
		exec:      commandExecutor{},
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Installed reports whether the iFlicks app bundle exists.
func (c *Client) Installed() bool {
	if c == nil || c.appPath == "" {
		return false
	}
	info, err := os.Stat(c.appPath)
	return err == nil && info.IsDir()
}

// SetMode selects the import behaviour for later Add calls.
func (c *Client) SetMode(mode Mode) error {
	if mode < ModeSkip || mode > ModeQueue {
		return fmt.Errorf("invalid iflicks mode %d", int(mode))
	}
	c.mode = mode
	return nil
}

// Mode returns the current import behaviour.
func (c *Client) Mode() Mode {
	return c.mode
}

// ScriptArgs returns the osascript arguments that import file.
func (c *Client) ScriptArgs(file string) []string {
	gui := "with"
	if c.mode == ModeQueue {
		gui = "without"
	}
	lines := []string{
		`tell application "iFlicks"`,
		fmt.Sprintf(`import %q as iTunes compatible %s gui with deleting`, file, gui),
		`end tell`,
	}
	args := make([]string, 0, len(lines)*2)
	for _, line := range lines {
		args = append(args, "-e", line)
	}
	return args
}

// Add imports file into iFlicks. It does nothing in ModeSkip.
func (c *Client) Add(ctx context.Context, file string) error {
	if c.mode == ModeSkip {
		return nil
	}
	if strings.TrimSpace(file) == "" {
		return errors.New("iflicks: file required")
	}
	absolute, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("iflicks: resolve %q: %w", file, err)
	}
	if err := c.exec.Run(ctx, c.osascript, c.ScriptArgs(absolute)); err != nil {
		return fmt.Errorf("iflicks import %s: %w", filepath.Base(absolute), err)
	}
	c.logger.Info("episode handed to iflicks",
		logging.String(logging.FieldEventType, "iflicks_import"),
		logging.String("file", absolute),
		logging.String("mode", c.mode.String()),
	)
	return nil
}
