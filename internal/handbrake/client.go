package handbrake

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"showbrake/internal/logging"
)

var (
	// ErrBinaryNotFound reports that no usable HandBrakeCLI executable exists.
	ErrBinaryNotFound = errors.New("handbrake binary not found")
	// ErrRipFailed reports a rip that HandBrakeCLI aborted or failed.
	ErrRipFailed = errors.New("handbrake rip failed")
)

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

// WithExtraArgs appends args to every HandBrakeCLI invocation.
func WithExtraArgs(args []string) Option {
	return func(c *Client) {
		c.extraArgs = append([]string(nil), args...)
	}
}

// WithLogger sets the logger used for invocation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "handbrake")
	}
}

// Client wraps HandBrakeCLI interactions.
type Client struct {
	binary    string
	extraArgs []string
	exec      Executor
	logger    *slog.Logger
}

// New constructs a HandBrakeCLI client for the given executable path.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("handbrake binary required")
	}
	client := &Client{
		binary: binary,
		exec:   commandExecutor{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Binary returns the executable the client invokes.
func (c *Client) Binary() string {
	return c.binary
}

// ScanArgs returns the arguments used to scan input.
func (c *Client) ScanArgs(input string, minDuration int) []string {
	args := []string{"--input", input, "--title", "0"}
	if minDuration > 0 {
		args = append(args, "--min-duration", strconv.Itoa(minDuration))
	}
	return append(args, c.extraArgs...)
}

// Scan asks HandBrakeCLI to inspect every title on input and delivers its
// combined output to onLine.
func (c *Client) Scan(ctx context.Context, input string, minDuration int, onLine func(string)) error {
	args := c.ScanArgs(input, minDuration)
	c.logger.Debug("handbrake scan",
		logging.String("binary", c.binary),
		logging.String("args", strings.Join(args, " ")),
	)
	if err := c.exec.Lines(ctx, c.binary, args, onLine); err != nil {
		return fmt.Errorf("handbrake scan: %w", err)
	}
	return nil
}

// Help returns the text HandBrakeCLI prints for --help.
func (c *Client) Help(ctx context.Context) (string, error) {
	var out bytes.Buffer
	err := c.exec.Run(ctx, c.binary, []string{"--help"}, &out)
	if err != nil && out.Len() == 0 {
		return "", fmt.Errorf("handbrake help: %w", err)
	}
	return out.String(), nil
}

// RipRequest describes one episode to encode.
type RipRequest struct {
	Input string
	// Title is the title number HandBrakeCLI reported, not its position.
	Title int
	// Chapters is a --chapters value ("3" or "2-5"); empty rips the whole title.
	Chapters string
	Output   string
	// Encoding holds option names without dashes; see config.EncodingOptions.
	Encoding map[string]any
	// ForeignSubtitles burns in forced foreign-language subtitles.
	ForeignSubtitles bool
	// Decomb is the decomb menu choice: 0 off, 1 automatic, 2 upper field
	// first, 3 lower field first.
	Decomb int
}

// RipArgs builds the HandBrakeCLI arguments for req. A decomb choice looks up
// the tool's default decomb settings through --help.
func (c *Client) RipArgs(ctx context.Context, req RipRequest) ([]string, error) {
	if strings.TrimSpace(req.Input) == "" {
		return nil, errors.New("rip input required")
	}
	if strings.TrimSpace(req.Output) == "" {
		return nil, errors.New("rip output required")
	}

	options := newOptionList(req.Encoding)
	options.set("input", req.Input)
	options.set("title", req.Title)
	options.set("output", req.Output)
	if req.ForeignSubtitles {
		options.set("subtitle", "scan")
		options.set("subtitle-burn", true)
		options.set("native-lang", "eng")
	}
	if req.Decomb > 0 {
		help, err := c.Help(ctx)
		if err != nil {
			return nil, err
		}
		value, ok := DecombValue(help, req.Decomb)
		if !ok {
			return nil, errors.New("handbrake help output has no decomb default")
		}
		options.set("decomb", value)
	}
	if req.Chapters != "" {
		options.set("chapters", req.Chapters)
	}
	return append(options.args(), c.extraArgs...), nil
}

// Rip encodes one episode, copying HandBrakeCLI's progress output to out.
func (c *Client) Rip(ctx context.Context, req RipRequest, out io.Writer) error {
	args, err := c.RipArgs(ctx, req)
	if err != nil {
		return err
	}
	c.logger.Info("handbrake rip starting",
		logging.String(logging.FieldEventType, "rip_start"),
		logging.String("output", req.Output),
		logging.Int("title", req.Title),
		logging.String("chapters", req.Chapters),
	)
	if err := c.exec.Run(ctx, c.binary, args, out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %s: %w", ErrRipFailed, req.Output, err)
	}
	return nil
}
