package disc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"showbrake/internal/logging"
)

// LineSource runs a disc scan and delivers its combined output one line at a
// time, in order, on the calling goroutine's behalf.
type LineSource interface {
	Scan(ctx context.Context, input string, minDuration int, onLine func(string)) error
}

// Scanner feeds a LineSource into a Parser to build a Disc.
type Scanner struct {
	source      LineSource
	minDuration int
	logger      *slog.Logger
}

// NewScanner constructs a Scanner. minDuration is forwarded to the scan
// tool so it can skip short titles itself.
func NewScanner(source LineSource, minDuration int, logger *slog.Logger) *Scanner {
	return &Scanner{
		source:      source,
		minDuration: minDuration,
		logger:      logging.NewComponentLogger(logger, "disc-scanner"),
	}
}

// Scan reads the volume at path and returns the parsed disc. A scan that
// yields no titles is not an error.
func (s *Scanner) Scan(ctx context.Context, path string, progress ProgressFunc) (*Disc, error) {
	if s.source == nil {
		return nil, errors.New("scan source not configured")
	}

	mediaType := DetectMediaType(path)
	parser := NewParser(path, mediaType, WithProgress(progress))

	s.logger.Debug("disc scan starting",
		logging.String("path", path),
		logging.String("media_type", string(mediaType)),
		logging.Int("min_duration", s.minDuration),
	)

	err := s.source.Scan(ctx, path, s.minDuration, parser.Feed)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !parser.Complete() {
			return nil, fmt.Errorf("scan %s: %w", path, err)
		}
		s.logger.Warn("scan tool exited with an error after completing the scan",
			logging.Error(err),
			logging.String(logging.FieldEventType, "scan_exit_nonzero"),
			logging.String(logging.FieldImpact, "parsed titles are kept"),
		)
	}

	result := parser.Disc()
	s.logger.Info("disc scan finished",
		logging.String("path", path),
		logging.Int("titles", result.TitleCount()),
		logging.Int("expected_titles", parser.ExpectedTitles()),
		logging.Int("duration_seconds", result.Duration()),
	)
	return result, nil
}
