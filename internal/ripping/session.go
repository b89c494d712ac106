package ripping

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"showbrake/internal/config"
	"showbrake/internal/disc"
	"showbrake/internal/episode"
	"showbrake/internal/handbrake"
	"showbrake/internal/iflicks"
	"showbrake/internal/logging"
	"showbrake/internal/prefs"
	"showbrake/internal/prompt"
)

// DecombOptions lists the decomb menu in choice order.
var DecombOptions = []string{
	"Off",
	"Automatic",
	"Upper field first (NTSC)",
	"Lower field first (PAL)",
}

const (
	maxSeason  = 100
	maxEpisode = 100
)

// Scanner reads a disc into its model.
type Scanner interface {
	Scan(ctx context.Context, path string, progress disc.ProgressFunc) (*disc.Disc, error)
}

// Ripper encodes one episode.
type Ripper interface {
	Rip(ctx context.Context, req handbrake.RipRequest, out io.Writer) error
}

// Importer hands finished episodes to a media library.
type Importer interface {
	Installed() bool
	SetMode(mode iflicks.Mode) error
	Add(ctx context.Context, file string) error
}

// Dependencies bundles a session's collaborators.
type Dependencies struct {
	Config   *config.Config
	Prompter *prompt.Prompter
	Out      io.Writer
	Scanner  Scanner
	Ripper   Ripper
	Importer Importer
	Prefs    *prefs.Store
	Logger   *slog.Logger
	// ProgressBar forces the scan progress bar on; otherwise it is shown only
	// when Out is a terminal.
	ProgressBar bool
}

// Answers holds everything asked before the scan.
type Answers struct {
	Volume       disc.Volume
	Show         string
	Season       int
	FirstEpisode int
	ForeignSubs  bool
	Decomb       int
	IFlicks      iflicks.Mode
}

// Result summarizes a finished session.
type Result struct {
	SessionID string
	Disc      *disc.Disc
	Answers   Answers
	Episodes  []Episode
}

// Session runs one interactive rip.
type Session struct {
	cfg         *config.Config
	prompter    *prompt.Prompter
	out         io.Writer
	scanner     Scanner
	ripper      Ripper
	importer    Importer
	prefs       *prefs.Store
	logger      *slog.Logger
	progressBar bool
	id          string
}

// NewSession validates deps and prepares a session with a fresh session ID.
func NewSession(deps Dependencies) (*Session, error) {
	switch {
	case deps.Config == nil:
		return nil, errors.New("session requires config")
	case deps.Prompter == nil:
		return nil, errors.New("session requires prompter")
	case deps.Scanner == nil:
		return nil, errors.New("session requires scanner")
	case deps.Ripper == nil:
		return nil, errors.New("session requires ripper")
	case deps.Prefs == nil:
		return nil, errors.New("session requires preference store")
	}
	out := deps.Out
	if out == nil {
		out = io.Discard
	}
	id := uuid.NewString()
	logger := logging.NewComponentLogger(deps.Logger, "session").With(logging.String(logging.FieldSessionID, id))
	return &Session{
		cfg:         deps.Config,
		prompter:    deps.Prompter,
		out:         out,
		scanner:     deps.Scanner,
		ripper:      deps.Ripper,
		importer:    deps.Importer,
		prefs:       deps.Prefs,
		logger:      logger,
		progressBar: deps.ProgressBar || isTerminal(out),
		id:          id,
	}, nil
}

// ID returns the session identifier attached to every log line.
func (s *Session) ID() string {
	return s.id
}

// Run executes the whole session. volumeArg may name a disc path; when it
// does not, mounted volumes are discovered and offered as a menu.
func (s *Session) Run(ctx context.Context, volumeArg string) (*Result, error) {
	volume, err := s.resolveVolume(volumeArg)
	if err != nil {
		return nil, err
	}
	s.logger.Info("session started",
		logging.String(logging.FieldEventType, "session_start"),
		logging.String("volume", volume.Path),
		logging.String("media_type", string(volume.MediaType)),
	)

	answers, err := s.askAnswers(ctx, volume)
	if err != nil {
		return nil, err
	}
	s.logger.Info("session answers collected",
		logging.String(logging.FieldEventType, "answers_collected"),
		logging.String("show", answers.Show),
		logging.Int("season", answers.Season),
		logging.Int("first_episode", answers.FirstEpisode),
		logging.Bool("foreign_subtitles", answers.ForeignSubs),
		logging.Int("decomb", answers.Decomb),
		logging.String("iflicks", answers.IFlicks.String()),
	)

	fmt.Fprintln(s.out, "Reading disc info (this can take a few minutes)...")
	progress := newScanProgress(s.out, s.progressBar)
	scanned, err := s.scanner.Scan(ctx, volume.Path, progress.update)
	progress.finish()
	if err != nil {
		return nil, fmt.Errorf("scan disc: %w", err)
	}
	s.logger.Info("disc scanned",
		logging.String(logging.FieldEventType, "scan_complete"),
		logging.Int("titles", scanned.TitleCount()),
		logging.Int("duration_seconds", scanned.Duration()),
	)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, RenderBreakdown(scanned))

	descriptors, err := s.askDescriptors(scanned)
	if err != nil {
		return nil, err
	}

	episodes := PlanEpisodes(scanned, descriptors, answers.Show, answers.Season, answers.FirstEpisode, s.cfg.Paths.OutputDir)
	if err := s.ripEpisodes(ctx, scanned, answers, episodes); err != nil {
		return nil, err
	}

	last := answers.FirstEpisode + len(episodes) - 1
	if err := s.prefs.Save(ctx, prefs.KeyEpisode, last); err != nil {
		return nil, err
	}
	s.logger.Info("session finished",
		logging.String(logging.FieldEventType, "session_complete"),
		logging.Int(logging.FieldEpisodeCount, len(episodes)),
		logging.Int("last_episode", last),
	)
	return &Result{SessionID: s.id, Disc: scanned, Answers: answers, Episodes: episodes}, nil
}

func (s *Session) resolveVolume(arg string) (disc.Volume, error) {
	if volume, ok := VolumeFromPath(arg); ok {
		return volume, nil
	}
	volumes, err := DiscoverVolumes(s.cfg)
	if arg != "" {
		attrs := []logging.Attr{
			logging.String("volume", arg),
			logging.String(logging.FieldImpact, "searching mounted volumes instead"),
		}
		if closest, ok := ClosestVolume(arg, volumes); ok {
			attrs = append(attrs, logging.String(logging.FieldErrorHint, "did you mean "+closest.Path))
		}
		logging.WarnWithContext(s.logger, "volume argument is not a video disc", "volume_not_video", attrs...)
	}
	if err != nil {
		return disc.Volume{}, err
	}
	if len(volumes) == 1 {
		return volumes[0], nil
	}

	s.prompter.Ask("Which disc would you like to rip?")
	names := make([]string, len(volumes))
	for i, volume := range volumes {
		names[i] = fmt.Sprintf("%s (%s)", volume.Name, volume.MediaType)
	}
	choice, err := s.prompter.Choose(names, -1)
	if err != nil {
		return disc.Volume{}, err
	}
	return volumes[choice], nil
}

func (s *Session) askAnswers(ctx context.Context, volume disc.Volume) (Answers, error) {
	answers := Answers{Volume: volume}

	previousShow, _, err := prefs.Lookup[string](ctx, s.prefs, prefs.KeyShowTitle)
	if err != nil {
		return answers, err
	}
	s.prompter.Ask("What is the show’s name?")
	if answers.Show, err = s.prompter.ReadLine(prompt.NonEmpty(), previousShow); err != nil {
		return answers, err
	}
	sameShow := previousShow != "" && previousShow == answers.Show
	if err := s.prefs.Save(ctx, prefs.KeyShowTitle, answers.Show); err != nil {
		return answers, err
	}

	defaultSeason := 1
	if sameShow {
		if defaultSeason, err = prefs.LookupOr(ctx, s.prefs, prefs.KeySeason, 1); err != nil {
			return answers, err
		}
	}
	s.prompter.Ask("Which season?")
	if answers.Season, err = s.readInt(1, maxSeason, defaultSeason); err != nil {
		return answers, err
	}
	sameSeason := sameShow && defaultSeason == answers.Season
	if err := s.prefs.Save(ctx, prefs.KeySeason, answers.Season); err != nil {
		return answers, err
	}

	defaultEpisode := 1
	if sameSeason {
		previous, err := prefs.LookupOr(ctx, s.prefs, prefs.KeyEpisode, 0)
		if err != nil {
			return answers, err
		}
		defaultEpisode = previous + 1
	}
	s.prompter.Ask("Which is the first episode on this disc?")
	if answers.FirstEpisode, err = s.readInt(1, maxEpisode, defaultEpisode); err != nil {
		return answers, err
	}

	if volume.MediaType == disc.MediaTypeDVD {
		if err := s.askDVDOptions(ctx, &answers); err != nil {
			return answers, err
		}
	}

	if s.importer != nil && s.importer.Installed() {
		s.prompter.Ask("Add episodes to iFlicks?")
		previous, err := prefs.LookupOr(ctx, s.prefs, prefs.KeyIFlicks, int(iflicks.ModeQueue))
		if err != nil {
			return answers, err
		}
		choice, err := s.prompter.Choose(iflicks.Options, previous)
		if err != nil {
			return answers, err
		}
		answers.IFlicks = iflicks.Mode(choice)
		if err := s.importer.SetMode(answers.IFlicks); err != nil {
			return answers, err
		}
		if err := s.prefs.Save(ctx, prefs.KeyIFlicks, choice); err != nil {
			return answers, err
		}
	}
	return answers, nil
}

func (s *Session) askDVDOptions(ctx context.Context, answers *Answers) error {
	previousSubs, err := prefs.LookupOr(ctx, s.prefs, prefs.KeyForeignSubs, false)
	if err != nil {
		return err
	}
	s.prompter.Ask("Try to include foreign-language subtitles?")
	if answers.ForeignSubs, err = s.prompter.Confirm(previousSubs); err != nil {
		return err
	}
	if err := s.prefs.Save(ctx, prefs.KeyForeignSubs, answers.ForeignSubs); err != nil {
		return err
	}

	previousDecomb, err := prefs.LookupOr(ctx, s.prefs, prefs.KeyDecomb, 1)
	if err != nil {
		return err
	}
	s.prompter.Ask("Apply motion-sensing decomb filter (for video-based sources)?")
	if answers.Decomb, err = s.prompter.Choose(DecombOptions, previousDecomb); err != nil {
		return err
	}
	return s.prefs.Save(ctx, prefs.KeyDecomb, answers.Decomb)
}

func (s *Session) readInt(min, max, def int) (int, error) {
	answer, err := s.prompter.ReadLine(prompt.IntRange(min, max), strconv.Itoa(def))
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", answer, err)
	}
	return value, nil
}

func (s *Session) askDescriptors(scanned *disc.Disc) ([]episode.Descriptor, error) {
	opts := episode.SegmentOptions{
		MinimumLength: s.cfg.Episodes.MinimumLengthSeconds,
		Deviation:     s.cfg.Episodes.DurationDeviation,
	}
	suggestion := episode.Suggest(scanned, opts)
	s.logger.Debug("episode suggestion",
		logging.String("suggestion", suggestion),
		logging.Int("minimum_length_seconds", opts.MinimumLength),
		logging.Float64("duration_deviation", opts.Deviation),
	)

	s.prompter.Ask("Enter the title, chapters or chapter ranges for each episode,\nseparated by spaces.")
	wellFormed := func(answer string) bool {
		_, err := episode.ParseDescriptors(answer)
		return err == nil
	}
	for {
		answer, err := s.prompter.ReadLine(wellFormed, suggestion)
		if err != nil {
			return nil, err
		}
		descriptors, err := episode.ParseAndValidate(answer, scanned)
		if err == nil {
			return descriptors, nil
		}
		var rangeErr *episode.RangeError
		if errors.As(err, &rangeErr) {
			fmt.Fprintf(s.out, "%s: %s\n", rangeErr.Token, rangeErr.Reason)
		}
	}
}

func (s *Session) ripEpisodes(ctx context.Context, scanned *disc.Disc, answers Answers, episodes []Episode) error {
	encoding := s.cfg.EncodingOptions(string(scanned.MediaType))
	for i, ep := range episodes {
		fmt.Fprintf(s.out, "Creating %s\n", ep.FileName)
		logger := s.logger.With(
			logging.Int(logging.FieldEpisodeIndex, i+1),
			logging.Int(logging.FieldEpisodeCount, len(episodes)),
		)
		req := handbrake.RipRequest{
			Input:            scanned.Path,
			Title:            ep.Title.Number,
			Chapters:         ep.Descriptor.ChapterArg(),
			Output:           ep.Path,
			Encoding:         encoding,
			ForeignSubtitles: answers.ForeignSubs,
			Decomb:           answers.Decomb,
		}
		started := time.Now()
		if err := s.ripper.Rip(ctx, req, s.out); err != nil {
			logger.Error("episode rip failed",
				logging.String(logging.FieldEventType, "rip_failed"),
				logging.String(logging.FieldErrorHint, "check the HandBrakeCLI output above"),
				logging.Error(err),
			)
			return err
		}
		logger.Info("episode ripped",
			logging.String(logging.FieldEventType, "rip_complete"),
			logging.String("file", ep.Path),
			logging.Duration("elapsed", time.Since(started)),
		)
		if s.importer != nil && answers.IFlicks != iflicks.ModeSkip {
			if err := s.importer.Add(ctx, ep.Path); err != nil {
				logging.WarnWithContext(logger, "iflicks import failed", "iflicks_failed",
					logging.Error(err),
					logging.String(logging.FieldImpact, "episode left in output directory"),
				)
			}
		}
	}
	return nil
}
