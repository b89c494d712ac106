package disc

import (
	"regexp"
	"strconv"
	"strings"
)

// DataClass selects which list of the active title receives data lines.
type DataClass int

const (
	DataClassNone DataClass = iota
	DataClassChapters
	DataClassAudioTracks
	DataClassSubtitleTracks
)

// String returns the section label HandBrakeCLI uses for the class.
func (c DataClass) String() string {
	switch c {
	case DataClassChapters:
		return "chapters"
	case DataClassAudioTracks:
		return "audio tracks"
	case DataClassSubtitleTracks:
		return "subtitle tracks"
	default:
		return "none"
	}
}

// ScanProgress is the parser's view of scan progress, reported whenever the
// expected title count, the scanned counter or the completion flag changes.
type ScanProgress struct {
	ExpectedTitles int
	ScannedTitles  int
	Complete       bool
}

// ProgressFunc receives scan progress updates.
type ProgressFunc func(ScanProgress)

var (
	titleCountPattern   = regexp.MustCompile(`Disc has (\d+) title`)
	scanningPattern     = regexp.MustCompile(`Scanning title (\d+) of`)
	scanCompletePattern = regexp.MustCompile(`scan thread found \d+ valid title`)
	titlePattern        = regexp.MustCompile(`\+ title (\d+):`)
	sectionPattern      = regexp.MustCompile(`\+ (chapters|(audio|subtitle) tracks):`)
	dataPattern         = regexp.MustCompile(`^ {4}\+ (\d+)[:,] (.*)$`)
	chapterTimePattern  = regexp.MustCompile(`duration (\d\d):(\d\d):(\d\d)`)
)

// Parser turns HandBrakeCLI scan output into a Disc. It is fed one line at a
// time in output order and never fails: lines it does not recognize are
// dropped.
type Parser struct {
	disc *Disc

	active      int
	class       DataClass
	expected    int
	expectedSet bool
	scanned     int
	complete    bool

	onProgress ProgressFunc
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithProgress registers a callback for scan progress updates.
func WithProgress(fn ProgressFunc) ParserOption {
	return func(p *Parser) {
		p.onProgress = fn
	}
}

// NewParser returns a parser that builds a Disc for the given path and media
// type.
func NewParser(path string, mediaType MediaType, opts ...ParserOption) *Parser {
	p := &Parser{
		disc:   &Disc{Path: path, MediaType: mediaType},
		active: -1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Feed processes a single scan line.
func (p *Parser) Feed(line string) {
	line = strings.TrimRight(line, "\r\n")

	if m := titleCountPattern.FindStringSubmatch(line); m != nil {
		p.setExpected(m[1])
		return
	}
	if m := scanningPattern.FindStringSubmatch(line); m != nil {
		p.advanceScanned(m[1])
		return
	}
	if scanCompletePattern.MatchString(line) {
		p.complete = true
		p.notify()
		return
	}
	if m := titlePattern.FindStringSubmatch(line); m != nil {
		p.addTitle(m[1])
		return
	}
	if m := sectionPattern.FindStringSubmatch(line); m != nil {
		p.setClass(m[1])
		return
	}
	if m := dataPattern.FindStringSubmatch(line); m != nil {
		p.addData(m[1], m[2])
	}
}

// Disc returns the disc built so far. Callers must not read it until the scan
// has finished; after that it is safe to share for reads.
func (p *Parser) Disc() *Disc {
	return p.disc
}

// ExpectedTitles returns the title count announced by the scan, or 0 when it
// has not been seen.
func (p *Parser) ExpectedTitles() int {
	return p.expected
}

// ScannedTitles returns how many titles the scan has reported progress for.
func (p *Parser) ScannedTitles() int {
	return p.scanned
}

// Complete reports whether the end-of-scan line has been seen.
func (p *Parser) Complete() bool {
	return p.complete
}

// ActiveClass returns the data class new data lines are attached to.
func (p *Parser) ActiveClass() DataClass {
	return p.class
}

func (p *Parser) setExpected(raw string) {
	if p.expectedSet {
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return
	}
	p.expected = n
	p.expectedSet = true
	p.notify()
}

func (p *Parser) advanceScanned(raw string) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return
	}
	target := min(n, p.expected)
	for p.scanned < target {
		p.scanned++
		p.notify()
	}
}

func (p *Parser) addTitle(raw string) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return
	}
	p.disc.Titles = append(p.disc.Titles, Title{Number: n, Index: len(p.disc.Titles)})
	p.active = len(p.disc.Titles) - 1
	p.class = DataClassNone
}

func (p *Parser) setClass(section string) {
	if p.active < 0 {
		return
	}
	switch section {
	case "chapters":
		p.class = DataClassChapters
	case "audio tracks":
		p.class = DataClassAudioTracks
	case "subtitle tracks":
		p.class = DataClassSubtitleTracks
	}
}

func (p *Parser) addData(rawNumber, text string) {
	if p.active < 0 || p.class == DataClassNone {
		return
	}
	n, err := strconv.Atoi(rawNumber)
	if err != nil {
		return
	}
	title := &p.disc.Titles[p.active]
	switch p.class {
	case DataClassChapters:
		title.Chapters = append(title.Chapters, NewChapter(n, text))
	case DataClassAudioTracks:
		title.AudioTracks = append(title.AudioTracks, AudioTrack{Number: n, Text: text})
	case DataClassSubtitleTracks:
		title.SubtitleTracks = append(title.SubtitleTracks, SubtitleTrack{Number: n, Text: text})
	}
}

func (p *Parser) notify() {
	if p.onProgress == nil {
		return
	}
	p.onProgress(ScanProgress{
		ExpectedTitles: p.expected,
		ScannedTitles:  p.scanned,
		Complete:       p.complete,
	})
}

// NewChapter builds a chapter from its scan text, extracting the
// "duration HH:MM:SS" field when present.
func NewChapter(number int, text string) Chapter {
	return Chapter{Number: number, Duration: parseChapterDuration(text), Text: text}
}

func parseChapterDuration(text string) int {
	m := chapterTimePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return hours*3600 + minutes*60 + seconds
}
