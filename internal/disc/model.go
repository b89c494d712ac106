package disc

// MediaType classifies the source volume.
type MediaType string

const (
	MediaTypeUnknown MediaType = ""
	MediaTypeDVD     MediaType = "dvd"
	MediaTypeBluRay  MediaType = "bluray"
)

// String returns a display label for the media type.
func (m MediaType) String() string {
	switch m {
	case MediaTypeDVD:
		return "DVD"
	case MediaTypeBluRay:
		return "Blu-ray"
	default:
		return "unknown"
	}
}

// Disc is the scanned media source. It is built by a single Parser and is
// read-only once scanning completes.
type Disc struct {
	Path      string    `json:"path"`
	MediaType MediaType `json:"media_type"`
	Titles    []Title   `json:"titles"`
}

// Duration returns the sum of all title durations in seconds.
func (d *Disc) Duration() int {
	if d == nil {
		return 0
	}
	total := 0
	for _, title := range d.Titles {
		total += title.Duration()
	}
	return total
}

// TitleCount reports how many titles the disc holds.
func (d *Disc) TitleCount() int {
	if d == nil {
		return 0
	}
	return len(d.Titles)
}

// Title is one program on the disc. Index is the 0-based discovery position;
// Number is whatever HandBrakeCLI reported and carries no ordering guarantee.
type Title struct {
	Index          int             `json:"index"`
	Number         int             `json:"number"`
	Chapters       []Chapter       `json:"chapters,omitempty"`
	AudioTracks    []AudioTrack    `json:"audio_tracks,omitempty"`
	SubtitleTracks []SubtitleTrack `json:"subtitle_tracks,omitempty"`
}

// Duration returns the sum of chapter durations in seconds.
func (t Title) Duration() int {
	total := 0
	for _, chapter := range t.Chapters {
		total += chapter.Duration
	}
	return total
}

// Position returns the 1-based positional number (Index + 1) used in episode
// descriptors.
func (t Title) Position() int {
	return t.Index + 1
}

// Chapter is a timed subdivision of a title.
type Chapter struct {
	Number int `json:"number"`
	// Duration in seconds; 0 when the scan line carried no duration.
	Duration int    `json:"duration"`
	Text     string `json:"text"`
}

// AudioTrack is an audio stream reported for a title.
type AudioTrack struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// SubtitleTrack is a subtitle stream reported for a title.
type SubtitleTrack struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}
