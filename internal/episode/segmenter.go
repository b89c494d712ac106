package episode

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"showbrake/internal/disc"
)

const (
	// MinimumEpisodeLength is the shortest title or chapter, in seconds, that
	// is suggested as an episode.
	MinimumEpisodeLength = 600
	// EpisodeDurationDeviation is the largest relative difference from the
	// typical episode length a title may have and still be suggested.
	EpisodeDurationDeviation = 0.25
)

// SegmentOptions tunes Suggest. Zero values fall back to the package defaults.
type SegmentOptions struct {
	MinimumLength int
	Deviation     float64
}

func (o SegmentOptions) withDefaults() SegmentOptions {
	if o.MinimumLength <= 0 {
		o.MinimumLength = MinimumEpisodeLength
	}
	if o.Deviation <= 0 {
		o.Deviation = EpisodeDurationDeviation
	}
	return o
}

// Suggest returns a descriptor string naming the likely episodes on d. The
// result always satisfies the descriptor grammar, or is empty when no title
// is long enough to be an episode.
func Suggest(d *disc.Disc, opts SegmentOptions) string {
	if d == nil {
		return ""
	}
	opts = opts.withDefaults()

	candidates := make([]disc.Title, 0, len(d.Titles))
	for _, title := range d.Titles {
		if title.Duration() >= opts.MinimumLength {
			candidates = append(candidates, title)
		}
	}

	if len(candidates) > 1 {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Duration() < candidates[j].Duration()
		})
		normal := float64(candidates[len(candidates)-2].Duration())
		kept := candidates[:0]
		for _, title := range candidates {
			if math.Abs(normal-float64(title.Duration())) <= normal*opts.Deviation {
				kept = append(kept, title)
			}
		}
		candidates = kept
	}

	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return splitTitle(candidates[0], opts.MinimumLength)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Index < candidates[j].Index
	})
	tokens := make([]string, 0, len(candidates))
	for _, title := range candidates {
		tokens = append(tokens, strconv.Itoa(title.Position()))
	}
	return strings.Join(tokens, " ")
}

func splitTitle(title disc.Title, minimum int) string {
	position := strconv.Itoa(title.Position())
	if len(title.Chapters) <= 1 {
		return position
	}
	tokens := make([]string, 0, len(title.Chapters))
	for _, chapter := range title.Chapters {
		if chapter.Duration >= minimum && chapter.Number > 0 {
			tokens = append(tokens, position+"."+strconv.Itoa(chapter.Number))
		}
	}
	if len(tokens) <= 1 {
		return position
	}
	return strings.Join(tokens, " ")
}
