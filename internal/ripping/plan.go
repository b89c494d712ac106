package ripping

import (
	"path/filepath"

	"showbrake/internal/disc"
	"showbrake/internal/episode"
	"showbrake/internal/textutil"
)

// Episode is one output file planned from a validated descriptor.
type Episode struct {
	Descriptor episode.Descriptor
	Title      disc.Title
	Season     int
	Number     int
	FileName   string
	Path       string
}

// Duration returns the playing time covered by the episode in seconds. A
// reversed chapter range covers the same chapters as its ordered form.
func (e Episode) Duration() int {
	if e.Descriptor.Kind == episode.ChaptersAll {
		return e.Title.Duration()
	}
	first, last := e.Descriptor.Start, e.Descriptor.End
	if first > last {
		first, last = last, first
	}
	total := 0
	for i := first; i <= last && i <= len(e.Title.Chapters); i++ {
		if i >= 1 {
			total += e.Title.Chapters[i-1].Duration
		}
	}
	return total
}

// PlanEpisodes maps validated descriptors to numbered output files in
// outputDir, starting at firstEpisode.
func PlanEpisodes(d *disc.Disc, descriptors []episode.Descriptor, show string, season, firstEpisode int, outputDir string) []Episode {
	episodes := make([]Episode, 0, len(descriptors))
	for i, descriptor := range descriptors {
		title, _ := descriptor.TitleOn(d)
		number := firstEpisode + i
		name := textutil.EpisodeFileName(show, season, number)
		episodes = append(episodes, Episode{
			Descriptor: descriptor,
			Title:      title,
			Season:     season,
			Number:     number,
			FileName:   name,
			Path:       filepath.Join(outputDir, name),
		})
	}
	return episodes
}
