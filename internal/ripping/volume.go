package ripping

import (
	"path/filepath"
	"strings"

	"github.com/hbollon/go-edlib"

	"showbrake/internal/config"
	"showbrake/internal/disc"
)

// VolumeFromPath returns the volume at path when it holds a DVD or Blu-ray
// layout.
func VolumeFromPath(path string) (disc.Volume, bool) {
	if strings.TrimSpace(path) == "" {
		return disc.Volume{}, false
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return disc.Volume{}, false
	}
	mediaType := disc.DetectMediaType(expanded)
	if mediaType == disc.MediaTypeUnknown {
		return disc.Volume{}, false
	}
	return disc.Volume{Name: filepath.Base(expanded), Path: expanded, MediaType: mediaType}, true
}

// DiscoverVolumes lists mounted video discs using the configured mount table
// and volumes root. An empty result is disc.ErrNoVolumes.
func DiscoverVolumes(cfg *config.Config) ([]disc.Volume, error) {
	volumes, err := disc.ListVolumes(cfg.Paths.MountTable, cfg.Paths.VolumesRoot)
	if err != nil {
		return nil, err
	}
	if len(volumes) == 0 {
		return nil, disc.ErrNoVolumes
	}
	return volumes, nil
}

// volumeMatchThreshold is the Jaro-Winkler score above which a mounted volume
// is offered as the likely intended one.
const volumeMatchThreshold = 0.85

// ClosestVolume returns the volume whose name best matches the base name of
// path, when the match is close enough to suggest.
func ClosestVolume(path string, volumes []disc.Volume) (disc.Volume, bool) {
	name := strings.ToLower(filepath.Base(strings.TrimSpace(path)))
	if name == "" || name == "." {
		return disc.Volume{}, false
	}
	var best disc.Volume
	bestScore := 0.0
	for _, volume := range volumes {
		score := float64(edlib.JaroWinklerSimilarity(name, strings.ToLower(volume.Name)))
		if score > bestScore {
			best = volume
			bestScore = score
		}
	}
	if bestScore < volumeMatchThreshold {
		return disc.Volume{}, false
	}
	return best, true
}
