package disc

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoVolumes indicates that no mounted DVD or Blu-ray volume was found.
var ErrNoVolumes = errors.New("could not find any DVD or Blu-ray video volumes")

// DetectMediaType inspects a volume path for a DVD (VIDEO_TS) or Blu-ray
// (BDMV) layout.
func DetectMediaType(path string) MediaType {
	path = strings.TrimSpace(path)
	if path == "" {
		return MediaTypeUnknown
	}
	if isDir(filepath.Join(path, "VIDEO_TS")) {
		return MediaTypeDVD
	}
	if isDir(filepath.Join(path, "BDMV")) {
		return MediaTypeBluRay
	}
	return MediaTypeUnknown
}

// Volume is a mounted video disc.
type Volume struct {
	Name      string
	Path      string
	MediaType MediaType
}

// ListVolumes returns mounted video discs found in the mount table. When
// root is non-empty only mount points directly below it are considered;
// the entries under root are also listed so volumes missing from the
// mount table (macOS /Volumes) are still found.
func ListVolumes(mountTable, root string) ([]Volume, error) {
	candidates := map[string]struct{}{}

	if strings.TrimSpace(mountTable) != "" {
		points, err := readMountPoints(mountTable)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		for _, point := range points {
			if root != "" && filepath.Dir(point) != filepath.Clean(root) {
				continue
			}
			candidates[point] = struct{}{}
		}
	}

	if root != "" {
		entries, err := os.ReadDir(root)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read volumes root: %w", err)
		}
		for _, entry := range entries {
			candidates[filepath.Join(root, entry.Name())] = struct{}{}
		}
	}

	volumes := make([]Volume, 0, len(candidates))
	for path := range candidates {
		mediaType := DetectMediaType(path)
		if mediaType == MediaTypeUnknown {
			continue
		}
		volumes = append(volumes, Volume{Name: filepath.Base(path), Path: path, MediaType: mediaType})
	}
	sort.Slice(volumes, func(i, j int) bool { return volumes[i].Path < volumes[j].Path })
	return volumes, nil
}

func readMountPoints(mountTable string) ([]string, error) {
	f, err := os.Open(mountTable)
	if err != nil {
		return nil, fmt.Errorf("open mounts: %w", err)
	}
	defer f.Close()

	var points []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		points = append(points, decodeMountField(fields[1]))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan mounts: %w", err)
	}
	return points, nil
}

func decodeMountField(field string) string {
	replacer := strings.NewReplacer(
		"\\040", " ",
		"\\011", "\t",
		"\\012", "\n",
		"\\134", "\\",
	)
	return replacer.Replace(field)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
