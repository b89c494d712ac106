package textutil

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName normalizes name to NFC and replaces filesystem-unsafe
// characters. Slashes, backslashes, colons, and asterisks become dashes;
// other unsafe characters and control characters are removed. The result is
// trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(norm.NFC.String(name))
	if name == "" {
		return ""
	}
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// EpisodeFileName returns the output name for one episode, for example
// "Bluey S02E05.mp4". An unusable show name falls back to "Episode".
func EpisodeFileName(show string, season, episode int) string {
	show = SanitizeFileName(show)
	show = strings.TrimLeft(show, ".")
	if show == "" {
		show = "Episode"
	}
	return fmt.Sprintf("%s S%02dE%02d.mp4", show, season, episode)
}
