// Package episode turns a scanned disc into episode boundaries.
//
// Suggest proposes a default descriptor string from title and chapter
// durations: titles shorter than the minimum episode length are ignored, the
// second-longest remaining title sets the typical episode length, and titles
// that deviate too far from it are dropped. A lone multi-chapter title is split
// on its long chapters instead.
//
// ParseAndValidate checks a user-edited descriptor string in two phases. The
// whole string must first match the descriptor grammar (ErrSyntax); every
// token is then bounds-checked against the disc (ErrOutOfRange). Either
// failure rejects the whole string so the caller can prompt again.
//
// Title numbers in descriptors are positional (index + 1), never the number
// HandBrakeCLI reported for the title.
package episode
