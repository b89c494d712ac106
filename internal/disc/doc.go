// Package disc models a scanned DVD or Blu-ray and builds that model from
// HandBrakeCLI scan output.
//
// The Parser consumes scan lines one at a time and appends titles, chapters
// and tracks to a Disc as it recognizes them. Anything it does not recognize
// is ignored, so extra log noise from newer HandBrakeCLI releases is harmless.
// The Scanner wires a line source (normally the handbrake package) to a
// Parser and reports scan progress. Volume discovery and media type detection
// live here as well so callers can go from a mount point to a Disc in one
// package.
package disc
