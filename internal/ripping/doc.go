// Package ripping runs the interactive session that turns a mounted TV-series
// disc into one MP4 file per episode.
//
// A session resolves the volume, asks for the show, season and first episode
// (offering the previous session's answers as defaults), scans the disc with
// HandBrakeCLI, suggests episode boundaries and loops until the operator
// enters a valid descriptor. Each episode is then encoded and optionally
// handed to iFlicks.
//
// Only one session may run per state directory; AcquireLock enforces this
// with a file lock.
package ripping
