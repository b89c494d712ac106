// Package handbrake mediates access to the HandBrakeCLI binary used to scan
// and encode discs.
//
// Scans stream the tool's combined stdout and stderr one line at a time, in
// the order HandBrakeCLI wrote them, so the disc parser sees a single ordered
// stream. Rips build a deterministic argument list from the configured
// encoding options and stream HandBrakeCLI's own progress output to the
// caller.
//
// Command execution goes through the Executor interface so tests can replace
// the real process with scripted output.
package handbrake
