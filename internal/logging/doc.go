// Package logging assembles the slog loggers used across showbrake.
//
// It owns the console and JSON handlers, maps the [logging] config section to
// levels and outputs, and can tee console output into a JSON log file so a
// rip session leaves a machine-readable trail behind. Components take a
// *slog.Logger and tag it with NewComponentLogger; NewNop serves tests and
// wiring code that has no logger to pass.
package logging
