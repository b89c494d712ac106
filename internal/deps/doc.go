// Package deps reports whether the external programs and directories a
// ripping session needs are present.
//
// The checks back `showbrake status` and fail fast before a session prompts
// the operator for anything.
package deps
