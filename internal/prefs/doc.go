// Package prefs remembers the answers given in the previous session (show
// name, season, last episode ripped and the DVD and iFlicks choices) so they
// can be offered as defaults next time.
//
// Values are JSON-encoded in a small SQLite database under the state
// directory. Every answer is written as soon as it is given.
package prefs
