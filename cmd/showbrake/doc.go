// Package main hosts the showbrake CLI entrypoint and command graph.
//
// Running showbrake with no subcommand starts an interactive session that
// scans a mounted TV-series disc and encodes one file per episode. The
// subcommands expose the same pieces non-interactively: scanning a disc,
// checking an episode descriptor against it, inspecting remembered answers
// and verifying the environment.
//
// Keep this package lean: behaviour belongs in the internal packages and is
// surfaced here through commands and flags.
package main
