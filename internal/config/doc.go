// Package config loads, normalizes, and validates showbrake configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SHOWBRAKE_HANDBRAKE
// environment override. Encoding tables from the file are layered over the
// built-in HandBrakeCLI defaults per media type.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
