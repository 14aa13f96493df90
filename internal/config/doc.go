// Package config loads, normalizes, and validates lyrix configuration from
// TOML. Defaults live in defaults.go; Load layers a config file over them,
// expands paths, and rejects unusable values.
package config
