// Package config loads, normalizes, and validates ripmap configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the RIPMAP_SOURCE environment
// fallback. The Config type centralizes the drive, executable, mapping window
// and logging knobs the CLI needs so they are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
