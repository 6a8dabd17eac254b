// Package config loads, normalizes, and validates jlptag configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// JLPTAG_DATABASE. The Config type centralizes every knob the CLI needs, so
// the vocabulary directory, database location, and logging behavior are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
