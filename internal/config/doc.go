// Package config loads, normalizes, and validates uvotsl configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: the data directory holding observation folders, preview and
// log output locations, the default fit seed parameters, and display
// statistics settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
