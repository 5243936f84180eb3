// Package config loads, normalizes, and validates doc2dash configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts) and reads TOML files. Command-line flags override the values
// loaded here, so the Config type only carries settings a user would want to
// persist between runs: where docsets go, how the manifest is filled in, and
// how logs are rendered.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
