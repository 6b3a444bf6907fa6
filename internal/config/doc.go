// Package config loads, normalizes, and validates mkvsubstrip configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// MKVSUBSTRIP_LOG_LEVEL. The hook runs unattended, so a missing config file
// is not an error: the defaults work on any host with MKVToolNix on PATH.
package config
