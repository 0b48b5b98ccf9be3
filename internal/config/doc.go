// Package config loads, normalizes, and validates recite configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the RECITE_API_BASE_URL environment fallback. The
// Config type centralizes the knobs the reader needs: where the verse API and
// audio assets live, how many verses a page carries, when to prefetch, and
// where state and logs are written.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
