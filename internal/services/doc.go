// Package services defines shared utilities consumed by the list controller
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp session IDs, row item IDs, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper that let callers scope a
//     failure to the session, a page, or a single row.
//
// Use these helpers when wiring new components so failure handling and
// observability stay uniform across the reader.
package services
