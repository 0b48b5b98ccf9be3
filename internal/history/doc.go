// Package history records finished recitations in a local SQLite database.
//
// The store is append-only from the reader's point of view: every verse that
// plays to its end becomes one row, and the CLI reads back recent rows and
// per-chapter counts. It never caches verse content.
package history
