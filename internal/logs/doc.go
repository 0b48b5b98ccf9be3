// Package logs reads recite's log file for the CLI.
//
// Tail returns the last N lines or everything after a byte offset, with
// bounded memory, and can wait for new lines in follow mode. A Filter narrows
// the output to one component, session, or minimum level, and understands
// both the console and JSON log formats.
package logs
