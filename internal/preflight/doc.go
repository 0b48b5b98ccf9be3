// Package preflight provides readiness checks for the services and paths
// recite depends on.
//
// The CLI "recite status" command runs RunAll and prints one line per check.
// Each check is gated by its config toggle; disabled features are skipped.
package preflight
