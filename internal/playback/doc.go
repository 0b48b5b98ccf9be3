// Package playback owns the per-row audio state machine.
//
// A Resource wraps one engine handle and guarantees it is opened once and
// closed at most once. A Controller drives a Resource through
// Unloaded, Paused and Playing in response to toggles and completion
// notifications. A Registry enforces that at most one controller plays at a
// time: activating a row pauses the previous holder before the new one starts.
//
// Lock order is Registry, then Controller state, then Resource. Controllers
// never call into the Registry while holding their own state lock.
package playback
