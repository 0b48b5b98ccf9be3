package playback

import (
	"context"
	"fmt"

	"recite/internal/services"
)

// State is a row's playback position.
type State int

const (
	Unloaded State = iota
	Paused
	Playing
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// Handle is an opened audio asset.
type Handle interface {
	Play() error
	Pause() error
	Close() error
}

// Engine opens audio assets. When playback reaches the end of the asset the
// handle rewinds to the start, stays paused, and calls finished.
type Engine interface {
	Open(ctx context.Context, uri string, finished func()) (Handle, error)
}

var (
	ErrAlreadyLoaded = fmt.Errorf("%w: audio resource already loaded", services.ErrStateConflict)
	ErrNotLoaded     = fmt.Errorf("%w: audio resource not loaded", services.ErrStateConflict)
	ErrReleased      = fmt.Errorf("%w: audio resource released during load", services.ErrStateConflict)
	ErrClosed        = fmt.Errorf("%w: playback controller closed", services.ErrStateConflict)
)
