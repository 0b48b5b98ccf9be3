package playback

import (
	"context"
	"sync"

	"recite/internal/services"
)

// Resource holds at most one engine handle.
type Resource struct {
	engine     Engine
	onComplete func()

	mu       sync.Mutex
	handle   Handle
	loading  bool
	gen      uint64
	finished bool
}

// NewResource returns an empty slot. onComplete runs at most once per play cycle.
func NewResource(engine Engine, onComplete func()) *Resource {
	return &Resource{engine: engine, onComplete: onComplete}
}

// Load opens uri. The engine call runs without holding the slot lock so a
// concurrent Release can interrupt it; the late handle is then closed here.
func (r *Resource) Load(ctx context.Context, uri string) error {
	r.mu.Lock()
	if r.handle != nil || r.loading {
		r.mu.Unlock()
		return ErrAlreadyLoaded
	}
	r.loading = true
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	handle, err := r.engine.Open(ctx, uri, func() { r.complete(gen) })

	r.mu.Lock()
	if gen != r.gen {
		r.mu.Unlock()
		if err == nil && handle != nil {
			_ = handle.Close()
		}
		return ErrReleased
	}
	r.loading = false
	if err != nil {
		r.mu.Unlock()
		return services.Wrap(services.ErrLoad, "playback", "load", uri, err)
	}
	r.handle = handle
	r.finished = false
	r.mu.Unlock()
	return nil
}

// Loaded reports whether a handle is held.
func (r *Resource) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handle != nil
}

// Play starts or resumes the handle and opens a new completion cycle.
func (r *Resource) Play() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handle == nil {
		return ErrNotLoaded
	}
	r.finished = false
	if err := r.handle.Play(); err != nil {
		return services.Wrap(services.ErrLoad, "playback", "play", "", err)
	}
	return nil
}

// Pause pauses the handle.
func (r *Resource) Pause() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.handle == nil {
		return ErrNotLoaded
	}
	if err := r.handle.Pause(); err != nil {
		return services.Wrap(services.ErrLoad, "playback", "pause", "", err)
	}
	return nil
}

// Release closes the handle if one is held and abandons a pending load. It is
// safe to call at any time and any number of times.
func (r *Resource) Release() error {
	r.mu.Lock()
	r.gen++
	handle := r.handle
	r.handle = nil
	r.loading = false
	r.finished = false
	r.mu.Unlock()
	if handle == nil {
		return nil
	}
	return handle.Close()
}

func (r *Resource) complete(gen uint64) {
	r.mu.Lock()
	if gen != r.gen || r.handle == nil || r.finished {
		r.mu.Unlock()
		return
	}
	r.finished = true
	cb := r.onComplete
	r.mu.Unlock()
	if cb != nil {
		cb()
	}
}
