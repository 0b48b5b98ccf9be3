package playback

import "sync"

// Registry tracks the controller currently playing.
type Registry struct {
	exclusive bool

	mu      sync.Mutex
	current *Controller
}

// NewRegistry returns a registry. With exclusive set, activating a controller
// pauses whichever controller was playing.
func NewRegistry(exclusive bool) *Registry {
	return &Registry{exclusive: exclusive}
}

// Exclusive reports whether the single-playback policy is on.
func (r *Registry) Exclusive() bool {
	return r.exclusive
}

// Current returns the id of the playing controller, if any.
func (r *Registry) Current() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return "", false
	}
	return r.current.id, true
}

// activate pauses the previous holder and then runs start, all under the
// registry lock, so observers see the old row pause before the new row plays.
func (r *Registry) activate(c *Controller, start func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.exclusive {
		return start()
	}
	if prev := r.current; prev != nil && prev != c {
		prev.yield()
		r.current = nil
	}
	if err := start(); err != nil {
		return err
	}
	r.current = c
	return nil
}

func (r *Registry) release(c *Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == c {
		r.current = nil
	}
}
