package playback_test

import (
	"context"
	"sync"

	"recite/internal/playback"
)

type fakeHandle struct {
	mu       sync.Mutex
	uri      string
	plays    int
	pauses   int
	closes   int
	playErr  error
	finished func()
}

func (h *fakeHandle) Play() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.plays++
	if h.playErr != nil {
		err := h.playErr
		h.playErr = nil
		return err
	}
	return nil
}

func (h *fakeHandle) Pause() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pauses++
	return nil
}

func (h *fakeHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closes++
	return nil
}

func (h *fakeHandle) counts() (plays, pauses, closes int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.plays, h.pauses, h.closes
}

// finish simulates the asset reaching its end.
func (h *fakeHandle) finish() {
	h.finished()
}

// fakeEngine records opens. When gate is set, Open blocks until the test
// sends on it, ignoring context cancellation so late handles can be exercised.
type fakeEngine struct {
	mu      sync.Mutex
	opens   int
	handles []*fakeHandle
	openErr error
	// playErr fails the first Play of the next opened handle.
	playErr error
	gate    chan struct{}
	opening chan struct{}
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{opening: make(chan struct{}, 16)}
}

func (e *fakeEngine) Open(_ context.Context, uri string, finished func()) (playback.Handle, error) {
	e.mu.Lock()
	e.opens++
	gate := e.gate
	openErr := e.openErr
	e.mu.Unlock()

	e.opening <- struct{}{}
	if gate != nil {
		<-gate
	}
	if openErr != nil {
		return nil, openErr
	}
	h := &fakeHandle{uri: uri, finished: finished}
	e.mu.Lock()
	h.playErr = e.playErr
	e.playErr = nil
	e.handles = append(e.handles, h)
	e.mu.Unlock()
	return h, nil
}

func (e *fakeEngine) openCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opens
}

func (e *fakeEngine) handle(i int) *fakeHandle {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i >= len(e.handles) {
		return nil
	}
	return e.handles[i]
}

func (e *fakeEngine) setPlayErr(err error) {
	e.mu.Lock()
	e.playErr = err
	e.mu.Unlock()
}

func (e *fakeEngine) setOpenErr(err error) {
	e.mu.Lock()
	e.openErr = err
	e.mu.Unlock()
}

type event struct {
	id    string
	state playback.State
}

type eventLog struct {
	mu     sync.Mutex
	events []event
}

func (l *eventLog) observe(id string, state playback.State) {
	l.mu.Lock()
	l.events = append(l.events, event{id: id, state: state})
	l.mu.Unlock()
}

func (l *eventLog) snapshot() []event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]event(nil), l.events...)
}
