package playback

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"recite/internal/logging"
)

// Observer receives state changes. It is called without the controller's
// state lock held and must not block for long.
type Observer func(id string, state State)

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	ID       string
	URI      string
	Engine   Engine
	Registry *Registry
	Logger   *slog.Logger
	Observer Observer
	// OnFinished runs after a recitation plays to its end.
	OnFinished func(id string)
}

// Controller is the playback state machine for one row.
type Controller struct {
	id         string
	uri        string
	res        *Resource
	registry   *Registry
	logger     *slog.Logger
	observer   Observer
	onFinished func(string)

	ctx    context.Context
	cancel context.CancelFunc

	// op serializes toggles.
	op sync.Mutex

	mu     sync.Mutex
	state  State
	err    error
	closed bool
}

// NewController returns an Unloaded controller. Loads run under a context
// derived from ctx and are cancelled by Close.
func NewController(ctx context.Context, opts ControllerOptions) *Controller {
	if ctx == nil {
		ctx = context.Background()
	}
	registry := opts.Registry
	if registry == nil {
		registry = NewRegistry(false)
	}
	cctx, cancel := context.WithCancel(ctx)
	c := &Controller{
		id:         opts.ID,
		uri:        opts.URI,
		registry:   registry,
		observer:   opts.Observer,
		onFinished: opts.OnFinished,
		ctx:        cctx,
		cancel:     cancel,
		logger: logging.NewComponentLogger(opts.Logger, "playback").With(
			logging.String(logging.FieldItemID, opts.ID),
		),
	}
	c.res = NewResource(opts.Engine, c.handleComplete)
	return c
}

// ID returns the row identifier.
func (c *Controller) ID() string { return c.id }

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error from the most recent failed toggle.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Toggle loads and plays an unloaded row, resumes a paused one, and pauses a
// playing one. Concurrent toggles run one after another.
func (c *Controller) Toggle(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c.op.Lock()
	defer c.op.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	state := c.state
	c.mu.Unlock()

	switch state {
	case Unloaded:
		if err := c.load(ctx); err != nil {
			return err
		}
		if err := c.start(); err != nil {
			// Drop the fresh handle so the next toggle loads again.
			_ = c.res.Release()
			return err
		}
		return nil
	case Paused:
		return c.start()
	default:
		return c.pause()
	}
}

func (c *Controller) load(ctx context.Context) error {
	loadCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.ctx, cancel)
	defer stop()

	c.logger.Debug("loading recitation", logging.String("uri", c.uri))
	if err := c.res.Load(loadCtx, c.uri); err != nil {
		if errors.Is(err, ErrReleased) {
			c.logger.Debug("load abandoned after release")
			return err
		}
		c.recordErr(err)
		logging.WarnWithContext(c.logger, "recitation load failed", "audio_load_failed",
			logging.String("uri", c.uri),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the audio host or network, then toggle again"),
			logging.String(logging.FieldImpact, "row stays unloaded"),
		)
		return err
	}
	return nil
}

func (c *Controller) start() error {
	err := c.registry.activate(c, func() error {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return ErrClosed
		}
		if err := c.res.Play(); err != nil {
			c.err = err
			c.mu.Unlock()
			return err
		}
		c.state = Playing
		c.err = nil
		c.mu.Unlock()
		c.notify(Playing)
		return nil
	})
	if err != nil && !errors.Is(err, ErrClosed) {
		c.logger.Warn("start playback failed", logging.Error(err),
			logging.String(logging.FieldEventType, "audio_play_failed"),
			logging.String(logging.FieldErrorHint, "toggle again to retry"),
			logging.String(logging.FieldImpact, "row is not playing"),
		)
	}
	return err
}

func (c *Controller) pause() error {
	c.mu.Lock()
	if c.state != Playing {
		c.mu.Unlock()
		return nil
	}
	if err := c.res.Pause(); err != nil {
		c.err = err
		c.mu.Unlock()
		return err
	}
	c.state = Paused
	c.mu.Unlock()
	c.notify(Paused)
	c.registry.release(c)
	return nil
}

// yield pauses a playing controller on behalf of the registry. It runs under
// the registry lock and does not take op.
func (c *Controller) yield() {
	c.mu.Lock()
	if c.state != Playing {
		c.mu.Unlock()
		return
	}
	if err := c.res.Pause(); err != nil {
		c.logger.Debug("pause on handoff failed", logging.Error(err))
	}
	c.state = Paused
	c.mu.Unlock()
	c.logger.Debug("paused for another row")
	c.notify(Paused)
}

func (c *Controller) handleComplete() {
	c.mu.Lock()
	if c.closed || c.state != Playing {
		c.mu.Unlock()
		return
	}
	c.state = Paused
	c.mu.Unlock()

	c.logger.Debug("recitation finished")
	c.notify(Paused)
	c.registry.release(c)
	if c.onFinished != nil {
		c.onFinished(c.id)
	}
}

// Close releases the audio resource whatever the state. It does not wait
// for a toggle in progress; a load still running is abandoned and its handle
// closed when it arrives.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.registry.release(c)
	err := c.res.Release()

	c.mu.Lock()
	prev := c.state
	c.state = Unloaded
	c.mu.Unlock()
	if prev != Unloaded {
		c.notify(Unloaded)
	}
	if err != nil {
		c.logger.Debug("release audio handle", logging.Error(err))
	}
	return err
}

func (c *Controller) recordErr(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

func (c *Controller) notify(state State) {
	if c.observer != nil {
		c.observer(c.id, state)
	}
}
