package pagination

import (
	"context"
	"log/slog"
	"sync"

	"recite/internal/logging"
)

// DefaultPageSize is used when Options.PageSize is not positive.
const DefaultPageSize = 10

// Options configures a Store.
type Options[T any] struct {
	PageSize int
	// Key identifies an item. Items whose key was already accumulated are
	// dropped. A nil Key disables the check.
	Key    func(T) string
	Logger *slog.Logger
}

// Snapshot is a consistent view of the store at one instant.
type Snapshot[T any] struct {
	Items      []T
	Pages      int
	Status     Status
	NextCursor int
	HasNext    bool
	Err        error
}

// Store accumulates pages for one collection. It is safe for concurrent use.
type Store[T any] struct {
	fetcher  Fetcher[T]
	pageSize int
	key      func(T) string
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	items   []T
	seen    map[string]struct{}
	pages   int
	status  Status
	next    int
	hasNext bool
	err     error
	pending bool
	started bool
	closed  bool
	subs    map[int]chan Snapshot[T]
	subSeq  int
}

// New constructs an idle Store. Fetches run under a context derived from ctx.
func New[T any](ctx context.Context, fetcher Fetcher[T], opts Options[T]) *Store[T] {
	if ctx == nil {
		ctx = context.Background()
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	storeCtx, cancel := context.WithCancel(ctx)
	return &Store[T]{
		fetcher:  fetcher,
		pageSize: pageSize,
		key:      opts.Key,
		logger:   logging.NewComponentLogger(opts.Logger, "pagination"),
		ctx:      storeCtx,
		cancel:   cancel,
		seen:     make(map[string]struct{}),
		status:   Idle,
		next:     1,
		hasNext:  true,
		subs:     make(map[int]chan Snapshot[T]),
	}
}

// Start issues the fetch for the first page. Only the first call has an effect.
func (s *Store[T]) Start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.closed {
		return false
	}
	s.started = true
	s.beginLocked(1, FetchingFirst)
	return true
}

// RequestMore asks for the next page and reports whether a fetch was issued.
//
// While a fetch is in flight the request is remembered, and once that fetch
// succeeds exactly one more is issued if the source has further pages. In
// Failed the call retries the cursor that failed. With no next page it does
// nothing.
func (s *Store[T]) RequestMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.started {
		return false
	}
	switch s.status {
	case FetchingFirst, FetchingNext:
		if !s.pending {
			s.pending = true
			s.logger.Debug("request coalesced into in-flight fetch", logging.Int(logging.FieldCursor, s.next))
		}
		return false
	case Failed:
		if s.pages == 0 {
			s.beginLocked(1, FetchingFirst)
		} else {
			s.beginLocked(s.next, FetchingNext)
		}
		return true
	case Settled:
		if !s.hasNext {
			return false
		}
		s.beginLocked(s.next, FetchingNext)
		return true
	default:
		return false
	}
}

// beginLocked marks cursor in flight and launches its fetch.
func (s *Store[T]) beginLocked(cursor int, status Status) {
	s.status = status
	s.err = nil
	s.next = cursor
	s.wg.Add(1)
	s.logger.Debug("fetching page", logging.Int(logging.FieldCursor, cursor), logging.String("status", status.String()))
	s.publishLocked()
	go s.run(cursor)
}

func (s *Store[T]) run(cursor int) {
	defer s.wg.Done()
	page, err := s.fetcher.FetchPage(s.ctx, cursor, s.pageSize)
	s.complete(cursor, page, err)
}

func (s *Store[T]) complete(cursor int, page Page[T], err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.logger.Debug("discarding fetch result after close", logging.Int(logging.FieldCursor, cursor))
		return
	}
	pending := s.pending
	s.pending = false

	if err != nil {
		s.status = Failed
		s.err = err
		logging.WarnWithContext(s.logger, "page fetch failed", "page_fetch_failed",
			logging.Int(logging.FieldCursor, cursor),
			logging.Int("pages", s.pages),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check network connectivity, then retry"),
			logging.String(logging.FieldImpact, "list stops growing until the page is retried"),
		)
		s.publishLocked()
		return
	}

	added := s.appendLocked(page.Items)
	s.pages++
	current := page.CurrentPage
	if current <= 0 {
		current = cursor
	}
	if current < page.TotalPages {
		s.next = current + 1
		s.hasNext = true
	} else {
		s.next = 0
		s.hasNext = false
	}
	s.status = Settled
	s.logger.Debug("page appended",
		logging.Int(logging.FieldCursor, cursor),
		logging.Int("added", added),
		logging.Int("total_items", len(s.items)),
		logging.Bool("has_next", s.hasNext),
	)

	if pending && s.hasNext {
		s.beginLocked(s.next, FetchingNext)
		return
	}
	s.publishLocked()
}

func (s *Store[T]) appendLocked(items []T) int {
	added := 0
	for _, item := range items {
		if s.key != nil {
			k := s.key(item)
			if _, dup := s.seen[k]; dup {
				s.logger.Info("dropping duplicate item", logging.String(logging.FieldItemID, k))
				continue
			}
			s.seen[k] = struct{}{}
		}
		s.items = append(s.items, item)
		added++
	}
	return added
}

// Items returns the accumulated items in arrival order.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[:len(s.items):len(s.items)]
}

// Status returns the current lifecycle status.
func (s *Store[T]) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// NextCursor returns the cursor the next fetch would use. ok is false once the
// final page has been appended.
func (s *Store[T]) NextCursor() (cursor int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next, s.hasNext
}

// Err returns the failure behind a Failed status.
func (s *Store[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Snapshot returns the full state at once.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store[T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{
		Items:      s.items[:len(s.items):len(s.items)],
		Pages:      s.pages,
		Status:     s.status,
		NextCursor: s.next,
		HasNext:    s.hasNext,
		Err:        s.err,
	}
}

// Subscribe returns a channel carrying the latest snapshot. The channel holds
// at most one value; a newer snapshot replaces an unread one. The channel is
// closed by the returned cancel func or by Close.
func (s *Store[T]) Subscribe() (<-chan Snapshot[T], func()) {
	ch := make(chan Snapshot[T], 1)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := s.subSeq
	s.subSeq++
	s.subs[id] = ch
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub)
			}
		})
	}
}

func (s *Store[T]) publishLocked() {
	if len(s.subs) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// Close stops the store. A fetch still in flight is cancelled and its result
// discarded. Close is idempotent.
func (s *Store[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.pending = false
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	s.cancel()
	for _, ch := range subs {
		close(ch)
	}
}

// Closed reports whether Close has been called.
func (s *Store[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Wait blocks until no fetch goroutine is running.
func (s *Store[T]) Wait() {
	s.wg.Wait()
}
