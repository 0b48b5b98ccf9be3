package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"recite/internal/history"
	"recite/internal/logging"
	"recite/internal/pagination"
	"recite/internal/playback"
	"recite/internal/services"
	"recite/internal/services/quran"
)

// DefaultAudioBaseURL hosts the recitation files referenced by verse audio paths.
const DefaultAudioBaseURL = "https://verses.quran.com/"

var (
	ErrUnknownItem = fmt.Errorf("%w: item is not in the list", services.ErrNotFound)
	ErrNoAudio     = fmt.Errorf("%w: item has no recitation audio", services.ErrNotFound)
	ErrClosed      = fmt.Errorf("%w: session closed", services.ErrStateConflict)
)

// Recorder is told about every recitation that plays to its end.
type Recorder interface {
	RecordPlayback(ctx context.Context, entry history.Entry) error
}

// Options configures a Session.
type Options struct {
	Chapter int
	// Label is the display name supplied by navigation.
	Label             string
	Fetcher           pagination.Fetcher[quran.Verse]
	Engine            playback.Engine
	AudioBaseURL      string
	PageSize          int
	PrefetchThreshold float64
	RetainMargin      int
	ExclusivePlayback bool
	Logger            *slog.Logger
	Recorder          Recorder
	Observer          playback.Observer
}

// Session is the list controller for one chapter.
type Session struct {
	id        string
	chapter   int
	label     string
	store     *pagination.Store[quran.Verse]
	engine    playback.Engine
	registry  *playback.Registry
	audioBase *url.URL
	threshold float64
	retain    int
	recorder  Recorder
	observer  playback.Observer
	base      *slog.Logger
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	rows   map[string]*playback.Controller
	closed bool
}

// New creates a session and starts fetching the first page.
func New(ctx context.Context, opts Options) (*Session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Chapter <= 0 {
		return nil, services.Wrap(services.ErrConfiguration, "session", "create", fmt.Sprintf("invalid chapter %d", opts.Chapter), nil)
	}
	if opts.Fetcher == nil {
		return nil, services.Wrap(services.ErrConfiguration, "session", "create", "page fetcher required", nil)
	}
	if opts.Engine == nil {
		return nil, services.Wrap(services.ErrConfiguration, "session", "create", "audio engine required", nil)
	}
	rawBase := strings.TrimSpace(opts.AudioBaseURL)
	if rawBase == "" {
		rawBase = DefaultAudioBaseURL
	}
	audioBase, err := url.Parse(rawBase)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "session", "create", "parse audio base url", err)
	}
	threshold := opts.PrefetchThreshold
	if threshold <= 0 {
		threshold = pagination.DefaultPrefetchThreshold
	}
	retain := opts.RetainMargin
	if retain < 0 {
		retain = 0
	}

	id := uuid.NewString()
	sctx, cancel := context.WithCancel(services.WithSessionID(ctx, id))
	base := logging.WithSessionID(opts.Logger, id)
	s := &Session{
		id:        id,
		chapter:   opts.Chapter,
		label:     opts.Label,
		engine:    opts.Engine,
		registry:  playback.NewRegistry(opts.ExclusivePlayback),
		audioBase: audioBase,
		threshold: threshold,
		retain:    retain,
		recorder:  opts.Recorder,
		observer:  opts.Observer,
		base:      base,
		logger:    logging.NewComponentLogger(base, "session").With(logging.Int(logging.FieldChapter, opts.Chapter)),
		ctx:       sctx,
		cancel:    cancel,
		rows:      make(map[string]*playback.Controller),
	}
	s.store = pagination.New(sctx, opts.Fetcher, pagination.Options[quran.Verse]{
		PageSize: opts.PageSize,
		Key:      quran.Verse.Key,
		Logger:   base,
	})
	s.logger.Info("session opened",
		logging.String("label", opts.Label),
		logging.Bool("exclusive_playback", opts.ExclusivePlayback),
		logging.Float64("prefetch_threshold", threshold),
		logging.Int("retain_margin", retain),
	)
	s.store.Start()
	return s, nil
}

// ID returns the session correlation id.
func (s *Session) ID() string { return s.id }

// Chapter returns the collection identifier bound at creation.
func (s *Session) Chapter() int { return s.chapter }

// Label returns the display label bound at creation.
func (s *Session) Label() string { return s.label }

// Items returns the accumulated verses in display order.
func (s *Session) Items() []quran.Verse { return s.store.Items() }

// Status returns the pagination status.
func (s *Session) Status() pagination.Status { return s.store.Status() }

// Err returns the failure behind a Failed status.
func (s *Session) Err() error { return s.store.Err() }

// Snapshot returns the full pagination state.
func (s *Session) Snapshot() pagination.Snapshot[quran.Verse] { return s.store.Snapshot() }

// Subscribe streams pagination snapshots; see pagination.Store.Subscribe.
func (s *Session) Subscribe() (<-chan pagination.Snapshot[quran.Verse], func()) {
	return s.store.Subscribe()
}

// RequestMore asks for the next page. It doubles as the retry affordance
// after a failed fetch.
func (s *Session) RequestMore() bool { return s.store.RequestMore() }

// Wait blocks until no fetch is running.
func (s *Session) Wait() { s.store.Wait() }

// PlaybackStatus reports a row's playback state without creating a controller.
func (s *Session) PlaybackStatus(itemID string) playback.State {
	s.mu.Lock()
	c, ok := s.rows[itemID]
	s.mu.Unlock()
	if !ok {
		return playback.Unloaded
	}
	return c.State()
}

// PlaybackErr returns the last playback error of a row, if any.
func (s *Session) PlaybackErr(itemID string) error {
	s.mu.Lock()
	c, ok := s.rows[itemID]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return c.Err()
}

// ActiveRows returns the number of live controllers.
func (s *Session) ActiveRows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// TogglePlayback toggles the row for itemID, creating its controller on
// first use.
func (s *Session) TogglePlayback(ctx context.Context, itemID string) error {
	if ctx == nil {
		ctx = s.ctx
	}
	c, err := s.controller(itemID)
	if err != nil {
		return err
	}
	return c.Toggle(services.WithItemID(ctx, itemID))
}

func (s *Session) controller(itemID string) (*playback.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if c, ok := s.rows[itemID]; ok {
		return c, nil
	}
	verse, ok := s.lookup(itemID)
	if !ok {
		return nil, ErrUnknownItem
	}
	uri, err := s.audioURL(verse)
	if err != nil {
		return nil, err
	}
	c := playback.NewController(s.ctx, playback.ControllerOptions{
		ID:       itemID,
		URI:      uri,
		Engine:   s.engine,
		Registry: s.registry,
		Logger:   s.base,
		Observer: s.observer,
		OnFinished: func(string) {
			s.recordFinished(verse)
		},
	})
	s.rows[itemID] = c
	return c, nil
}

func (s *Session) lookup(itemID string) (quran.Verse, bool) {
	for _, v := range s.store.Items() {
		if v.Key() == itemID {
			return v, true
		}
	}
	return quran.Verse{}, false
}

// audioURL resolves the verse's relative audio path against the audio host.
func (s *Session) audioURL(v quran.Verse) (string, error) {
	path := strings.TrimSpace(v.AudioPath())
	if path == "" {
		return "", ErrNoAudio
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", services.Wrap(services.ErrLoad, "session", "resolve audio", path, err)
	}
	return s.audioBase.ResolveReference(ref).String(), nil
}

// Visible reports the index range the rendering layer currently shows. Rows
// further than the retain margin from it are released, and the next page is
// requested when the range is near the end of the list.
func (s *Session) Visible(first, last int) {
	if last < first {
		first, last = last, first
	}
	items := s.store.Items()
	index := make(map[string]int, len(items))
	for i, v := range items {
		index[v.Key()] = i
	}
	lo, hi := first-s.retain, last+s.retain

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	var evicted []*playback.Controller
	for id, c := range s.rows {
		i, ok := index[id]
		if ok && i >= lo && i <= hi {
			continue
		}
		delete(s.rows, id)
		evicted = append(evicted, c)
	}
	s.mu.Unlock()

	for _, c := range evicted {
		s.logger.Debug("releasing off-screen row", logging.String(logging.FieldItemID, c.ID()))
		_ = c.Close()
	}

	if pagination.NearEnd(last, len(items), s.threshold) {
		s.store.RequestMore()
	}
}

// Unmount releases one row's controller.
func (s *Session) Unmount(itemID string) {
	s.mu.Lock()
	c, ok := s.rows[itemID]
	if ok {
		delete(s.rows, itemID)
	}
	s.mu.Unlock()
	if ok {
		_ = c.Close()
	}
}

// Close stops fetching and releases every row. Later calls do nothing.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	rows := s.rows
	s.rows = make(map[string]*playback.Controller)
	s.mu.Unlock()

	s.store.Close()
	for _, c := range rows {
		_ = c.Close()
	}
	s.cancel()
	s.logger.Info("session closed", logging.Int("released_rows", len(rows)), logging.Int("items", len(s.store.Items())))
}

func (s *Session) recordFinished(v quran.Verse) {
	if s.recorder == nil {
		return
	}
	entry := history.Entry{
		ChapterID:    s.chapter,
		ChapterLabel: s.label,
		VerseKey:     v.VerseKey,
		ItemID:       v.Key(),
		SessionID:    s.id,
	}
	if err := s.recorder.RecordPlayback(s.ctx, entry); err != nil {
		logging.WarnWithContext(s.logger, "record recitation history failed", "history_write_failed",
			logging.String(logging.FieldItemID, entry.ItemID),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the history database path and permissions"),
			logging.String(logging.FieldImpact, "recitation not listed in history"),
		)
	}
}
