package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"

	"recite/internal/logging"
	"recite/internal/playback"
)

const (
	defaultSampleRate     = 44100
	defaultBuffer         = 100 * time.Millisecond
	defaultMaxDownload    = 32 << 20
	defaultTimeout        = 30 * time.Second
	resampleQuality       = 4
	errorBodySnippetBytes = 256
)

// Options configures an Engine.
type Options struct {
	SampleRate       int
	Buffer           time.Duration
	MaxDownloadBytes int64
	Timeout          time.Duration
	HTTPClient       *http.Client
	Logger           *slog.Logger
}

// Engine opens remote recitation assets on the speaker.
type Engine struct {
	rate        beep.SampleRate
	bufferSize  int
	maxDownload int64
	client      *http.Client
	out         output
	logger      *slog.Logger
}

// NewEngine returns an engine bound to the process-wide speaker. The speaker
// is initialised on the first Open.
func NewEngine(opts Options) *Engine {
	return newEngine(opts, defaultSpeaker)
}

func newEngine(opts Options, out output) *Engine {
	rate := opts.SampleRate
	if rate <= 0 {
		rate = defaultSampleRate
	}
	buffer := opts.Buffer
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	maxDownload := opts.MaxDownloadBytes
	if maxDownload <= 0 {
		maxDownload = defaultMaxDownload
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	sr := beep.SampleRate(rate)
	return &Engine{
		rate:        sr,
		bufferSize:  sr.N(buffer),
		maxDownload: maxDownload,
		client:      client,
		out:         out,
		logger:      logging.NewComponentLogger(opts.Logger, "audio"),
	}
}

// Open downloads and decodes uri and mounts it paused on the speaker.
func (e *Engine) Open(ctx context.Context, uri string, finished func()) (playback.Handle, error) {
	started := time.Now()
	data, contentType, err := e.download(ctx, uri)
	if err != nil {
		return nil, err
	}
	c := detectCodec(uri, contentType)
	streamer, format, err := decode(c, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", uri, err)
	}
	buf, err := bufferAll(streamer, format)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.out.Init(e.rate, e.bufferSize); err != nil {
		logging.ErrorWithContext(e.logger, "audio output unavailable", "audio_output_failed",
			logging.Error(err),
			logging.Int("sample_rate", int(e.rate)),
			logging.String(logging.FieldErrorHint, "check the sound device or audio.sample_rate"),
		)
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	var chain func(beep.StreamSeeker) beep.Streamer
	if format.SampleRate != e.rate {
		from, to := format.SampleRate, e.rate
		chain = func(s beep.StreamSeeker) beep.Streamer {
			return beep.Resample(resampleQuality, from, to, s)
		}
	}
	notifier := newEndNotifier(buf.Streamer(0, buf.Len()), chain, finished)
	ctrl := &beep.Ctrl{Streamer: notifier, Paused: true}
	notifier.ctrl = ctrl
	e.out.Play(ctrl)

	e.logger.Debug("recitation opened",
		logging.String("uri", uri),
		logging.String("codec", string(c)),
		logging.Int64("bytes", int64(len(data))),
		logging.Duration("length", format.SampleRate.D(buf.Len())),
		logging.Duration("elapsed", time.Since(started)),
	)
	return &handle{out: e.out, ctrl: ctrl}, nil
}

func (e *Engine) download(ctx context.Context, uri string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download %s: %w", uri, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodySnippetBytes))
		return nil, "", fmt.Errorf("download %s: http %d: %s", uri, resp.StatusCode, snippet)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, e.maxDownload+1))
	if err != nil {
		return nil, "", fmt.Errorf("download %s: read body: %w", uri, err)
	}
	if int64(len(data)) > e.maxDownload {
		return nil, "", fmt.Errorf("download %s: asset exceeds %d bytes", uri, e.maxDownload)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

var errClosedHandle = errors.New("audio handle closed")

type handle struct {
	out output

	mu     sync.Mutex
	ctrl   *beep.Ctrl
	closed bool
}

func (h *handle) Play() error {
	return h.setPaused(false)
}

func (h *handle) Pause() error {
	return h.setPaused(true)
}

func (h *handle) setPaused(paused bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return errClosedHandle
	}
	h.out.Lock()
	h.ctrl.Paused = paused
	h.out.Unlock()
	return nil
}

// Close detaches the stream from the mixer. The speaker drops a Ctrl whose
// streamer is nil on its next pass.
func (h *handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	h.out.Lock()
	h.ctrl.Streamer = nil
	h.ctrl.Paused = true
	h.out.Unlock()
	return nil
}
