package quran

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"recite/internal/logging"
	"recite/internal/pagination"
	"recite/internal/services"
)

const (
	defaultBaseURL     = "https://api.quran.com/api/v4"
	defaultHTTPTimeout = 15 * time.Second
	maxErrorBody       = 512
	component          = "quran"
)

// Config captures the query shape sent with every verse request.
type Config struct {
	BaseURL        string
	Language       string
	Fields         string
	Recitation     int
	Words          bool
	TimeoutSeconds int
}

// Client wraps the verse API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, component)
	}
}

// NewClient constructs a client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Language:       strings.TrimSpace(cfg.Language),
			Fields:         strings.TrimSpace(cfg.Fields),
			Recitation:     cfg.Recitation,
			Words:          cfg.Words,
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewComponentLogger(nil, component),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	return client
}

type httpStatusError struct {
	StatusCode int
	Body       string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// StatusCode extracts the HTTP status from an error returned by the client.
func StatusCode(err error) (int, bool) {
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

// Chapters lists the chapter catalog.
func (c *Client) Chapters(ctx context.Context) ([]Chapter, error) {
	query := url.Values{}
	if c.cfg.Language != "" {
		query.Set("language", c.cfg.Language)
	}
	var resp chaptersResponse
	if err := c.getJSON(ctx, "list chapters", []string{"chapters"}, query, &resp); err != nil {
		return nil, err
	}
	return resp.Chapters, nil
}

// Chapter fetches one chapter's metadata.
func (c *Client) Chapter(ctx context.Context, id int) (Chapter, error) {
	query := url.Values{}
	if c.cfg.Language != "" {
		query.Set("language", c.cfg.Language)
	}
	var resp chapterResponse
	if err := c.getJSON(ctx, "get chapter", []string{"chapters", strconv.Itoa(id)}, query, &resp); err != nil {
		return Chapter{}, err
	}
	return resp.Chapter, nil
}

// VersesByChapter fetches one page of a chapter's verses.
func (c *Client) VersesByChapter(ctx context.Context, chapter, page, perPage int) (VersePage, error) {
	if chapter <= 0 {
		return VersePage{}, services.Wrap(services.ErrNotFound, component, "fetch verses", fmt.Sprintf("invalid chapter %d", chapter), nil)
	}
	var resp VersePage
	segments := []string{"verses", "by_chapter", strconv.Itoa(chapter)}
	if err := c.getJSON(ctx, "fetch verses", segments, c.verseQuery(page, perPage), &resp); err != nil {
		return VersePage{}, err
	}
	return resp, nil
}

// PageFetcher binds a chapter so the client can feed a pagination store.
func (c *Client) PageFetcher(chapter int) pagination.Fetcher[Verse] {
	return pagination.FetcherFunc[Verse](func(ctx context.Context, cursor, pageSize int) (pagination.Page[Verse], error) {
		resp, err := c.VersesByChapter(ctx, chapter, cursor, pageSize)
		if err != nil {
			return pagination.Page[Verse]{}, err
		}
		return pagination.Page[Verse]{
			Items:       resp.Verses,
			CurrentPage: resp.Pagination.CurrentPage,
			TotalPages:  resp.Pagination.TotalPages,
		}, nil
	})
}

func (c *Client) verseQuery(page, perPage int) url.Values {
	query := url.Values{}
	if c.cfg.Language != "" {
		query.Set("language", c.cfg.Language)
	}
	if c.cfg.Recitation > 0 {
		query.Set("audio", strconv.Itoa(c.cfg.Recitation))
	}
	query.Set("words", strconv.FormatBool(c.cfg.Words))
	if c.cfg.Fields != "" {
		query.Set("fields", c.cfg.Fields)
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	return query
}

func (c *Client) getJSON(ctx context.Context, op string, segments []string, query url.Values, out any) error {
	endpoint, err := url.JoinPath(c.cfg.BaseURL, segments...)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, component, op, "build url", err)
	}
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, uuid.NewString())
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, component, op, "new request", err)
	}
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrNetwork, component, op, fmt.Sprintf("http error (timeout=%s)", c.httpClient.Timeout), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return services.Wrap(services.ErrNetwork, component, op, "read body", err)
	}
	logging.WithContext(ctx, c.logger).Debug("api response",
		logging.String("endpoint", req.URL.Path),
		logging.Int("status", resp.StatusCode),
		logging.Duration("elapsed", time.Since(started)),
	)
	if resp.StatusCode >= http.StatusMultipleChoices {
		return services.Wrap(services.ErrNetwork, component, op, "", &httpStatusError{
			StatusCode: resp.StatusCode,
			Body:       summarize(body),
		})
	}
	if err := json.Unmarshal(body, out); err != nil {
		return services.Wrap(services.ErrNetwork, component, op, "decode response", err)
	}
	return nil
}

func summarize(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		return text[:maxErrorBody] + "..."
	}
	return text
}
