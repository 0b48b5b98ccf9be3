package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"recite/internal/config"
	"recite/internal/playback"
	"recite/internal/services/quran"
)

var testChapters = []quran.Chapter{
	{ID: 1, NameSimple: "Al-Fatihah", NameComplex: "Al-Fātiĥah", NameArabic: "الفاتحة", VersesCount: 7, RevelationPlace: "makkah", TranslatedName: quran.TranslatedName{Name: "The Opener"}},
	{ID: 2, NameSimple: "Al-Baqarah", NameComplex: "Al-Baqarah", NameArabic: "البقرة", VersesCount: 7, RevelationPlace: "madinah", TranslatedName: quran.TranslatedName{Name: "The Cow"}},
	{ID: 9, NameSimple: "At-Tawbah", NameComplex: "At-Tawbah", NameArabic: "التوبة", VersesCount: 7, RevelationPlace: "madinah", TranslatedName: quran.TranslatedName{Name: "The Repentance"}},
}

// failingChapter answers verse requests with 503.
const failingChapter = 9

const testVerseCount = 7

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /chapters", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, map[string]any{"chapters": testChapters})
	})
	mux.HandleFunc("GET /chapters/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		for _, ch := range testChapters {
			if ch.ID == id {
				writeTestJSON(w, map[string]any{"chapter": ch})
				return
			}
		}
		http.Error(w, `{"status":404,"error":"not found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("GET /verses/by_chapter/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(r.PathValue("id"))
		if id == failingChapter {
			http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
			return
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		if page < 1 {
			page = 1
		}
		if perPage < 1 {
			perPage = 10
		}
		totalPages := (testVerseCount + perPage - 1) / perPage
		var verses []quran.Verse
		for n := (page-1)*perPage + 1; n <= page*perPage && n <= testVerseCount; n++ {
			verses = append(verses, quran.Verse{
				ID:          id*1000 + n,
				ChapterID:   id,
				VerseNumber: n,
				VerseKey:    fmt.Sprintf("%d:%d", id, n),
				TextIndopak: fmt.Sprintf("verse %d of %d", n, id),
				Words: []quran.Word{
					{ID: 1, Position: 1, CharTypeName: "word", Translation: quran.WordText{Text: fmt.Sprintf("gloss %d", n)}},
					{ID: 2, Position: 2, CharTypeName: "word", Translation: quran.WordText{Text: fmt.Sprintf("of %d", id)}},
					{ID: 3, Position: 3, CharTypeName: "end", Translation: quran.WordText{Text: fmt.Sprintf("(%d)", n)}},
				},
				Audio:       &quran.Audio{URL: fmt.Sprintf("Alafasy/mp3/%03d%03d.mp3", id, n)},
			})
		}
		pagination := map[string]any{
			"per_page":      perPage,
			"current_page":  page,
			"total_pages":   totalPages,
			"total_records": testVerseCount,
			"next_page":     nil,
		}
		if page < totalPages {
			pagination["next_page"] = page + 1
		}
		writeTestJSON(w, map[string]any{"verses": verses, "pagination": pagination})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeTestJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type cliTestEnv struct {
	api        *httptest.Server
	configPath string
	stateDir   string
	engine     *stubEngine
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv(config.APIBaseURLEnv, "")

	api := newFakeAPI(t)
	stateDir := filepath.Join(base, "state")
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
state_dir = %q
log_dir = %q

[api]
base_url = %q

[audio]
base_url = %q

[list]
page_size = 3
`, stateDir, filepath.Join(base, "logs"), api.URL, api.URL+"/audio/")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	engine := &stubEngine{}
	previous := newAudioEngine
	newAudioEngine = func(*config.Config, *slog.Logger) playback.Engine { return engine }
	t.Cleanup(func() { newAudioEngine = previous })

	return &cliTestEnv{api: api, configPath: configPath, stateDir: stateDir, engine: engine}
}

func runCLI(t *testing.T, args []string, configPath string, stdin io.Reader) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

type stubHandle struct{}

func (stubHandle) Play() error  { return nil }
func (stubHandle) Pause() error { return nil }
func (stubHandle) Close() error { return nil }

type stubEngine struct {
	mu   sync.Mutex
	uris []string
}

func (e *stubEngine) Open(_ context.Context, uri string, _ func()) (playback.Handle, error) {
	e.mu.Lock()
	e.uris = append(e.uris, uri)
	e.mu.Unlock()
	return stubHandle{}, nil
}

func (e *stubEngine) opened() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.uris...)
}
