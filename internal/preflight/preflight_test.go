package preflight

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recite/internal/config"
	"recite/internal/services/quran"
)

type stubLister struct {
	chapters []quran.Chapter
	err      error
}

func (s stubLister) Chapters(context.Context) ([]quran.Chapter, error) {
	return s.chapters, s.err
}

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckVerseAPI(t *testing.T) {
	ok := CheckVerseAPI(context.Background(), stubLister{chapters: []quran.Chapter{{ID: 1}, {ID: 2}}})
	if !ok.Passed || !strings.Contains(ok.Detail, "2 chapters") {
		t.Fatalf("expected pass, got %+v", ok)
	}
	empty := CheckVerseAPI(context.Background(), stubLister{})
	if empty.Passed {
		t.Fatal("expected an empty catalog to fail")
	}
	failed := CheckVerseAPI(context.Background(), stubLister{err: errors.New("boom")})
	if failed.Passed || failed.Detail != "boom" {
		t.Fatalf("unexpected result: %+v", failed)
	}
}

func TestCheckVerseAPIReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := quran.NewClient(quran.Config{BaseURL: srv.URL})
	result := CheckVerseAPI(context.Background(), client)
	if result.Passed || !strings.Contains(result.Detail, "502") {
		t.Fatalf("expected a 502 failure, got %+v", result)
	}
}

func TestCheckAudioHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if result := CheckAudioHost(context.Background(), srv.URL+"/", nil); !result.Passed {
		t.Fatalf("expected any non-5xx response to pass, got %+v", result)
	}
	if result := CheckAudioHost(context.Background(), "", nil); result.Passed {
		t.Fatal("expected missing url to fail")
	}
}

func TestCheckAudioHostServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if result := CheckAudioHost(context.Background(), srv.URL, nil); result.Passed {
		t.Fatalf("expected failure, got %+v", result)
	}
}

func TestRunAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.History.Path = filepath.Join(base, "state", "history.db")
	cfg.Audio.BaseURL = srv.URL + "/"
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	results := RunAll(context.Background(), &cfg, stubLister{chapters: []quran.Chapter{{ID: 1}}})
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d: %+v", len(results), results)
	}
	if Failed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}

	cfg.History.Enabled = false
	if got := RunAll(context.Background(), &cfg, nil); len(got) != 3 {
		t.Fatalf("expected 3 results without history and API, got %d", len(got))
	}
}
