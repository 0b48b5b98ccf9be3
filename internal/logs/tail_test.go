package logs_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recite/internal/logs"
)

const sampleLog = `2026-10-18 09:00:01 INFO session · session 3f2a9c1e: session opened label=البقرة
2026-10-18 09:00:01 DEBUG pagination · session 3f2a9c1e: fetching page cursor=1
2026-10-18 09:00:02 WARN pagination · session 3f2a9c1e: page fetch failed event_type=page_fetch_failed
2026-10-18 09:00:05 INFO playback · session 77aa0b2c · item #1005: recitation finished
{"ts":"2026-10-18T09:00:06Z","level":"error","msg":"recitation load failed","component":"playback","session_id":"77aa0b2c-1111-2222-3333-444455556666"}
not a log line
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recite.log")
	if err := os.WriteFile(path, []byte(sampleLog), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestTailLastLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recite.log")
	if err := os.WriteFile(path, []byte("a\nb\nc\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	result, err := logs.Tail(context.Background(), path, logs.TailOptions{Offset: -1, Limit: 2})
	if err != nil {
		t.Fatalf("tail returned error: %v", err)
	}
	if len(result.Lines) != 2 || result.Lines[0] != "b" || result.Lines[1] != "c" {
		t.Fatalf("unexpected lines: %#v", result.Lines)
	}
	if result.Offset != 6 {
		t.Fatalf("expected offset at end of file, got %d", result.Offset)
	}
}

func TestTailMissingFile(t *testing.T) {
	result, err := logs.Tail(context.Background(), filepath.Join(t.TempDir(), "missing.log"), logs.TailOptions{Offset: -1, Limit: 5})
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(result.Lines) != 0 || result.Offset != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestTailFiltersByComponent(t *testing.T) {
	path := writeSample(t)
	result, err := logs.Tail(context.Background(), path, logs.TailOptions{
		Offset: -1,
		Limit:  10,
		Filter: logs.Filter{Component: "pagination"},
	})
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(result.Lines) != 2 {
		t.Fatalf("expected two pagination lines, got %#v", result.Lines)
	}
}

func TestTailFiltersBySessionAcrossFormats(t *testing.T) {
	path := writeSample(t)
	result, err := logs.Tail(context.Background(), path, logs.TailOptions{
		Offset: -1,
		Limit:  10,
		Filter: logs.Filter{Session: "77aa0b2c-1111-2222-3333-444455556666"},
	})
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(result.Lines) != 2 {
		t.Fatalf("expected the console and JSON lines of the session, got %#v", result.Lines)
	}
	if !strings.HasPrefix(result.Lines[1], "{") {
		t.Fatalf("expected the JSON line last, got %q", result.Lines[1])
	}
}

func TestTailFiltersByLevel(t *testing.T) {
	path := writeSample(t)
	result, err := logs.Tail(context.Background(), path, logs.TailOptions{
		Offset: -1,
		Limit:  10,
		Filter: logs.Filter{MinLevel: slog.LevelWarn, Levels: true},
	})
	if err != nil {
		t.Fatalf("tail: %v", err)
	}
	if len(result.Lines) != 2 {
		t.Fatalf("expected warn and error lines, got %#v", result.Lines)
	}
}

func TestFilterMatch(t *testing.T) {
	line := "2026-10-18 09:00:05 INFO playback · session 77aa0b2c · item #1005: recitation finished"
	tests := []struct {
		name   string
		filter logs.Filter
		want   bool
	}{
		{"empty", logs.Filter{}, true},
		{"component", logs.Filter{Component: "Playback"}, true},
		{"other component", logs.Filter{Component: "session"}, false},
		{"short session", logs.Filter{Session: "77aa"}, true},
		{"other session", logs.Filter{Session: "3f2a"}, false},
		{"level below", logs.Filter{MinLevel: slog.LevelInfo, Levels: true}, true},
		{"level above", logs.Filter{MinLevel: slog.LevelError, Levels: true}, false},
	}
	for _, tt := range tests {
		if got := tt.filter.Match(line); got != tt.want {
			t.Fatalf("%s: Match = %v, want %v", tt.name, got, tt.want)
		}
	}
	if (logs.Filter{Component: "playback"}).Match("garbage") {
		t.Fatal("unparseable lines must not pass a non-empty filter")
	}
}

func TestTailFollowWaits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recite.log")
	if err := os.WriteFile(path, []byte("start\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	result, err := logs.Tail(ctx, path, logs.TailOptions{Offset: -1, Limit: 1})
	if err != nil {
		t.Fatalf("initial tail: %v", err)
	}
	if len(result.Lines) != 1 {
		t.Fatalf("expected initial line, got %#v", result.Lines)
	}

	done := make(chan struct{})
	go func(offset int64) {
		defer close(done)
		res, err := logs.Tail(ctx, path, logs.TailOptions{Offset: offset, Follow: true, Wait: 5 * time.Second})
		if err != nil {
			t.Errorf("follow tail error: %v", err)
		}
		if len(res.Lines) != 1 || res.Lines[0] != "later" {
			t.Errorf("unexpected follow lines: %#v", res.Lines)
		}
	}(result.Offset)

	time.Sleep(200 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open append: %v", err)
	}
	if _, err := f.WriteString("later\n"); err != nil {
		t.Fatalf("append log: %v", err)
	}
	_ = f.Close()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("tail follow did not return")
	}
}
