package main

import (
	"fmt"
	"strings"
	"testing"

	"recite/internal/pagination"
	"recite/internal/playback"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("2:255", statusOK, "playing", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "2:255:", "[OK] playing")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("List", statusError, "failed", true)
	if !strings.HasPrefix(got, ansiRed) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected red status line, got %q", got)
	}
}

func TestStatusKinds(t *testing.T) {
	if playbackKind(playback.Playing) != statusOK || playbackKind(playback.Paused) != statusWarn || playbackKind(playback.Unloaded) != statusInfo {
		t.Fatal("unexpected playback kinds")
	}
	if listKind(pagination.Failed) != statusError || listKind(pagination.FetchingNext) != statusWarn || listKind(pagination.Settled) != statusOK {
		t.Fatal("unexpected list kinds")
	}
}

func TestRenderSectionHeaderCountsRunes(t *testing.T) {
	lines := renderSectionHeader("1. الفاتحة", false)
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	if len([]rune(lines[0])) != len(lines[1]) {
		t.Fatalf("rule width mismatch: %q / %q", lines[0], lines[1])
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	var sb strings.Builder
	if shouldColorize(&sb) {
		t.Fatal("builders are never terminals")
	}
}
