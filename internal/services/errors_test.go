package services_test

import (
	"errors"
	"strings"
	"testing"

	"recite/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrNetwork, "quran", "verses", "page 2", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"quran", "verses", "page 2"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutMarkerDefaultsToNetwork(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrNetwork) {
		t.Fatalf("expected network marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestScopeMapping(t *testing.T) {
	netErr := services.Wrap(services.ErrNetwork, "quran", "verses", "", errors.New("reset"))
	if scope := services.Scope(netErr, true); scope != services.ScopeSession {
		t.Fatalf("expected session scope for first page, got %q", scope)
	}
	if scope := services.Scope(netErr, false); scope != services.ScopePage {
		t.Fatalf("expected page scope for next page, got %q", scope)
	}

	loadErr := services.Wrap(services.ErrLoad, "playback", "load", "", errors.New("decode"))
	if scope := services.Scope(loadErr, true); scope != services.ScopeRow {
		t.Fatalf("expected row scope for load error, got %q", scope)
	}

	if scope := services.Scope(nil, true); scope != services.ScopeNone {
		t.Fatalf("expected no scope for nil error, got %q", scope)
	}
}

func TestRetryable(t *testing.T) {
	if !services.Retryable(services.Wrap(services.ErrLoad, "playback", "load", "", nil)) {
		t.Fatal("expected load error to be retryable")
	}
	if services.Retryable(services.Wrap(services.ErrConfiguration, "config", "", "bad", nil)) {
		t.Fatal("expected configuration error to be terminal")
	}
	if services.Retryable(nil) {
		t.Fatal("expected nil error to be non-retryable")
	}
}
