package services_test

import (
	"context"
	"testing"

	"recite/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithSessionID(ctx, "sess-1")
	ctx = services.WithItemID(ctx, "42")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.SessionIDFromContext(ctx); !ok || id != "sess-1" {
		t.Fatalf("unexpected session id: %v %v", id, ok)
	}
	if id, ok := services.ItemIDFromContext(ctx); !ok || id != "42" {
		t.Fatalf("unexpected item id: %v %v", id, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankItemPreservesContext(t *testing.T) {
	ctx := services.WithItemID(context.Background(), "")
	if _, ok := services.ItemIDFromContext(ctx); ok {
		t.Fatal("expected no item value")
	}
}
