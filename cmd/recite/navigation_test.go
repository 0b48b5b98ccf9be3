package main

import (
	"context"
	"errors"
	"testing"

	"recite/internal/services/quran"
)

type staticCatalog struct {
	chapters []quran.Chapter
}

func (c staticCatalog) Chapters(context.Context) ([]quran.Chapter, error) {
	return c.chapters, nil
}

func (c staticCatalog) Chapter(_ context.Context, id int) (quran.Chapter, error) {
	for _, ch := range c.chapters {
		if ch.ID == id {
			return ch, nil
		}
	}
	return quran.Chapter{}, errors.New("not found")
}

func TestResolveChapter(t *testing.T) {
	catalog := staticCatalog{chapters: testChapters}
	tests := []struct {
		arg  string
		want int
	}{
		{"2", 2},
		{"Al-Fatihah", 1},
		{"fatiha", 1},
		{"al baqara", 2},
		{"The Repentance", 9},
		{"البقرة", 2},
	}
	for _, tt := range tests {
		got, err := resolveChapter(context.Background(), catalog, tt.arg)
		if err != nil {
			t.Fatalf("resolve %q: %v", tt.arg, err)
		}
		if got.ID != tt.want {
			t.Fatalf("resolve %q = %d, want %d", tt.arg, got.ID, tt.want)
		}
	}
}

func TestResolveChapterRejects(t *testing.T) {
	catalog := staticCatalog{chapters: testChapters}
	for _, arg := range []string{"", "0", "-3", "zzzz qqqq", "50"} {
		if _, err := resolveChapter(context.Background(), catalog, arg); err == nil {
			t.Fatalf("expected %q to be rejected", arg)
		}
	}
}

func TestChapterLabelFallbacks(t *testing.T) {
	if got := chapterLabel(quran.Chapter{ID: 1, NameArabic: "الفاتحة", NameSimple: "Al-Fatihah"}); got != "الفاتحة" {
		t.Fatalf("label = %q", got)
	}
	if got := chapterLabel(quran.Chapter{ID: 1, NameSimple: "Al-Fatihah"}); got != "Al-Fatihah" {
		t.Fatalf("label = %q", got)
	}
	if got := chapterLabel(quran.Chapter{ID: 5}); got != "Chapter 5" {
		t.Fatalf("label = %q", got)
	}
}
