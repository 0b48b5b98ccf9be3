package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"recite/internal/services/quran"
	"recite/internal/textutil"
)

// minChapterNameScore is the trigram similarity a name lookup must reach.
const minChapterNameScore = 0.45

type chapterCatalog interface {
	Chapters(ctx context.Context) ([]quran.Chapter, error)
	Chapter(ctx context.Context, id int) (quran.Chapter, error)
}

// resolveChapter accepts a chapter number or a (possibly misspelled) name.
func resolveChapter(ctx context.Context, catalog chapterCatalog, arg string) (quran.Chapter, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return quran.Chapter{}, errors.New("chapter number or name is required")
	}
	if id, err := strconv.Atoi(arg); err == nil {
		if id < 1 {
			return quran.Chapter{}, fmt.Errorf("invalid chapter number: %d", id)
		}
		chapter, err := catalog.Chapter(ctx, id)
		if err != nil {
			return quran.Chapter{}, fmt.Errorf("load chapter %d: %w", id, err)
		}
		return chapter, nil
	}

	chapters, err := catalog.Chapters(ctx)
	if err != nil {
		return quran.Chapter{}, fmt.Errorf("load chapter catalog: %w", err)
	}
	candidates := make([]textutil.Candidate, 0, len(chapters))
	byID := make(map[int]quran.Chapter, len(chapters))
	for _, ch := range chapters {
		byID[ch.ID] = ch
		candidates = append(candidates, textutil.Candidate{
			ID:    ch.ID,
			Names: []string{ch.NameSimple, ch.NameComplex, ch.NameArabic, ch.TranslatedName.Name},
		})
	}
	match, ok := textutil.BestMatch(arg, candidates, minChapterNameScore)
	if !ok {
		return quran.Chapter{}, fmt.Errorf("no chapter matches %q", arg)
	}
	return byID[match.ID], nil
}

// chapterLabel is the display label handed to a session.
func chapterLabel(ch quran.Chapter) string {
	if label := strings.TrimSpace(ch.NameArabic); label != "" {
		return label
	}
	if label := strings.TrimSpace(ch.NameSimple); label != "" {
		return label
	}
	return fmt.Sprintf("Chapter %d", ch.ID)
}
