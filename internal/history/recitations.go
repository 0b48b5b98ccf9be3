package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Entry is one finished recitation.
type Entry struct {
	ID           int64     `json:"id"`
	ChapterID    int       `json:"chapter_id"`
	ChapterLabel string    `json:"chapter_label"`
	VerseKey     string    `json:"verse_key"`
	ItemID       string    `json:"item_id"`
	SessionID    string    `json:"session_id,omitempty"`
	FinishedAt   time.Time `json:"finished_at"`
}

// ChapterCount aggregates finished recitations per chapter.
type ChapterCount struct {
	ChapterID    int       `json:"chapter_id"`
	ChapterLabel string    `json:"chapter_label"`
	Count        int       `json:"count"`
	LastPlayed   time.Time `json:"last_played"`
}

// RecordPlayback appends one entry. A zero FinishedAt is stamped with the current time.
func (s *Store) RecordPlayback(ctx context.Context, entry Entry) error {
	ctx = ensureContext(ctx)
	if entry.ChapterID <= 0 {
		return errors.New("history: chapter id required")
	}
	if strings.TrimSpace(entry.ItemID) == "" {
		return errors.New("history: item id required")
	}
	if entry.FinishedAt.IsZero() {
		entry.FinishedAt = time.Now()
	}
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO recitations (chapter_id, chapter_label, verse_key, item_id, session_id, finished_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			entry.ChapterID,
			entry.ChapterLabel,
			entry.VerseKey,
			entry.ItemID,
			entry.SessionID,
			entry.FinishedAt.UTC().Format(timeLayout),
		)
		if err != nil {
			return fmt.Errorf("insert recitation: %w", err)
		}
		return nil
	})
}

// Recent returns the newest entries first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chapter_id, chapter_label, verse_key, item_id, session_id, finished_at
		 FROM recitations ORDER BY finished_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent recitations: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry    Entry
			finished string
		)
		if err := rows.Scan(&entry.ID, &entry.ChapterID, &entry.ChapterLabel, &entry.VerseKey, &entry.ItemID, &entry.SessionID, &finished); err != nil {
			return nil, fmt.Errorf("scan recitation: %w", err)
		}
		entry.FinishedAt = parseTime(finished)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recitations: %w", err)
	}
	return entries, nil
}

// ChapterCounts returns per-chapter totals, most played first.
func (s *Store) ChapterCounts(ctx context.Context) ([]ChapterCount, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT chapter_id, MAX(chapter_label), COUNT(1), MAX(finished_at)
		 FROM recitations GROUP BY chapter_id ORDER BY COUNT(1) DESC, chapter_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query chapter counts: %w", err)
	}
	defer rows.Close()

	var counts []ChapterCount
	for rows.Next() {
		var (
			count ChapterCount
			last  string
		)
		if err := rows.Scan(&count.ChapterID, &count.ChapterLabel, &count.Count, &last); err != nil {
			return nil, fmt.Errorf("scan chapter count: %w", err)
		}
		count.LastPlayed = parseTime(last)
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chapter counts: %w", err)
	}
	return counts, nil
}

// Clear removes every entry and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var removed int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx, "DELETE FROM recitations")
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	return removed, nil
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
