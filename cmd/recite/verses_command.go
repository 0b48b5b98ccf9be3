package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"recite/internal/logging"
	"recite/internal/pagination"
	"recite/internal/services/quran"
	"recite/internal/textutil"
)

type versesOutput struct {
	Chapter quran.Chapter `json:"chapter"`
	Pages   int           `json:"pages"`
	HasNext bool          `json:"has_next"`
	Verses  []quran.Verse `json:"verses"`
}

func newVersesCommand(ctx *commandContext) *cobra.Command {
	var pages int

	cmd := &cobra.Command{
		Use:   "verses <chapter>",
		Short: "Print the first pages of a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pages < 1 {
				return fmt.Errorf("--pages must be at least 1, got %d", pages)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.quranClient()
			if err != nil {
				return err
			}
			logger, err := ctx.componentLogger("pagination")
			if err != nil {
				return err
			}
			chapter, err := resolveChapter(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			store := pagination.New(cmd.Context(), client.PageFetcher(chapter.ID), pagination.Options[quran.Verse]{
				PageSize: cfg.List.PageSize,
				Key:      quran.Verse.Key,
				Logger:   logger.With(logging.Int(logging.FieldChapter, chapter.ID)),
			})
			defer store.Close()

			snap, err := collectPages(cmd.Context(), store, pages)
			if err != nil {
				return fmt.Errorf("fetch verses of chapter %d: %w", chapter.ID, err)
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, versesOutput{
					Chapter: chapter,
					Pages:   snap.Pages,
					HasNext: snap.HasNext,
					Verses:  snap.Items,
				})
			}
			rows := make([][]string, 0, len(snap.Items))
			for _, v := range snap.Items {
				audio := "-"
				if v.AudioPath() != "" {
					audio = "yes"
				}
				words := v.WordTranslation()
				if words == "" {
					words = "-"
				}
				rows = append(rows, []string{v.VerseKey, textutil.StripTags(v.Text()), words, audio})
			}
			out := cmd.OutOrStdout()
			for _, line := range renderSectionHeader(fmt.Sprintf("%d. %s", chapter.ID, chapterLabel(chapter)), shouldColorize(out)) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderTable([]string{"Verse", "Text", "Words", "Audio"}, rows, []columnAlignment{alignRight, alignRight, alignLeft, alignLeft}))
			if snap.HasNext {
				fmt.Fprintf(out, "Showing %d pages; more available (use --pages).\n", snap.Pages)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&pages, "pages", "n", 1, "Number of pages to fetch")
	return cmd
}

// collectPages drives store until it holds n pages, the source runs out, or
// a fetch fails.
func collectPages[T any](ctx context.Context, store *pagination.Store[T], n int) (pagination.Snapshot[T], error) {
	updates, cancel := store.Subscribe()
	defer cancel()
	store.Start()

	for {
		select {
		case <-ctx.Done():
			return store.Snapshot(), ctx.Err()
		case snap, ok := <-updates:
			if !ok {
				return store.Snapshot(), context.Canceled
			}
			switch snap.Status {
			case pagination.Failed:
				return snap, snap.Err
			case pagination.Settled:
				if snap.Pages >= n || !snap.HasNext {
					return snap, nil
				}
				store.RequestMore()
			}
		}
	}
}
