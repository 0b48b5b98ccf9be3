package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"recite/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var byChapter bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently completed recitations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				if byChapter {
					counts, err := store.ChapterCounts(cmd.Context())
					if err != nil {
						return err
					}
					if ctx.jsonOutput() {
						return writeJSON(cmd, counts)
					}
					rows := make([][]string, 0, len(counts))
					for _, c := range counts {
						rows = append(rows, []string{strconv.Itoa(c.ChapterID), c.ChapterLabel, strconv.Itoa(c.Count), formatTime(c.LastPlayed)})
					}
					fmt.Fprintln(cmd.OutOrStdout(), renderTable(
						[]string{"#", "Chapter", "Plays", "Last played"}, rows,
						[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
					))
					return nil
				}

				entries, err := store.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No recitations recorded yet")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{formatTime(e.FinishedAt), e.ChapterLabel, e.VerseKey})
				}
				fmt.Fprintln(out, renderTable([]string{"Finished", "Chapter", "Verse"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of entries to show")
	cmd.Flags().BoolVar(&byChapter, "by-chapter", false, "Summarize plays per chapter")
	cmd.AddCommand(newHistoryClearCommand(ctx))
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded recitations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(ctx, func(store *history.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries\n", removed)
				return nil
			})
		},
	}
}

func withHistory(ctx *commandContext, fn func(*history.Store) error) error {
	store, err := ctx.openHistory()
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("history is disabled; set history.enabled = true in the config")
	}
	defer store.Close()
	return fn(store)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
