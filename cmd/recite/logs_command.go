package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"recite/internal/logs"
)

const followWait = 2 * time.Second

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool
	var component string
	var sessionID string
	var level string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent log lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			filter := logs.Filter{
				Component: strings.TrimSpace(component),
				Session:   strings.TrimSpace(sessionID),
			}
			if strings.TrimSpace(level) != "" {
				lvl, ok := logs.ParseLevel(level)
				if !ok {
					return fmt.Errorf("unknown level %q (use debug, info, warn or error)", level)
				}
				filter.MinLevel = lvl
				filter.Levels = true
			}

			out := cmd.OutOrStdout()
			path := cfg.LogPath()
			result, err := logs.Tail(cmd.Context(), path, logs.TailOptions{Offset: -1, Limit: lines, Filter: filter})
			if err != nil {
				return err
			}
			for _, line := range result.Lines {
				fmt.Fprintln(out, line)
			}
			if !follow {
				if len(result.Lines) == 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "No matching log lines in %s\n", path)
				}
				return nil
			}

			offset := result.Offset
			for {
				next, err := logs.Tail(cmd.Context(), path, logs.TailOptions{Offset: offset, Follow: true, Wait: followWait, Filter: filter})
				if err != nil {
					return err
				}
				for _, line := range next.Lines {
					fmt.Fprintln(out, line)
				}
				offset = next.Offset
			}
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines")
	cmd.Flags().StringVar(&component, "component", "", "Only show one component (session, pagination, playback, quran, audio)")
	cmd.Flags().StringVar(&sessionID, "session", "", "Only show one session id (prefix accepted)")
	cmd.Flags().StringVar(&level, "level", "", "Minimum level to show")
	return cmd
}
