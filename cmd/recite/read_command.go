package main

import (
	"fmt"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"recite/internal/session"
)

func newReadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "read <chapter>",
		Short: "Read a chapter interactively and play recitations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := ctx.quranClient()
			if err != nil {
				return err
			}
			chapter, err := resolveChapter(cmd.Context(), client, args[0])
			if err != nil {
				return err
			}

			lockPath := cfg.PlayerLockPath()
			lock := flock.New(lockPath)
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire player lock: %w", err)
			}
			if !ok {
				return fmt.Errorf("another recite reader is running (lock %s)", lockPath)
			}
			defer func() { _ = lock.Unlock() }()

			engine, err := ctx.audioEngine()
			if err != nil {
				return err
			}
			logger, err := ctx.componentLogger("session")
			if err != nil {
				return err
			}
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			var recorder session.Recorder
			if store != nil {
				defer store.Close()
				recorder = store
			}

			label := chapterLabel(chapter)
			sess, err := session.New(cmd.Context(), session.Options{
				Chapter:           chapter.ID,
				Label:             label,
				Fetcher:           client.PageFetcher(chapter.ID),
				Engine:            engine,
				AudioBaseURL:      cfg.Audio.BaseURL,
				PageSize:          cfg.List.PageSize,
				PrefetchThreshold: cfg.List.PrefetchThreshold,
				RetainMargin:      cfg.List.RetainMargin,
				ExclusivePlayback: cfg.Audio.ExclusivePlayback,
				Logger:            logger,
				Recorder:          recorder,
			})
			if err != nil {
				return err
			}
			defer sess.Close()

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			title := fmt.Sprintf("%d. %s (%s, %d verses)", chapter.ID, label, chapter.NameSimple, chapter.VersesCount)
			for _, line := range renderSectionHeader(title, colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, "Type h for help.")

			r := newReader(sess, out, cfg.List.PageSize, colorize)
			return r.run(cmd.Context(), cmd.InOrStdin())
		},
	}
}
