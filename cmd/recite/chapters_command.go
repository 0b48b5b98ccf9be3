package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newChaptersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "chapters",
		Short: "List the chapter catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.quranClient()
			if err != nil {
				return err
			}
			chapters, err := client.Chapters(cmd.Context())
			if err != nil {
				return fmt.Errorf("list chapters: %w", err)
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, chapters)
			}
			rows := make([][]string, 0, len(chapters))
			for _, ch := range chapters {
				rows = append(rows, []string{
					strconv.Itoa(ch.ID),
					ch.NameSimple,
					ch.NameArabic,
					ch.TranslatedName.Name,
					strconv.Itoa(ch.VersesCount),
					ch.RevelationPlace,
				})
			}
			headers := []string{"#", "Name", "Arabic", "Meaning", "Verses", "Revealed"}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}
}
