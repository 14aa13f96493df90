package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lyrix/internal/library"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show library-wide counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(lib *library.Library) error {
				stats, err := lib.Stats()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, stats)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Songs:            %d\n", stats.TotalSongs)
				fmt.Fprintf(out, "Lines:            %d\n", stats.TotalLines)
				fmt.Fprintf(out, "Songs with audio: %d\n", stats.SongsWithAudio)
				fmt.Fprintf(out, "Built-in songs:   %d\n", stats.BuiltInSongs)
				fmt.Fprintf(out, "User songs:       %d\n", stats.UserSongs)
				fmt.Fprintf(out, "Avg lines/song:   %d\n", stats.AverageLinesPerSong)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of text")
	return cmd
}

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check every stored song for problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(lib *library.Library) error {
				issues, err := lib.Validate()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, issues)
				}

				out := cmd.OutOrStdout()
				if len(issues) == 0 {
					fmt.Fprintln(out, "No problems found.")
					return nil
				}
				for _, issue := range issues {
					fmt.Fprintf(out, "%s: %s\n", issue.Key, issue.Message)
				}
				return fmt.Errorf("%d problem(s) found", len(issues))
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of text")
	return cmd
}
