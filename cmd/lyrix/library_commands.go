package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lyrix/internal/library"
	"lyrix/internal/timeline"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List songs in the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(lib *library.Library) error {
				entries, err := lib.ListAll()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, entries)
				}
				printEntries(cmd, entries)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search songs by title, artist or album",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(lib *library.Library) error {
				entries, err := lib.Search(args[0])
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, entries)
				}
				if len(entries) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "No songs match %q.\n", args[0])
					return nil
				}
				printEntries(cmd, entries)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	return cmd
}

func printEntries(cmd *cobra.Command, entries []library.Entry) {
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "Library is empty.")
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{
			entry.TimelineID,
			entry.Title,
			entry.Artist,
			entry.Album,
			formatDuration(entry.DurationMS),
			fmt.Sprintf("%d", entry.LineCount),
			yesNo(entry.BuiltIn),
		})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"ID", "Title", "Artist", "Album", "Duration", "Lines", "Built-in"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	fmt.Fprintf(out, "%d song(s)\n", len(entries))
}

func newNewCommand(ctx *commandContext) *cobra.Command {
	var album string
	var durationMS int64

	cmd := &cobra.Command{
		Use:   "new <title> [artist]",
		Short: "Create an empty song",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[0])
			if title == "" {
				return fmt.Errorf("title must not be empty")
			}
			artist := ""
			if len(args) == 2 {
				artist = strings.TrimSpace(args[1])
			}
			return ctx.withLibrary(func(lib *library.Library) error {
				tl := lib.NewTimeline(title, artist, album, durationMS)
				key, err := lib.Save(tl)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", tl.ID(), key)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&album, "album", "", "Album name")
	cmd.Flags().Int64Var(&durationMS, "duration-ms", 0, "Song duration in milliseconds")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a song, or the whole library with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("provide either a song id or --all")
			}
			return ctx.withLibrary(func(lib *library.Library) error {
				out := cmd.OutOrStdout()
				if all {
					deleted, err := lib.DeleteAll()
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Deleted %d song(s).\n", deleted)
					return nil
				}

				removed, err := lib.Delete(resolveKey(args[0]))
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("no song stored under %s", args[0])
				}
				fmt.Fprintf(out, "Deleted %s.\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Delete every song in the library")
	return cmd
}

func formatDuration(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	totalSeconds := ms / 1000
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

func formatLineTime(line timeline.Line) string {
	if !line.Synced() {
		return "--:--.--"
	}
	return fmt.Sprintf("%02d:%02d.%02d",
		line.Time/60000, (line.Time%60000)/1000, (line.Time%1000)/10)
}
