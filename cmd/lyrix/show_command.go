package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lyrix/internal/library"
	"lyrix/internal/timeline"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	var atMS int64

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display a song's lines and timecodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(lib *library.Library) error {
				tl, err := lib.Load(resolveKey(args[0]))
				if err != nil {
					return err
				}
				if tl == nil {
					return fmt.Errorf("no song stored under %s", args[0])
				}

				if jsonOut {
					return writeJSON(cmd, showPayload(tl))
				}

				out := cmd.OutOrStdout()
				meta := tl.Metadata()
				fmt.Fprintf(out, "%s — %s", meta.Title, meta.Artist)
				if meta.Album != "" {
					fmt.Fprintf(out, " (%s)", meta.Album)
				}
				fmt.Fprintln(out)

				activeIndex := -1
				if atMS >= 0 {
					if idx, ok := tl.ActiveIndexAt(atMS); ok {
						activeIndex = idx
					}
				}

				rows := make([][]string, 0, tl.Len())
				for i, line := range tl.Lines() {
					marker := ""
					if i == activeIndex {
						marker = ">"
					}
					rows = append(rows, []string{
						marker,
						fmt.Sprintf("%d", i+1),
						formatLineTime(line),
						string(line.Type),
						line.Text,
					})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"", "#", "Time", "Type", "Text"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit JSON instead of a table")
	cmd.Flags().Int64Var(&atMS, "at", -1, "Highlight the line active at this playback position (ms)")
	return cmd
}

func showPayload(tl *timeline.Timeline) map[string]any {
	meta := tl.Metadata()
	return map[string]any{
		"id":         tl.ID(),
		"title":      meta.Title,
		"artist":     meta.Artist,
		"album":      meta.Album,
		"durationMs": meta.DurationMS,
		"audioPath":  meta.AudioRef,
		"lines":      tl.Lines(),
	}
}
