package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lyrix/internal/library"
)

func newResetCommand(ctx *commandContext) *cobra.Command {
	var spacingMS int64

	cmd := &cobra.Command{
		Use:   "reset <id>",
		Short: "Replace a song's timecodes with uniform spacing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			interval := spacingMS
			if interval <= 0 {
				interval = cfg.Sync.DefaultLineSpacingMS
			}
			return ctx.withLibrary(func(lib *library.Library) error {
				tl, err := lib.Load(resolveKey(args[0]))
				if err != nil {
					return err
				}
				if tl == nil {
					return fmt.Errorf("no song stored under %s", args[0])
				}
				tl.ResetTimecodesToDefault(interval)
				if _, err := lib.Save(tl); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset %d line(s) to %d ms spacing.\n", tl.Len(), interval)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&spacingMS, "spacing-ms", 0, "Spacing between lines (defaults to sync.default_line_spacing_ms)")
	return cmd
}

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var clearTimes bool

	cmd := &cobra.Command{
		Use:   "clean <id>",
		Short: "Strip leaked timecode fragments from a song's text",
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

				repaired := tl.CleanCorruptedTexts()
				if clearTimes {
					tl.ClearAllTimecodes()
				}
				if _, err := lib.Save(tl); err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Repaired %d line(s).\n", repaired)
				if clearTimes {
					fmt.Fprintln(out, "All timecodes cleared.")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clearTimes, "clear-timecodes", false, "Also remove every timecode")
	return cmd
}
