package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lyrix/internal/library"
)

func newBundleCommand(ctx *commandContext) *cobra.Command {
	bundleCmd := &cobra.Command{
		Use:   "bundle",
		Short: "Transfer whole libraries as JSON bundles",
	}

	bundleCmd.AddCommand(newBundleExportCommand(ctx))
	bundleCmd.AddCommand(newBundleImportCommand(ctx))

	return bundleCmd
}

func newBundleExportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file.json]",
		Short: "Export every song to a bundle file, or stdout when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(lib *library.Library) error {
				bundle, err := lib.ExportBundle()
				if err != nil {
					return err
				}
				if len(args) == 0 {
					return writeJSON(cmd, bundle)
				}
				payload, err := json.MarshalIndent(bundle, "", "  ")
				if err != nil {
					return fmt.Errorf("encode bundle: %w", err)
				}
				if err := os.WriteFile(args[0], payload, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d song(s) to %s\n", bundle.TotalSongs, args[0])
				return nil
			})
		},
	}
	return cmd
}

func newBundleImportCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool
	var markBuiltIn bool

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import songs from a bundle file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			var bundle library.Bundle
			if err := json.Unmarshal(data, &bundle); err != nil {
				return fmt.Errorf("decode bundle %s: %w", args[0], err)
			}

			return ctx.withLibrary(func(lib *library.Library) error {
				result, err := lib.ImportBundle(&bundle, library.ImportOptions{
					Overwrite:   overwrite,
					MarkBuiltIn: markBuiltIn,
				})
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Imported %d song(s), skipped %d.\n", result.Imported, result.Skipped)
				for _, entryErr := range result.Errors {
					fmt.Fprintf(out, "  %v\n", entryErr)
				}
				if len(result.Errors) > 0 {
					return fmt.Errorf("%d song(s) failed to import", len(result.Errors))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace songs that already exist")
	cmd.Flags().BoolVar(&markBuiltIn, "builtin", false, "Track imported songs as built-in")
	return cmd
}
