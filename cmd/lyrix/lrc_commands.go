package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lyrix/internal/library"
	"lyrix/internal/lrc"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var title, artist, album string

	cmd := &cobra.Command{
		Use:   "import <file.lrc>",
		Short: "Import an LRC file into the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(lib *library.Library) error {
				key, err := importLRCFile(lib, args[0], title, artist, album)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as %s\n", args[0], key)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Override the title from the LRC header")
	cmd.Flags().StringVar(&artist, "artist", "", "Override the artist from the LRC header")
	cmd.Flags().StringVar(&album, "album", "", "Override the album from the LRC header")
	return cmd
}

// importLRCFile parses one LRC file and stores it. Header metadata can be
// overridden; a file without a title tag falls back to its base name.
func importLRCFile(lib *library.Library, path, title, artist, album string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	tl := lrc.Parse(string(data))
	if title != "" {
		tl.SetTitle(title)
	}
	if artist != "" {
		tl.SetArtist(artist)
	}
	if album != "" {
		tl.SetAlbum(album)
	}
	if tl.Metadata().Title == "" {
		base := filepath.Base(path)
		tl.SetTitle(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if tl.Len() == 0 {
		return "", fmt.Errorf("%s contains no lyric lines", path)
	}

	// Imported timecodes may be non-monotonic; settle them once up front.
	tl.CorrectAll()

	key, err := lib.Save(tl)
	if err != nil {
		return "", err
	}
	return key, nil
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export <id> [file.lrc]",
		Short: "Export a song as LRC",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 && outPath == "" {
				outPath = args[1]
			}
			return ctx.withLibrary(func(lib *library.Library) error {
				tl, err := lib.Load(resolveKey(args[0]))
				if err != nil {
					return err
				}
				if tl == nil {
					return fmt.Errorf("no song stored under %s", args[0])
				}

				content := lrc.Serialize(tl)
				if outPath == "" {
					fmt.Fprint(cmd.OutOrStdout(), content)
					return nil
				}
				if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", args[0], outPath)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
