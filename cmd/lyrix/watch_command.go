package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"lyrix/internal/library"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Watch the inbox directory and import dropped LRC files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			watchDir := cfg.Paths.WatchDir
			if len(args) == 1 {
				watchDir = args[0]
			}
			if watchDir == "" {
				return fmt.Errorf("no watch directory configured (paths.watch_dir)")
			}
			if err := os.MkdirAll(watchDir, 0o755); err != nil {
				return fmt.Errorf("create watch directory %s: %w", watchDir, err)
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return fmt.Errorf("create file watcher: %w", err)
			}
			defer watcher.Close()
			if err := watcher.Add(watchDir); err != nil {
				return fmt.Errorf("watch %s: %w", watchDir, err)
			}

			signalCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for .lrc files (Ctrl-C to stop)\n", watchDir)
			return ctx.withLibrary(func(lib *library.Library) error {
				// Files already waiting in the inbox are picked up first.
				existing, err := os.ReadDir(watchDir)
				if err != nil {
					return fmt.Errorf("scan %s: %w", watchDir, err)
				}
				for _, entry := range existing {
					if !entry.IsDir() {
						importDropped(cmd, lib, logger, filepath.Join(watchDir, entry.Name()))
					}
				}

				return watchLoop(signalCtx, cmd, lib, watcher)
			})
		},
	}
	return cmd
}

func watchLoop(ctx context.Context, cmd *cobra.Command, lib *library.Library, watcher *fsnotify.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(cmd.OutOrStdout(), "Stopping watcher.")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			importDropped(cmd, lib, nil, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		}
	}
}

// importDropped imports a single dropped file, reporting failures without
// stopping the watch loop. Non-LRC files are ignored.
func importDropped(cmd *cobra.Command, lib *library.Library, logger *slog.Logger, path string) {
	if !strings.EqualFold(filepath.Ext(path), ".lrc") {
		return
	}
	key, err := importLRCFile(lib, path, "", "", "")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "import %s: %v\n", path, err)
		if logger != nil {
			logger.Warn("inbox import failed", "path", path, "error", err)
		}
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as %s\n", filepath.Base(path), key)
}
