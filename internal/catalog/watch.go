package catalog

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/rootcause/internal/logger"
)

// Watch reloads the catalog at path whenever the file is written or
// recreated, handing each successfully parsed catalog to apply. An invalid
// file is logged and skipped; the caller keeps whatever it applied last.
// Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, log *logger.Logger, apply func(*Catalog)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating catalog watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving catalog path: %w", err)
	}
	// Editors often replace the file instead of writing it, so the
	// directory is watched rather than the file.
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching catalog directory: %w", err)
	}
	log.Info("watching catalog", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			c, err := LoadFile(abs)
			if err != nil {
				log.Warn("catalog reload failed, keeping previous", "path", abs, "error", err)
				continue
			}
			apply(c)
			log.Info("catalog reloaded", "path", abs)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("catalog watcher error", "error", err)
		}
	}
}
