package driver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"pyrs/translator-go/pkg/logger"
)

// Watch translates path once and again every time it is written, created or
// renamed into place, passing each Output to onChange. The parent directory
// is watched so editors that replace the file are still seen. Watch returns
// when ctx ends.
func (p *Pipeline) Watch(ctx context.Context, path string, onChange func(*Output)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("driver: resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("driver: watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("driver: watch %s: %w", filepath.Dir(abs), err)
	}

	onChange(p.TranslateFile(ctx, path))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("Source changed", "file", path, "op", ev.Op.String())
			onChange(p.TranslateFile(ctx, path))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "file", path, "error", err)
		}
	}
}
