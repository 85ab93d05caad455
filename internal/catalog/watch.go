package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alexanderramin/gradplan/internal/logging"
	"github.com/fsnotify/fsnotify"
)

var ErrNotFileBacked = errors.New("catalog is not backed by a file")

// Watch reloads the catalog whenever its file is written, created or
// renamed into place, until ctx is done. The directory is watched rather
// than the file so editors that replace the file atomically are seen.
// onReload, if set, is called after every successful reload. A failed
// reload is logged and the previous list stays active.
func (c *Catalog) Watch(ctx context.Context, log logging.Logger, onReload func(count int)) error {
	if c.path == "" {
		return ErrNotFileBacked
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	log = log.Named("catalog")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating catalog watcher: %w", err)
	}
	target, err := filepath.Abs(c.path)
	if err != nil {
		watcher.Close()
		return fmt.Errorf("resolving catalog path: %w", err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !relevant(ev, target) {
					continue
				}
				if err := c.Reload(); err != nil {
					log.Warn("catalog reload failed", logging.String("path", c.path), logging.Err(err))
					continue
				}
				n := len(c.Programs())
				log.Info("catalog reloaded", logging.String("path", c.path), logging.Int("programs", n))
				if onReload != nil {
					onReload(n)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("catalog watcher error", logging.Err(err))
			}
		}
	}()
	return nil
}

func relevant(ev fsnotify.Event, target string) bool {
	name, err := filepath.Abs(ev.Name)
	if err != nil || name != target {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
