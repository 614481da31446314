// FILE: lixenwraith/typedconfig/watch.go
package typedconfig

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch builds a T from b, hands it to fn, and rebuilds after every change of
// the builder's configuration file until ctx is cancelled. Changes are
// coalesced over the builder's debounce period. Build errors are passed to fn
// together with the zero T; watching continues.
func Watch[T any](ctx context.Context, b *Builder, fn func(T, error)) error {
	if b.file == "" {
		return fmt.Errorf("no configuration file to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, editors and atomic writers replace the file
	dir := filepath.Dir(b.file)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch '%s': %w", dir, err)
	}
	name := filepath.Base(b.file)

	rebuild := func() {
		var out T
		err := b.Build(&out)
		fn(out, err)
	}
	rebuild()

	reload := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			b.logger.Debug("configuration file changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.AfterFunc(b.debounce, func() {
					select {
					case reload <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(b.debounce)
			}

		case <-reload:
			rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.logger.Warn("file watcher error", "error", err)
		}
	}
}
