package scanner

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch registers a watch on dir and every subdirectory, and calls
// onChange whenever the tree settles after a burst of filesystem
// events — library ingestion routinely touches many files in a row
// (an album copy, a tag-editor batch save), and rebuilding the index
// once per burst beats rebuilding on every individual write.
//
// Watch blocks until stop is closed or the watcher's channels close.
// Errors the watcher reports while running are logged and do not end
// the watch; only a failure to set the watcher up is returned.
func Watch(dir string, debounce time.Duration, stop <-chan struct{}, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr == nil && d.IsDir() {
			_ = watcher.Add(path)
		}
		return nil
	}); err != nil {
		return err
	}
	slog.Info("scanner: watching", "dir", dir)

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-stop:
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if fi, statErr := os.Stat(ev.Name); statErr == nil && fi.IsDir() {
				_ = watcher.Add(ev.Name)
			}
			if timer == nil {
				timer = time.AfterFunc(debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("scanner: watcher error", "err", err)

		case <-fire:
			onChange()
		}
	}
}
