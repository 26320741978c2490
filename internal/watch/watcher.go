package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rail44/adminui/internal/log"
)

// DebounceDelay collapses bursts of writes from editors into one change
const DebounceDelay = 100 * time.Millisecond

// FileWatcher calls onChange after a file settles following a write
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	onChange func()
	delay    time.Duration
}

func NewFileWatcher(filePath string, onChange func()) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory rather than the file so that editors which
	// replace the file on save keep triggering events.
	dir := filepath.Dir(filePath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &FileWatcher{
		watcher:  watcher,
		filePath: filepath.Clean(filePath),
		onChange: onChange,
		delay:    DebounceDelay,
	}, nil
}

// Start blocks until ctx is done or the watcher is closed
func (fw *FileWatcher) Start(ctx context.Context) {
	var (
		mu            sync.Mutex
		debounceTimer *time.Timer
	)
	defer func() {
		mu.Lock()
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.filePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			mu.Lock()
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(fw.delay, fw.onChange)
			mu.Unlock()
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("watcher error", slog.String("file", fw.filePath), slog.String("error", err.Error()))
		}
	}
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
