package bankwatcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/Gauraviiitian/PrepZone-Mock-Test/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch blocks, watching the question workbook for external edits and
// invoking reload after a write settles. The directory is watched rather
// than the file itself so that an atomic rename (or the file appearing for
// the first time) is still observed.
func Watch(bankPath string, reload func()) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Log.Error("Failed to create bank watcher", zap.Error(err))
		return
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(bankPath)
	if err != nil {
		logger.Log.Error("Failed to resolve bank path", zap.Error(err))
		return
	}

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		logger.Log.Error("Failed to watch bank directory", zap.Error(err))
		return
	}

	var mu sync.Mutex
	timer := time.NewTimer(0)
	<-timer.C

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Name != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				// debounce bursts of writes
				mu.Lock()
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(1 * time.Second)
				mu.Unlock()
			}
		case <-timer.C:
			logger.Log.Info("Question bank changed on disk, reloading", zap.String("path", absPath))
			reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Error("Bank watcher error", zap.Error(err))
		}
	}
}
