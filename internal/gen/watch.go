package gen

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type watchState struct {
	watcher *fsnotify.Watcher
	tracked map[string]struct{}
	active  atomic.Bool
}

// StartWatching registers the given rules files with a filesystem watcher
// and invokes onChange with the path of any tracked file that is written
// or recreated. The watcher runs until StopWatching is called.
func (g *Generator) StartWatching(paths []string, onChange func(path string)) error {
	if g.watch.active.Load() {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	// watch the parent directories: editors replace files on save, which
	// would silently drop a watch registered on the file itself
	g.watch.tracked = make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		g.watch.tracked[filepath.Clean(p)] = struct{}{}
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	g.watch.watcher = watcher
	g.watch.active.Store(true)
	go g.watchLoop(onChange)
	return nil
}

// StopWatching stops the watcher. Calling it when not watching is a no-op.
func (g *Generator) StopWatching() error {
	if !g.watch.active.Swap(false) {
		return nil
	}
	return g.watch.watcher.Close()
}

func (g *Generator) watchLoop(onChange func(string)) {
	for g.watch.active.Load() {
		select {
		case event, ok := <-g.watch.watcher.Events:
			if !ok {
				return
			}
			g.handleFileEvent(event, onChange)
		case err, ok := <-g.watch.watcher.Errors:
			if !ok {
				return
			}
			g.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (g *Generator) handleFileEvent(event fsnotify.Event, onChange func(string)) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if _, ok := g.watch.tracked[filepath.Clean(event.Name)]; !ok {
		return
	}
	// editors fire bursts of events for a single save; let them settle
	time.Sleep(100 * time.Millisecond)
	g.logger.Info("rules file changed", zap.String("path", event.Name))
	onChange(event.Name)
}
