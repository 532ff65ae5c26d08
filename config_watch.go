package lumen

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is how long a file must go unmodified before it is
// reloaded. Editors often write a file several times per save.
const watchDebounce = 100 * time.Millisecond

// ConfigReload is a freshly decoded config file, or the error that kept it
// from decoding.
type ConfigReload struct {
	Path   string
	Config Config
	Err    error
}

// ConfigWatcher watches directories for YAML config changes and delivers a
// decoded Config on Reloads for each one. Reloads is read from the game
// loop; apply a reload by rebuilding the affected engines.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	Reloads chan ConfigReload
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewConfigWatcher starts watching dirs.
func NewConfigWatcher(dirs ...string) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &ConfigWatcher{
		watcher: w,
		Reloads: make(chan ConfigReload, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and closes Reloads and Errors.
func (w *ConfigWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *ConfigWatcher) run() {
	defer func() {
		close(w.Reloads)
		close(w.Errors)
		close(w.done)
	}()
	// A file is reloaded once it has been quiet for watchDebounce, so the
	// reload sees the finished write rather than the truncating create.
	pending := make(map[string]time.Time)
	tick := time.NewTicker(watchDebounce / 2)
	defer tick.Stop()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !isConfigFile(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()
		case now := <-tick.C:
			for path, t := range pending {
				if now.Sub(t) < watchDebounce {
					continue
				}
				delete(pending, path)
				cfg, err := LoadConfigFile(path)
				select {
				case w.Reloads <- ConfigReload{Path: path, Config: cfg, Err: err}:
				case <-w.closeCh:
					return
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isConfigFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
