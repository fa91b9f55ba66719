package content

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce coalesces bursts of editor writes into one reload
const WatchDebounce = 150 * time.Millisecond

// Watcher reloads a dataset file when it changes on disk
// The parent directory is watched so editors that replace the file are still seen
type Watcher struct {
	Datasets <-chan *Dataset // Successfully reloaded datasets

	manager  *Manager
	file     string
	datasets chan *Dataset
	done     chan struct{}
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a watcher for the manager's dataset file
func NewWatcher(m *Manager) (*Watcher, error) {
	if m.Path() == "" {
		return nil, fmt.Errorf("watch dataset: embedded default has no file")
	}
	abs, err := filepath.Abs(m.Path())
	if err != nil {
		return nil, fmt.Errorf("watch dataset: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch dataset: %w", err)
	}

	ch := make(chan *Dataset, 4)
	return &Watcher{
		Datasets: ch,
		manager:  m,
		file:     abs,
		datasets: ch,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.file)); err != nil {
		return fmt.Errorf("watch dataset: %w", err)
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Datasets channel
func (w *Watcher) Stop() {
	w.watcher.Close()
	<-w.done
	close(w.datasets)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(WatchDebounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < WatchDebounce {
				continue
			}
			pending = time.Time{}
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Dataset watch error: %v", err)
		}
	}
}

func (w *Watcher) reload() {
	ds, err := w.manager.Reload()
	if err != nil {
		return
	}
	select {
	case w.datasets <- ds:
	default:
		log.Printf("Dataset reload dropped, consumer is behind")
	}
}
