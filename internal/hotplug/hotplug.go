// Package hotplug signals display connector changes so monitors can be re-detected.
package hotplug

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/frudas24/recit/internal/logging"
)

// ErrUnsupported reports that display events cannot be observed on this platform.
var ErrUnsupported = errors.New("display hotplug events unsupported on this platform")

// Watcher delivers a coalesced signal on Events whenever a display connector changes.
type Watcher struct {
	logger *log.Logger
	events chan struct{}

	mu      sync.Mutex
	quit    chan struct{}
	running bool
	stop    func()
}

// New returns an unstarted watcher.
func New(logger *log.Logger) *Watcher {
	return &Watcher{
		logger: logging.Component(logger, "hotplug"),
		events: make(chan struct{}, 1),
	}
}

// Events returns the change notification channel. Bursts collapse into one pending signal.
func (w *Watcher) Events() <-chan struct{} {
	if w == nil {
		return nil
	}
	return w.events
}

// Running reports whether the watcher is listening.
func (w *Watcher) Running() bool {
	if w == nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Stop shuts the watcher down. It is safe to call more than once.
func (w *Watcher) Stop() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	close(w.quit)
	w.quit = nil
	if w.stop != nil {
		w.stop()
		w.stop = nil
	}
	w.running = false
	w.logger.Debug("hotplug watcher stopped")
}

// notify queues a change signal unless one is already pending.
func (w *Watcher) notify() {
	select {
	case w.events <- struct{}{}:
	default:
	}
}
