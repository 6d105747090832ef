//go:build !linux

package hotplug

import "context"

// Start reports ErrUnsupported; callers fall back to polling.
func (w *Watcher) Start(ctx context.Context) error {
	return ErrUnsupported
}
