//go:build linux

package hotplug

import (
	"context"

	"github.com/pilebones/go-udev/netlink"
)

// Start connects to the kernel uevent socket and listens for drm connector events.
func (w *Watcher) Start(ctx context.Context) error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	conn := new(netlink.UEventConn)
	if err := conn.Connect(netlink.UdevEvent); err != nil {
		return err
	}

	queue, errs := newEventChannels()
	monitorQuit := conn.Monitor(queue, errs, buildMatcher())

	w.quit = make(chan struct{})
	w.stop = func() { _ = conn.Close() }
	w.running = true

	quit := w.quit
	go w.loop(ctx, quit, monitorQuit, queue, errs)

	w.logger.Debug("hotplug watcher started")
	return nil
}

// loop forwards matched uevents until the context ends or the watcher stops.
func (w *Watcher) loop(ctx context.Context, quit <-chan struct{}, monitorQuit chan struct{}, queue <-chan netlink.UEvent, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			close(monitorQuit)
			return
		case <-quit:
			close(monitorQuit)
			return
		case uevent := <-queue:
			w.handleEvent(uevent)
		case err := <-errs:
			w.logger.Warn("uevent monitor error", "err", err)
		}
	}
}

// newEventChannels returns the channels handed to the uevent monitor. One slot each
// lets the monitor goroutine deliver a final event or read error after loop returns,
// so it reaches its quit check instead of blocking.
func newEventChannels() (chan netlink.UEvent, chan error) {
	return make(chan netlink.UEvent, 1), make(chan error, 1)
}

// buildMatcher matches drm device events: SUBSYSTEM=drm, ACTION=change|add|remove.
func buildMatcher() netlink.Matcher {
	action := "change|add|remove"
	rules := &netlink.RuleDefinitions{}
	rules.AddRule(netlink.RuleDefinition{
		Action: &action,
		Env: map[string]string{
			"SUBSYSTEM": "drm",
		},
	})
	return rules
}

// handleEvent turns a matched uevent into a change signal.
func (w *Watcher) handleEvent(uevent netlink.UEvent) {
	w.logger.Debug("display event",
		"action", string(uevent.Action),
		"kobj", uevent.KObj,
		"hotplug", uevent.Env["HOTPLUG"],
	)
	w.notify()
}
