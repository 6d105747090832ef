package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/frudas24/recit/internal/hotplug"
	"github.com/frudas24/recit/internal/monitor"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow monitor changes until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			logger := ctx.logger(cmd)
			detector := ctx.detector(cmd)

			watcher := hotplug.New(logger)
			if err := watcher.Start(runCtx); err != nil {
				if errors.Is(err, hotplug.ErrUnsupported) {
					logger.Debug("hotplug events unavailable; polling only")
				} else {
					logger.Warn("hotplug watcher failed; polling only", "err", err)
				}
			}
			defer watcher.Stop()

			ticker := time.NewTicker(ctx.config.WatchInterval())
			defer ticker.Stop()

			out := cmd.OutOrStdout()
			watchMonitors(runCtx, detector.Detect, ticker.C, watcher.Events(), logger, func(list []monitor.Monitor) {
				w, h := monitor.BoundingBox(list)
				fmt.Fprintf(out, "%s  %d monitor(s), canvas %dx%d\n", time.Now().Format(time.TimeOnly), len(list), w, h)
				for _, m := range list {
					fmt.Fprintf(out, "  %s\n", m)
				}
			})
			return nil
		},
	}
}

// watchMonitors re-detects on every tick or hotplug signal and calls onChange with
// the initial layout and each time it differs from the previous one.
func watchMonitors(
	ctx context.Context,
	detect func(context.Context) []monitor.Monitor,
	ticks <-chan time.Time,
	events <-chan struct{},
	logger *log.Logger,
	onChange func([]monitor.Monitor),
) {
	current := detect(ctx)
	onChange(current)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
		case <-events:
			logger.Debug("display event received")
		}
		if ctx.Err() != nil {
			return
		}
		next := detect(ctx)
		if monitor.Equal(current, next) {
			continue
		}
		logger.Info("monitor layout changed", "before", len(current), "after", len(next))
		current = next
		onChange(current)
	}
}
