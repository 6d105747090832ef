package monitor

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/frudas24/recit/internal/logging"
)

// Detection sources, in the order they are tried.
const (
	SourceXrandr   = "xrandr"
	SourceXdpyinfo = "xdpyinfo"
	SourceNative   = "native"
	SourceDefault  = "default"
)

const defaultProbeTimeout = 3 * time.Second

// Options configures the external query commands used for detection.
type Options struct {
	XrandrPath   string
	XdpyinfoPath string
	Timeout      time.Duration
	// Native enables the platform display API tier before the hard-coded default.
	Native bool
}

// Attempt records the outcome of one detection tier.
type Attempt struct {
	Source string
	Count  int
	Err    error
}

// Detection is the full result of a probe, including the tiers that were skipped.
type Detection struct {
	Monitors []Monitor
	Source   string
	Attempts []Attempt
}

// Detector queries the display layout through a chain of fallbacks.
type Detector struct {
	opts   Options
	logger *log.Logger
	native func() ([]Monitor, error)
}

// tier is one detection source.
type tier struct {
	name string
	run  func(ctx context.Context) ([]Monitor, error)
}

// NewDetector returns a detector with defaults filled in for empty options.
func NewDetector(opts Options, logger *log.Logger) *Detector {
	if opts.XrandrPath == "" {
		opts.XrandrPath = "xrandr"
	}
	if opts.XdpyinfoPath == "" {
		opts.XdpyinfoPath = "xdpyinfo"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultProbeTimeout
	}
	return &Detector{
		opts:   opts,
		logger: logging.Component(logger, "detect"),
		native: nativeMonitors,
	}
}

// Detect returns the detected monitors. It never fails and never returns an empty list.
func (d *Detector) Detect(ctx context.Context) []Monitor {
	return d.Probe(ctx).Monitors
}

// Probe runs the detection tiers in order and keeps the first one that yields monitors.
func (d *Detector) Probe(ctx context.Context) Detection {
	var det Detection
	for _, t := range d.tiers() {
		start := time.Now()
		list, err := t.run(ctx)
		det.Attempts = append(det.Attempts, Attempt{Source: t.name, Count: len(list), Err: err})
		if err != nil {
			d.logger.Debug("source unavailable", "source", t.name, "err", err, "took", time.Since(start))
			continue
		}
		d.logger.Debug("monitors detected", "source", t.name, "count", len(list), "took", time.Since(start))
		det.Monitors = list
		det.Source = t.name
		return det
	}

	d.logger.Warn("no display source answered; using default geometry")
	det.Monitors = []Monitor{Default()}
	det.Source = SourceDefault
	det.Attempts = append(det.Attempts, Attempt{Source: SourceDefault, Count: 1})
	return det
}

// tiers returns the enabled detection sources.
func (d *Detector) tiers() []tier {
	tiers := []tier{
		{name: SourceXrandr, run: d.queryXrandr},
		{name: SourceXdpyinfo, run: d.queryXdpyinfo},
	}
	if d.opts.Native && d.native != nil {
		tiers = append(tiers, tier{name: SourceNative, run: d.queryNative})
	}
	return tiers
}

// queryXrandr lists connected outputs with their offsets.
func (d *Detector) queryXrandr(ctx context.Context) ([]Monitor, error) {
	out, err := runTool(ctx, d.opts.XrandrPath, []string{"--query"}, d.opts.Timeout)
	if err != nil {
		return nil, err
	}
	list := ParseXrandr(out)
	if len(list) == 0 {
		return nil, &ToolError{Tool: d.opts.XrandrPath, Err: ErrNoGeometry}
	}
	return list, nil
}

// queryXdpyinfo reads the overall screen size as a single monitor.
func (d *Detector) queryXdpyinfo(ctx context.Context) ([]Monitor, error) {
	out, err := runTool(ctx, d.opts.XdpyinfoPath, nil, d.opts.Timeout)
	if err != nil {
		return nil, err
	}
	m, ok := ParseXdpyinfo(out)
	if !ok {
		return nil, &ToolError{Tool: d.opts.XdpyinfoPath, Err: ErrNoGeometry}
	}
	return []Monitor{m}, nil
}

// queryNative asks the platform display API.
func (d *Detector) queryNative(ctx context.Context) ([]Monitor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	list, err := d.native()
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNativeUnavailable
	}
	return list, nil
}
