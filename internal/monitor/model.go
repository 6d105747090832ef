// Package monitor describes display geometry, detection, and output estimates.
package monitor

import (
	"fmt"
	"math"
)

const (
	defaultName   = "Default"
	defaultWidth  = 1920
	defaultHeight = 1080
)

// ratioTolerance is the absolute distance allowed between a ratio and a named bucket.
const ratioTolerance = 0.1

// ratioBucket pairs a display label with its reference ratio.
type ratioBucket struct {
	label string
	ratio float64
}

// ratioBuckets are tested in order; the first match wins when bands overlap.
var ratioBuckets = []ratioBucket{
	{label: "16:9", ratio: 16.0 / 9.0},
	{label: "21:9", ratio: 21.0 / 9.0},
	{label: "32:9", ratio: 32.0 / 9.0},
	{label: "4:3", ratio: 4.0 / 3.0},
}

// Monitor describes a display and its bounds within the virtual canvas.
type Monitor struct {
	Name    string `json:"name"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Primary bool   `json:"primary"`
}

// Default returns the monitor used when no detection source reports anything.
func Default() Monitor {
	return Monitor{Name: defaultName, Width: defaultWidth, Height: defaultHeight, Primary: true}
}

// Resolution formats the pixel size as WxH.
func (m Monitor) Resolution() string {
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

// AspectRatio returns width divided by height.
func (m Monitor) AspectRatio() float64 {
	return float64(m.Width) / float64(m.Height)
}

// AspectRatioLabel classifies the aspect ratio into a named bucket or a raw N.NN:1 label.
func (m Monitor) AspectRatioLabel() string {
	ratio := m.AspectRatio()
	for _, b := range ratioBuckets {
		if math.Abs(ratio-b.ratio) < ratioTolerance {
			return b.label
		}
	}
	return fmt.Sprintf("%.2f:1", ratio)
}

// String renders the monitor the way listings show it.
func (m Monitor) String() string {
	primary := ""
	if m.Primary {
		primary = " (Primary)"
	}
	return fmt.Sprintf("%s: %s (%s)%s", m.Name, m.Resolution(), m.AspectRatioLabel(), primary)
}

// PrimaryOf returns the first primary monitor, or the first monitor when none is marked.
func PrimaryOf(list []Monitor) (Monitor, bool) {
	for _, m := range list {
		if m.Primary {
			return m, true
		}
	}
	if len(list) == 0 {
		return Monitor{}, false
	}
	return list[0], true
}

// ByName returns the monitor with the given output name.
func ByName(list []Monitor, name string) (Monitor, bool) {
	for _, m := range list {
		if m.Name == name {
			return m, true
		}
	}
	return Monitor{}, false
}

// BoundingBox returns the smallest canvas holding every monitor at its offset.
// An empty list yields the default 1920x1080 canvas.
func BoundingBox(list []Monitor) (int, int) {
	if len(list) == 0 {
		return defaultWidth, defaultHeight
	}
	maxX, maxY := list[0].X+list[0].Width, list[0].Y+list[0].Height
	for _, m := range list[1:] {
		maxX = max(maxX, m.X+m.Width)
		maxY = max(maxY, m.Y+m.Height)
	}
	return maxX, maxY
}

// Equal reports whether two detection results hold the same monitors in the same order.
func Equal(a, b []Monitor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
