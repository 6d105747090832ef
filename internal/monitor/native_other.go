//go:build !windows

package monitor

import (
	"fmt"

	"github.com/kbinani/screenshot"
)

// nativeMonitors lists displays through the screenshot library's display bounds.
// The library reports no primary flag, so the first display is treated as primary.
func nativeMonitors() (list []Monitor, err error) {
	defer func() {
		if r := recover(); r != nil {
			list, err = nil, fmt.Errorf("%w: %v", ErrNativeUnavailable, r)
		}
	}()

	n := screenshot.NumActiveDisplays()
	for i := 0; i < n; i++ {
		bounds := screenshot.GetDisplayBounds(i)
		if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
			continue
		}
		list = append(list, Monitor{
			Name:    fmt.Sprintf("display-%d", i),
			Width:   bounds.Dx(),
			Height:  bounds.Dy(),
			X:       bounds.Min.X,
			Y:       bounds.Min.Y,
			Primary: i == 0,
		})
	}
	return list, nil
}
