//go:build windows

package monitor

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

// nativeMonitors lists displays through EnumDisplayMonitors.
func nativeMonitors() ([]Monitor, error) {
	state := &enumState{}
	callback := syscall.NewCallback(state.enumProc)

	if ok := win.EnumDisplayMonitors(0, nil, callback, 0); !ok {
		return nil, fmt.Errorf("%w: EnumDisplayMonitors: %v", ErrNativeUnavailable, syscall.GetLastError())
	}
	return state.list, nil
}

type enumState struct {
	list  []Monitor
	index int
}

func (s *enumState) enumProc(hMonitor win.HMONITOR, hdc win.HDC, rect *win.RECT, lparam uintptr) uintptr {
	var info win.MONITORINFO
	info.CbSize = uint32(unsafe.Sizeof(info))
	if !win.GetMonitorInfo(hMonitor, &info) {
		return 1
	}

	bounds := info.RcMonitor
	s.index++
	m := Monitor{
		Name:    fmt.Sprintf("DISPLAY%d", s.index),
		X:       int(bounds.Left),
		Y:       int(bounds.Top),
		Width:   int(bounds.Right - bounds.Left),
		Height:  int(bounds.Bottom - bounds.Top),
		Primary: info.DwFlags&win.MONITORINFOF_PRIMARY != 0,
	}
	if m.Width > 0 && m.Height > 0 {
		s.list = append(s.list, m)
	}
	return 1
}
