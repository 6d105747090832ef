package ffmpeg

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/frudas24/recit/internal/monitor"
	"github.com/frudas24/recit/internal/region"
)

// TestBuildRecordArgs_FullScreenWebM verifies the full-screen VP9 preset.
func TestBuildRecordArgs_FullScreenWebM(t *testing.T) {
	p := Plan{
		Display: ":0.0",
		Monitor: monitor.Monitor{Name: "DP-1", Width: 1920, Height: 1080, Primary: true},
		FPS:     30,
		Height:  720,
		Format:  monitor.FormatWebM,
		Output:  "/tmp/out.webm",
	}
	got := BuildRecordArgs(p)
	want := []string{
		"-y",
		"-f", "x11grab",
		"-framerate", "30",
		"-i", ":0.0",
		"-vf", "scale=1280:720",
		"-c:v", "libvpx-vp9",
		"-crf", "32",
		"-b:v", "0",
		"/tmp/out.webm",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestBuildRecordArgs_MonitorMP4 verifies a single monitor capture with offset and x264 flags.
func TestBuildRecordArgs_MonitorMP4(t *testing.T) {
	m := monitor.Monitor{Name: "HDMI-1", Width: 2560, Height: 1080, X: 1920}
	p := Plan{
		Display: ":1",
		Monitor: m,
		Source:  region.Rect{X: m.X, Y: m.Y, W: m.Width, H: m.Height},
		FPS:     60,
		Height:  720,
		Format:  monitor.FormatMP4,
		Output:  "out.mp4",
	}
	got := BuildRecordArgs(p)
	want := []string{
		"-y",
		"-f", "x11grab",
		"-framerate", "60",
		"-video_size", "2560x1080",
		"-i", ":1+1920,0",
		"-vf", "scale=1706:720",
		"-c:v", "libx264",
		"-preset", "veryfast",
		"-crf", "23",
		"-pix_fmt", "yuv420p",
		"out.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// TestBuildRecordArgs_AreaNative verifies selected areas are recorded unscaled.
func TestBuildRecordArgs_AreaNative(t *testing.T) {
	p := Plan{
		Monitor: monitor.Default(),
		Source:  region.Rect{X: 100, Y: 50, W: 640, H: 480},
		Area:    true,
		Height:  720,
		Format:  monitor.FormatWebM,
		Output:  "area.webm",
	}
	got := BuildRecordArgs(p)
	want := []string{
		"-y",
		"-f", "x11grab",
		"-framerate", "30",
		"-video_size", "640x480",
		"-i", ":0.0+100,50",
		"-c:v", "libvpx-vp9",
		"-crf", "32",
		"-b:v", "0",
		"area.webm",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if w, h := OutputSize(p); w != 640 || h != 480 {
		t.Fatalf("expected 640x480 output, got %dx%d", w, h)
	}
}

// TestOutputName verifies the timestamped naming scheme.
func TestOutputName(t *testing.T) {
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.Local)
	if got := OutputName(now, monitor.FormatWebM); got != "recording_20260304_050607.webm" {
		t.Fatalf("unexpected name %q", got)
	}
	want := filepath.Join("/videos", "recording_20260304_050607.mp4")
	if got := OutputPath("/videos", now, monitor.FormatMP4); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

// TestCommandLine verifies arguments are single-quoted for a POSIX shell.
func TestCommandLine(t *testing.T) {
	got := CommandLine("ffmpeg", []string{"-i", ":0.0+1920,0", "-vf", "scale=1280:720", "/home/me/My Videos/a.webm"})
	want := `ffmpeg -i :0.0+1920,0 -vf scale=1280:720 '/home/me/My Videos/a.webm'`
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

// TestCommandLine_ShellMetacharacters verifies $ and quotes survive a shell paste literally.
func TestCommandLine_ShellMetacharacters(t *testing.T) {
	cases := map[string]string{
		"$HOME/out.webm": `'$HOME/out.webm'`,
		"it's.webm":      `'it'\''s.webm'`,
		"":               `''`,
		"a\"b`c`.mp4":    "'a\"b`c`.mp4'",
	}
	for arg, want := range cases {
		if got := CommandLine("ffmpeg", []string{arg}); got != "ffmpeg "+want {
			t.Fatalf("%q: expected ffmpeg %s, got %s", arg, want, got)
		}
	}
}
