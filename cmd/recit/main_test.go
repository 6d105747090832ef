package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/frudas24/recit/internal/config"
	"github.com/frudas24/recit/internal/ffmpeg"
	"github.com/frudas24/recit/internal/logging"
	"github.com/frudas24/recit/internal/monitor"
	"github.com/frudas24/recit/internal/region"
	"github.com/frudas24/recit/internal/testutil"
)

var dualHead = []monitor.Monitor{
	{Name: "DP-1", Width: 1920, Height: 1080, Primary: true},
	{Name: "HDMI-1", Width: 2560, Height: 1080, X: 1920},
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

// TestSelectMonitor verifies lookup by name, the primary default, and unknown names.
func TestSelectMonitor(t *testing.T) {
	m, err := selectMonitor(dualHead, "HDMI-1")
	if err != nil || m.Name != "HDMI-1" {
		t.Fatalf("expected HDMI-1, got %v (%v)", m, err)
	}
	m, err = selectMonitor(dualHead, "")
	if err != nil || m.Name != "DP-1" {
		t.Fatalf("expected primary DP-1, got %v (%v)", m, err)
	}
	if _, err := selectMonitor(dualHead, "VGA-1"); err == nil || !strings.Contains(err.Error(), "DP-1, HDMI-1") {
		t.Fatalf("expected not found error listing monitors, got %v", err)
	}
	m, err = selectMonitor(nil, "")
	if err != nil || m != monitor.Default() {
		t.Fatalf("expected default monitor, got %v (%v)", m, err)
	}
}

// TestBuildPlan_FullScreen verifies the whole screen keeps the canvas aspect ratio when scaled.
func TestBuildPlan_FullScreen(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = "/videos"
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)

	p, err := buildPlan(cfg, dualHead, planOptions{}, now)
	if err != nil {
		t.Fatalf("buildPlan: %v", err)
	}
	if !p.Source.Empty() || p.Area {
		t.Fatalf("unexpected plan %+v", p)
	}
	if p.Monitor.Width != 4480 || p.Monitor.Height != 1080 {
		t.Fatalf("expected 4480x1080 canvas, got %s", p.Monitor.Resolution())
	}
	// 720 * 4480/1080 = 2986.67, truncated to an even 2986.
	if w, h := ffmpeg.OutputSize(p); w != 2986 || h != 720 {
		t.Fatalf("expected 2986x720 output, got %dx%d", w, h)
	}
	args := strings.Join(ffmpeg.BuildRecordArgs(p), " ")
	if !strings.Contains(args, "-i :0.0 -vf scale=2986:720") {
		t.Fatalf("expected canvas-ratio scale filter, got %s", args)
	}
	if p.Output != filepath.Join("/videos", "recording_20260102_030405.webm") {
		t.Fatalf("unexpected output %s", p.Output)
	}
}

// TestBuildPlan_Monitor verifies a named monitor becomes the capture rectangle.
func TestBuildPlan_Monitor(t *testing.T) {
	p, err := buildPlan(config.Default(), dualHead, planOptions{Monitor: "HDMI-1"}, time.Now())
	if err != nil {
		t.Fatalf("buildPlan: %v", err)
	}
	want := region.Rect{X: 1920, Y: 0, W: 2560, H: 1080}
	if p.Source != want || p.Area {
		t.Fatalf("expected source %+v, got %+v", want, p)
	}
}

// TestBuildPlan_ConfiguredMonitor verifies the config monitor applies when no flag is given.
func TestBuildPlan_ConfiguredMonitor(t *testing.T) {
	cfg := config.Default()
	cfg.Monitor = "HDMI-1"
	p, err := buildPlan(cfg, dualHead, planOptions{}, time.Now())
	if err != nil {
		t.Fatalf("buildPlan: %v", err)
	}
	if p.Monitor.Name != "HDMI-1" || p.Source.X != 1920 {
		t.Fatalf("unexpected plan %+v", p)
	}
}

// TestBuildPlan_Region verifies regions are clamped to the virtual canvas.
func TestBuildPlan_Region(t *testing.T) {
	p, err := buildPlan(config.Default(), dualHead, planOptions{Region: "4000,500,1000,1000"}, time.Now())
	if err != nil {
		t.Fatalf("buildPlan: %v", err)
	}
	want := region.Rect{X: 3480, Y: 80, W: 1000, H: 1000}
	if p.Source != want || !p.Area {
		t.Fatalf("expected clamped area %+v, got %+v", want, p.Source)
	}
	if _, err := buildPlan(config.Default(), dualHead, planOptions{Region: "1,2,3"}, time.Now()); err == nil {
		t.Fatalf("expected parse error")
	}
}

// TestBuildEstimateRows verifies the default ladder for a 16:9 monitor.
func TestBuildEstimateRows(t *testing.T) {
	rows := buildEstimateRows(dualHead[0], ladderHeights, 30, time.Minute, monitor.FormatWebM)
	want := []estimateRow{
		{Height: 480, Width: 854, Bitrate: 0.5, Size: "3.8 MB"},
		{Height: 720, Width: 1280, Bitrate: 1.0, Size: "7.5 MB"},
		{Height: 1080, Width: 1920, Bitrate: 2.0, Size: "15.0 MB"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d: expected %+v, got %+v", i, want[i], rows[i])
		}
	}
}

// TestBuildMonitorsReport verifies primary, canvas, and attempt details.
func TestBuildMonitorsReport(t *testing.T) {
	det := monitor.Detection{
		Monitors: dualHead,
		Source:   monitor.SourceXrandr,
		Attempts: []monitor.Attempt{{Source: monitor.SourceXrandr, Count: 2}},
	}
	report := buildMonitorsReport(det, true)
	if report.Primary.Name != "DP-1" || report.Canvas.Width != 4480 || report.Canvas.Height != 1080 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(report.Attempts) != 1 || report.Attempts[0].Error != "" {
		t.Fatalf("unexpected attempts %+v", report.Attempts)
	}
	if quiet := buildMonitorsReport(det, false); quiet.Attempts != nil {
		t.Fatalf("expected no attempts without verbose, got %+v", quiet.Attempts)
	}
}

// TestRenderTable_Plain verifies non-terminal writers get ASCII borders.
func TestRenderTable_Plain(t *testing.T) {
	var buf bytes.Buffer
	out := renderTable(&buf, []string{"Name", "Primary"}, [][]string{{"DP-1", "yes"}, {"HDMI-1"}}, nil)
	if strings.Contains(out, "╭") {
		t.Fatalf("expected plain style, got:\n%s", out)
	}
	for _, want := range []string{"NAME", "DP-1", "HDMI-1", "yes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
	if renderTable(&buf, nil, nil, nil) != "" {
		t.Fatalf("expected empty table without headers")
	}
}

// TestIsTerminal verifies buffers and pipes are not treated as consoles.
func TestIsTerminal(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Fatalf("expected buffer to be non-terminal")
	}
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()
	if isTerminal(w) {
		t.Fatalf("expected pipe to be non-terminal")
	}
}

// TestRenderTable_RightAlign verifies right-aligned columns pad on the left.
func TestRenderTable_RightAlign(t *testing.T) {
	out := renderTable(&bytes.Buffer{}, []string{"Name", "Count"}, [][]string{{"a", "1"}, {"b", "100"}}, []columnAlignment{alignLeft, alignRight})
	if !strings.Contains(out, "|     1 |") {
		t.Fatalf("expected right-aligned count, got:\n%s", out)
	}
}

// TestWatchMonitors verifies changes are reported once and duplicates are ignored.
func TestWatchMonitors(t *testing.T) {
	layouts := [][]monitor.Monitor{dualHead[:1], dualHead[:1], dualHead}
	calls := 0
	detect := func(context.Context) []monitor.Monitor {
		list := layouts[min(calls, len(layouts)-1)]
		calls++
		return list
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ticks := make(chan time.Time)
	events := make(chan struct{})
	changes := make(chan int, 4)
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchMonitors(ctx, detect, ticks, events, logging.New(io.Discard, "info"), func(list []monitor.Monitor) {
			changes <- len(list)
		})
	}()

	if got := <-changes; got != 1 {
		t.Fatalf("expected initial layout of 1 monitor, got %d", got)
	}
	ticks <- time.Now()
	events <- struct{}{}
	select {
	case got := <-changes:
		if got != 2 {
			t.Fatalf("expected changed layout of 2 monitors, got %d", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("expected a change after the hotplug signal")
	}
	cancel()
	<-done

	if len(changes) != 0 {
		t.Fatalf("expected no further changes, got %d", len(changes))
	}
}

// TestMonitorsCommand_JSON runs the command against a stub xrandr.
func TestMonitorsCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	xrandr := testutil.WriteTool(t, dir, "xrandr", testutil.PrintOutput(`Screen 0: minimum 8 x 8, current 3840 x 1080, maximum 32767 x 32767
DP-1 connected primary 1920x1080+0+0 (normal left inverted right x axis y axis) 527mm x 296mm
HDMI-1 connected 1920x1080+1920+0 (normal left inverted right x axis y axis) 527mm x 296mm
`))
	cfgPath := filepath.Join(dir, "config.toml")
	body := "xrandr_path = \"" + xrandr + "\"\nnative_probe = false\nlog_level = \"error\"\n"
	if err := os.WriteFile(cfgPath, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCLI(t, "--config", cfgPath, "monitors", "--json")
	if err != nil {
		t.Fatalf("monitors: %v", err)
	}
	var report monitorsJSON
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if report.Source != monitor.SourceXrandr || len(report.Monitors) != 2 || report.Canvas.Width != 3840 {
		t.Fatalf("unexpected report %+v", report)
	}
}

// TestRootCommand_BadLogLevel verifies an invalid --log-level is rejected.
func TestRootCommand_BadLogLevel(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	if _, err := runCLI(t, "--config", cfgPath, "--log-level", "loud", "monitors"); err == nil {
		t.Fatalf("expected log level error")
	}
}
