// Package ffmpeg builds ffmpeg command lines for screen recording.
package ffmpeg

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/frudas24/recit/internal/monitor"
	"github.com/frudas24/recit/internal/region"
)

const (
	defaultFPS     = 30
	defaultDisplay = ":0.0"
	outputPrefix   = "recording_"
	outputStamp    = "20060102_150405"
)

// Plan describes a single capture.
type Plan struct {
	FFmpegPath string
	Display    string
	// Monitor supplies the aspect ratio for scaled full-screen output.
	Monitor monitor.Monitor
	// Source is the captured rectangle on the virtual canvas; empty grabs the whole screen.
	Source region.Rect
	// Area marks a user-selected region, which is recorded at native size.
	Area   bool
	FPS    int
	Height int
	Format monitor.Format
	Output string
}

// BuildRecordArgs returns the ffmpeg arguments for an x11grab recording.
func BuildRecordArgs(p Plan) []string {
	args := append([]string{"-y"}, buildInputArgs(p)...)
	return append(args, buildOutputArgs(p)...)
}

// OutputSize returns the encoded frame size for the plan.
func OutputSize(p Plan) (int, int) {
	if p.Area || p.Height <= 0 {
		if !p.Source.Empty() {
			return p.Source.W, p.Source.H
		}
		return p.Monitor.Width, p.Monitor.Height
	}
	return monitor.ScaledDimensions(p.Monitor, p.Height)
}

// OutputName returns the timestamped file name for a recording started at now.
func OutputName(now time.Time, format monitor.Format) string {
	return outputPrefix + now.Format(outputStamp) + "." + format.Ext()
}

// OutputPath joins the output directory and a timestamped file name.
func OutputPath(dir string, now time.Time, format monitor.Format) string {
	return filepath.Join(dir, OutputName(now, format))
}

// shellSafe matches arguments a POSIX shell passes through unchanged.
var shellSafe = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)

// CommandLine renders a command that can be pasted into a POSIX shell.
func CommandLine(path string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, a := range append([]string{path}, args...) {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

// shellQuote single-quotes s unless it is shell-safe. Embedded quotes become '\''.
func shellQuote(s string) string {
	if shellSafe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// buildInputArgs builds the capture-side arguments.
func buildInputArgs(p Plan) []string {
	fps := p.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	display := p.Display
	if display == "" {
		display = defaultDisplay
	}

	args := []string{
		"-f", "x11grab",
		"-framerate", strconv.Itoa(fps),
	}
	if p.Source.Empty() {
		return append(args, "-i", display)
	}
	return append(args,
		"-video_size", p.Source.Size(),
		"-i", fmt.Sprintf("%s+%d,%d", display, p.Source.X, p.Source.Y),
	)
}

// buildOutputArgs builds the scale filter and encoder arguments.
func buildOutputArgs(p Plan) []string {
	var args []string
	if !p.Area && p.Height > 0 {
		w, h := OutputSize(p)
		args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", w, h))
	}
	if p.Format == monitor.FormatWebM {
		args = append(args,
			"-c:v", "libvpx-vp9",
			"-crf", "32",
			"-b:v", "0",
		)
	} else {
		args = append(args,
			"-c:v", "libx264",
			"-preset", "veryfast",
			"-crf", "23",
			"-pix_fmt", "yuv420p",
		)
	}
	return append(args, p.Output)
}
