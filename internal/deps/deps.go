// Package deps reports which external tools the recorder can reach.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external tool the recorder shells out to.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a tool.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Detail      string
}

// Paths overrides the command names of configurable tools.
type Paths struct {
	FFmpeg   string
	Xrandr   string
	Xdpyinfo string
}

// Requirements returns the recorder's tool list with configured paths applied.
func Requirements(p Paths) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: orDefault(p.FFmpeg, "ffmpeg"), Description: "screen capture and encoding"},
		{Name: "xrandr", Command: orDefault(p.Xrandr, "xrandr"), Description: "per-monitor geometry", Optional: true},
		{Name: "xdpyinfo", Command: orDefault(p.Xdpyinfo, "xdpyinfo"), Description: "screen size fallback", Optional: true},
		{Name: "slop", Command: "slop", Description: "area selection", Optional: true},
		{Name: "scrot", Command: "scrot", Description: "area screenshots", Optional: true},
		{Name: "ImageMagick", Command: "convert", Description: "WebP screenshot conversion", Optional: true},
		{Name: "xdg-open", Command: "xdg-open", Description: "open the output folder", Optional: true},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// MissingRequired returns the names of unavailable non-optional tools.
func MissingRequired(statuses []Status) []string {
	var missing []string
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s.Name)
		}
	}
	return missing
}

// orDefault returns value unless it is blank.
func orDefault(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return value
}
