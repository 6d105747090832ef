package monitor

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format names the container/codec family used for a recording.
type Format string

const (
	// FormatWebM records VP9 video into a WebM container.
	FormatWebM Format = "webm"
	// FormatMP4 records H.264 video into an MP4 container.
	FormatMP4 Format = "mp4"
)

// ParseFormat maps a user-supplied name to a Format. Anything that is not webm is mp4.
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), string(FormatWebM)) {
		return FormatWebM
	}
	return FormatMP4
}

// Ext returns the file extension without a leading dot.
func (f Format) Ext() string {
	if f == FormatWebM {
		return "webm"
	}
	return "mp4"
}

// bitrateRow holds Mbps per height tier: <=480, <=720, >720.
type bitrateRow [3]float64

var (
	webmBitrates = bitrateRow{0.5, 1.0, 2.0}
	mp4Bitrates  = bitrateRow{1.0, 2.5, 5.0}
)

// BitrateMbps returns the rough bitrate used for estimates at the given output height.
func BitrateMbps(format Format, targetHeight int) float64 {
	row := mp4Bitrates
	if format == FormatWebM {
		row = webmBitrates
	}
	switch {
	case targetHeight <= 480:
		return row[0]
	case targetHeight <= 720:
		return row[1]
	default:
		return row[2]
	}
}

// ScaledDimensions returns the output size for targetHeight keeping the monitor aspect ratio.
// Width is truncated, then width and height are each bumped to the next even value.
func ScaledDimensions(m Monitor, targetHeight int) (int, int) {
	width := int(float64(targetHeight) * m.AspectRatio())
	if width%2 != 0 {
		width++
	}
	if targetHeight%2 != 0 {
		targetHeight++
	}
	return width, targetHeight
}

// EstimateFileSize returns a human-readable size estimate for a recording.
// Only format, height tier, and duration affect the result; fps does not.
func EstimateFileSize(m Monitor, targetHeight, fps int, duration time.Duration, format Format) string {
	sizeMB := BitrateMbps(format, targetHeight) * duration.Seconds() / 8
	return FormatSizeMB(sizeMB)
}

// FormatSizeMB renders a size in megabytes as KB, MB, or GB.
func FormatSizeMB(sizeMB float64) string {
	switch {
	case sizeMB < 1:
		return fmt.Sprintf("%.0f KB", sizeMB*1024)
	case sizeMB < 1024:
		return fmt.Sprintf("%.1f MB", sizeMB)
	default:
		return fmt.Sprintf("%.1f GB", sizeMB/1024)
	}
}

// HeightFromLabel parses a resolution label such as "720p" or "1080".
func HeightFromLabel(label string) (int, error) {
	raw := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(label)), "p")
	h, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("resolution %q: %w", label, err)
	}
	if h <= 0 {
		return 0, fmt.Errorf("resolution %q must be positive", label)
	}
	return h, nil
}
