package monitor

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"
)

// geometryPattern matches WxH+X+Y tokens such as 1920x1080+0+0.
var geometryPattern = regexp.MustCompile(`(\d+)x(\d+)\+(\d+)\+(\d+)`)

// ParseXrandr extracts connected outputs from `xrandr --query` output.
// Connected lines without a geometry token (for example outputs that are
// connected but disabled) are skipped.
func ParseXrandr(output string) []Monitor {
	var list []Monitor
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		if m, ok := parseXrandrLine(scanner.Text()); ok {
			list = append(list, m)
		}
	}
	return list
}

// parseXrandrLine parses a single output line.
func parseXrandrLine(line string) (Monitor, bool) {
	if !strings.Contains(line, " connected") {
		return Monitor{}, false
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Monitor{}, false
	}
	match := geometryPattern.FindStringSubmatch(line)
	if match == nil {
		return Monitor{}, false
	}
	nums, ok := atoiAll(match[1:])
	if !ok || nums[0] <= 0 || nums[1] <= 0 {
		return Monitor{}, false
	}
	return Monitor{
		Name:    fields[0],
		Width:   nums[0],
		Height:  nums[1],
		X:       nums[2],
		Y:       nums[3],
		Primary: strings.Contains(line, "primary"),
	}, true
}

// atoiAll converts every string or reports failure.
func atoiAll(raw []string) ([]int, bool) {
	out := make([]int, len(raw))
	for i, s := range raw {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
