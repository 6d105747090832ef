package monitor

import "regexp"

var dimensionsPattern = regexp.MustCompile(`dimensions:\s+(\d+)x(\d+)`)

// ParseXdpyinfo reads the overall screen size from `xdpyinfo` output and
// returns it as a single primary monitor named "Screen".
func ParseXdpyinfo(output string) (Monitor, bool) {
	match := dimensionsPattern.FindStringSubmatch(output)
	if match == nil {
		return Monitor{}, false
	}
	nums, ok := atoiAll(match[1:])
	if !ok || nums[0] <= 0 || nums[1] <= 0 {
		return Monitor{}, false
	}
	return Monitor{Name: "Screen", Width: nums[0], Height: nums[1], Primary: true}, true
}
