// Package region describes capture rectangles on the virtual canvas.
package region

import (
	"fmt"
	"strconv"
	"strings"
)

// Rect describes a rectangle using top-left origin and size.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Size formats the rectangle size as WxH.
func (r Rect) Size() string {
	return fmt.Sprintf("%dx%d", r.W, r.H)
}

// Normalize returns a rectangle with non-negative width/height.
func Normalize(r Rect) Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Contains reports whether a point is inside the rectangle (edges inclusive).
func Contains(r Rect, x, y int) bool {
	if r.Empty() {
		return false
	}
	maxX := r.X + r.W
	maxY := r.Y + r.H
	return x >= r.X && x <= maxX && y >= r.Y && y <= maxY
}

// Parse reads an "x,y,w,h" selection, the format slop prints with -f %x,%y,%w,%h.
func Parse(s string) (Rect, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 4 {
		return Rect{}, fmt.Errorf("region %q: want x,y,w,h", s)
	}
	var vals [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Rect{}, fmt.Errorf("region %q: %w", s, err)
		}
		vals[i] = v
	}
	r := Normalize(Rect{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]})
	if r.Empty() {
		return Rect{}, fmt.Errorf("region %q has no area", s)
	}
	return r, nil
}

// Clamp keeps r inside a canvas of the given size and aligns every edge to even
// values, which yuv420p encoders require. The result is at least 2x2.
func Clamp(r Rect, canvasW, canvasH int) Rect {
	r = Normalize(r)
	r.W = min(max(r.W, 2), canvasW)
	r.H = min(max(r.H, 2), canvasH)
	r.X = min(max(r.X, 0), max(canvasW-r.W, 0))
	r.Y = min(max(r.Y, 0), max(canvasH-r.H, 0))

	r.X -= r.X % 2
	r.Y -= r.Y % 2
	r.W -= r.W % 2
	r.H -= r.H % 2
	r.W = max(r.W, 2)
	r.H = max(r.H, 2)
	return r
}
