// Package svgpen renders a recorded path as an SVG <path> element.
package svgpen

import (
	"fmt"
	"math"
	"strings"

	"github.com/mtimmerm/gearcutter/internal/pen"
)

// Sink is a pen.Pen that accumulates an SVG path's "d" attribute data:
// M/L for straight segments, A for arcs.
type Sink struct {
	b          strings.Builder
	curX, curY float64
	hasCurrent bool
}

// New returns an empty Sink.
func New() *Sink {
	return &Sink{}
}

func (s *Sink) MoveTo(x, y float64) {
	fmt.Fprintf(&s.b, "M %g %g ", x, y)
	s.curX, s.curY = x, y
	s.hasCurrent = true
}

func (s *Sink) ArcTo(x, y, turn float64) {
	if !s.hasCurrent {
		panic("svgpen: ArcTo called with no current point")
	}
	if math.Abs(turn) < pen.LineTol {
		fmt.Fprintf(&s.b, "L %g %g ", x, y)
	} else {
		dx, dy := x-s.curX, y-s.curY
		chordLen := math.Hypot(dx, dy)
		r := chordLen / (2 * math.Sin(math.Abs(turn)/2))
		largeArc := 0
		if math.Abs(turn) > math.Pi {
			largeArc = 1
		}
		// turn > 0 sweeps +x toward +y, the direction of increasing angle,
		// which is SVG's sweep-flag 1. Coordinates are written unchanged, so
		// the same holds in SVG's y-down user space.
		sweep := 0
		if turn > 0 {
			sweep = 1
		}
		fmt.Fprintf(&s.b, "A %g %g 0 %d %d %g %g ", r, r, largeArc, sweep, x, y)
	}
	s.curX, s.curY = x, y
}

// PathData returns the accumulated "d" attribute contents.
func (s *Sink) PathData() string {
	return strings.TrimSpace(s.b.String())
}

// String renders a complete standalone <svg> document containing the path,
// stroked and unfilled, sized to fit width x height with origin at the
// center (module-unit coordinates are typically small; callers using the
// affine Transform should pre-scale into pixel units before drawing).
func (s *Sink) String(width, height int) string {
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="%g %g %d %d"><path d="%s" fill="none" stroke="black"/></svg>`,
		width, height, -float64(width)/2, -float64(height)/2, width, height, s.PathData())
}
