// Package toolpath estimates cut length and machining time for a rendered
// tooth, over the same line/arc records the core emits, without producing
// any G-code — the estimate style follows the teacher's
// TotalRapidDistance-style reporting helpers, generalized from straight
// rapids to the line+arc path this kernel actually draws.
package toolpath

import (
	"math"

	"github.com/mtimmerm/gearcutter/internal/pen"
	"github.com/mtimmerm/gearcutter/internal/pen/recpen"
)

// Estimate is the cut-length / time summary for one recorded path.
type Estimate struct {
	LengthModuleUnits float64
	ArcCount          int
	LineCount         int
}

// TimeSeconds converts an Estimate into an estimated machining time in
// seconds at the given feed rate (module-units per second).
func (e Estimate) TimeSeconds(feedRate float64) float64 {
	if feedRate <= 0 {
		return 0
	}
	return e.LengthModuleUnits / feedRate
}

// FromRecorder measures the total path length recorded by rec: straight
// segments contribute their chord length, arcs contribute their true arc
// length (radius * |turn|).
func FromRecorder(rec *recpen.Recorder) Estimate {
	var est Estimate
	var curX, curY float64
	for _, c := range rec.Commands() {
		switch c.Op {
		case recpen.OpMove:
			curX, curY = c.X, c.Y
		case recpen.OpArc:
			est.LengthModuleUnits += segmentLength(curX, curY, c.X, c.Y, c.Turn)
			if math.Abs(c.Turn) < pen.LineTol {
				est.LineCount++
			} else {
				est.ArcCount++
			}
			curX, curY = c.X, c.Y
		}
	}
	return est
}

// segmentLength returns the chord length for a near-zero turn, or the true
// arc length (radius * |turn|) otherwise, recovering the radius from the
// chord and the subtended angle.
func segmentLength(x0, y0, x1, y1, turn float64) float64 {
	chord := math.Hypot(x1-x0, y1-y0)
	if math.Abs(turn) < pen.LineTol {
		return chord
	}
	r := chord / (2 * math.Sin(math.Abs(turn)/2))
	return r * math.Abs(turn)
}
