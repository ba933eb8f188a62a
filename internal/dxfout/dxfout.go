// Package dxfout renders a recorded path to a DXF drawing via
// github.com/yofu/dxf, the same library the teacher application already
// depends on for DXF import.
package dxfout

import (
	"math"

	"github.com/yofu/dxf"

	"github.com/mtimmerm/gearcutter/internal/pen"
	"github.com/mtimmerm/gearcutter/internal/pen/recpen"
)

// Sink is a pen.Pen that accumulates moveTo/arcTo commands directly into a
// DXF drawing, on a single named layer, as LINE and ARC entities.
type Sink struct {
	drawing    *dxf.Drawing
	layer      string
	curX, curY float64
	hasCurrent bool
}

// New creates a Sink writing onto layer (created if absent).
func New(layer string) *Sink {
	d := dxf.NewDrawing()
	d.Layer(layer, true)
	return &Sink{drawing: d, layer: layer}
}

func (s *Sink) MoveTo(x, y float64) {
	s.curX, s.curY = x, y
	s.hasCurrent = true
}

func (s *Sink) ArcTo(x, y, turn float64) {
	if !s.hasCurrent {
		panic("dxfout: ArcTo called with no current point")
	}
	if math.Abs(turn) < pen.LineTol {
		s.drawing.Line(s.curX, s.curY, 0, x, y, 0)
	} else {
		cx, cy, r, startDeg, endDeg := arcFromChordTurn(s.curX, s.curY, x, y, turn)
		s.drawing.Arc(cx, cy, 0, r, startDeg, endDeg)
	}
	s.curX, s.curY = x, y
}

// SaveAs writes the accumulated drawing to path.
func (s *Sink) SaveAs(path string) error {
	return s.drawing.SaveAs(path)
}

// arcFromChordTurn recovers the center, radius, and DXF start/end angles
// (degrees, always increasing counterclockwise per the DXF ARC convention)
// of the arc from (x0,y0) to (x1,y1) whose total tangent rotation is turn
// radians (see pen.Pen).
func arcFromChordTurn(x0, y0, x1, y1, turn float64) (cx, cy, r, startDeg, endDeg float64) {
	dx, dy := x1-x0, y1-y0
	chordLen := math.Hypot(dx, dy)
	r = chordLen / (2 * math.Sin(math.Abs(turn)/2))

	mx, my := (x0+x1)/2, (y0+y1)/2
	// Signed distance from the chord midpoint to the center; negative for
	// arcs turning more than pi, whose center lies past the chord.
	h := (chordLen / 2) / math.Tan(math.Abs(turn)/2)
	// Unit perpendicular to the chord, on the side the arc turns toward.
	px, py := -dy/chordLen, dx/chordLen
	if turn < 0 {
		px, py = -px, -py
	}
	cx = mx + px*h
	cy = my + py*h

	startDeg = math.Atan2(y0-cy, x0-cx) * 180 / math.Pi
	endDeg = math.Atan2(y1-cy, x1-cx) * 180 / math.Pi
	if turn < 0 {
		startDeg, endDeg = endDeg, startDeg
	}
	return cx, cy, r, startDeg, endDeg
}

// WriteRecorder replays a recpen.Recorder's commands into a fresh single-
// layer DXF drawing and saves it to path.
func WriteRecorder(rec *recpen.Recorder, layer, path string) error {
	sink := New(layer)
	rec.Replay(sink)
	return sink.SaveAs(path)
}
