// Package recpen implements a recording Pen: a buffer of moveTo/arcTo
// commands that can be replayed against another Pen, inspected by tests, or
// measured for arc length.
package recpen

import "math"

// dupDistSq is the squared-distance threshold below which a point is
// considered coincident with the current point and its arcTo is discarded
// entirely.
const dupDistSq = 1e-14

// lineSnapDistSq is the squared-distance threshold below which a short
// arcTo's turn is clamped to zero (treated as a degenerate line) rather than
// discarded outright.
const lineSnapDistSq = 1e-8

// Op identifies the kind of a recorded Command.
type Op int

const (
	OpMove Op = iota
	OpArc
)

// Command is one recorded Pen call.
type Command struct {
	Op   Op
	X, Y float64
	Turn float64 // meaningful only for OpArc
}

// Recorder is a Pen that buffers every call it receives, discarding or
// clamping near-duplicate points per the degenerate-geometry rules.
type Recorder struct {
	commands       []Command
	curX, curY     float64
	hasCurrent     bool
	minX, minY     float64
	maxX, maxY     float64
	hasBoundingBox bool
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{}
}

func (r *Recorder) MoveTo(x, y float64) {
	r.commands = append(r.commands, Command{Op: OpMove, X: x, Y: y})
	r.curX, r.curY = x, y
	r.hasCurrent = true
	r.extendBounds(x, y)
}

func (r *Recorder) ArcTo(x, y, turn float64) {
	if !r.hasCurrent {
		panic("recpen: ArcTo called with no current point")
	}
	dx, dy := x-r.curX, y-r.curY
	distSq := dx*dx + dy*dy

	if distSq < dupDistSq {
		return
	}
	if distSq < lineSnapDistSq {
		turn = 0
	}

	r.commands = append(r.commands, Command{Op: OpArc, X: x, Y: y, Turn: turn})
	r.curX, r.curY = x, y
	r.extendBounds(x, y)
}

func (r *Recorder) extendBounds(x, y float64) {
	if !r.hasBoundingBox {
		r.minX, r.maxX = x, x
		r.minY, r.maxY = y, y
		r.hasBoundingBox = true
		return
	}
	r.minX = math.Min(r.minX, x)
	r.maxX = math.Max(r.maxX, x)
	r.minY = math.Min(r.minY, y)
	r.maxY = math.Max(r.maxY, y)
}

// Commands returns the recorded command sequence.
func (r *Recorder) Commands() []Command {
	return r.commands
}

// BoundingBox returns the min and max corners of every point the recorder
// has seen. ok is false if nothing has been recorded.
func (r *Recorder) BoundingBox() (minX, minY, maxX, maxY float64, ok bool) {
	return r.minX, r.minY, r.maxX, r.maxY, r.hasBoundingBox
}

// Replay feeds every recorded command into dst in order.
func (r *Recorder) Replay(dst interface {
	MoveTo(x, y float64)
	ArcTo(x, y, turn float64)
}) {
	for _, c := range r.commands {
		switch c.Op {
		case OpMove:
			dst.MoveTo(c.X, c.Y)
		case OpArc:
			dst.ArcTo(c.X, c.Y, c.Turn)
		}
	}
}

// Reset clears the recorder back to its empty state.
func (r *Recorder) Reset() {
	r.commands = nil
	r.hasCurrent = false
	r.hasBoundingBox = false
}
