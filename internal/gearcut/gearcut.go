// Package gearcut consumes a rack path through the Pen interface and
// produces the polar cut segments — point-involute cuts at each rack vertex
// and constant-radius or circle cuts for each rack edge — that the envelope
// normalizer reduces to a single tooth boundary.
package gearcut

import (
	"fmt"
	"math"

	"github.com/mtimmerm/gearcutter/internal/geom"
)

// DomainError marks a programmer-error input: a non-positive vertex radius
// or a curved cutter edge. Per the kernel's error-handling convention these
// are not recovered from inside the geometric core; a caller (the kernel's
// top-level Render) may recover and report them as a render failure.
type DomainError string

func (e DomainError) Error() string { return string(e) }

// curvedEdgeTol is the turn magnitude above which an incoming rack edge is
// rejected as curved rather than straight.
const curvedEdgeTol = 1e-3

// Segment is one polar cut segment: curve, rotated about the blank axis by
// Rotation teeth, contributing over [StartAngle, EndAngle] teeth.
type Segment struct {
	StartAngle, EndAngle float64
	Rotation             float64
	Curve                geom.CutCurve
}

// GearCutter implements pen.Pen, consuming a rack path one vertex at a time
// and accumulating the polar cut segments for one tooth.
type GearCutter struct {
	NTeeth      int
	PitchRadius float64
	FaceTol     float64
	FilletTol   float64

	dadTooth, dydTooth float64

	Path []Segment

	pointCurves map[uint64]*geom.CircleCut
	flatCurves  map[uint64]*geom.ConstantRadiusCut

	curX, curY float64
	hasCurrent bool
}

// New returns a GearCutter ready to consume a rack path. nTeeth must be >= 4,
// pitchRadius, faceTol, and filletTol must be positive.
func New(nTeeth int, pitchRadius, faceTol, filletTol float64) *GearCutter {
	if nTeeth < 4 {
		panic(DomainError(fmt.Sprintf("gearcut: nTeeth must be >= 4, got %d", nTeeth)))
	}
	if pitchRadius <= 0 || faceTol <= 0 || filletTol <= 0 {
		panic(DomainError("gearcut: pitchRadius, faceTol, and filletTol must be positive"))
	}
	dadTooth := 2 * math.Pi / float64(nTeeth)
	return &GearCutter{
		NTeeth:      nTeeth,
		PitchRadius: pitchRadius,
		FaceTol:     faceTol,
		FilletTol:   filletTol,
		dadTooth:    dadTooth,
		dydTooth:    dadTooth * pitchRadius,
		pointCurves: make(map[uint64]*geom.CircleCut),
		flatCurves:  make(map[uint64]*geom.ConstantRadiusCut),
	}
}

// MoveTo implements pen.Pen: it establishes the first rack vertex.
func (g *GearCutter) MoveTo(x, y float64) {
	g.checkVertex(x)
	g.addPointCut(x, y)
	g.curX, g.curY = x, y
	g.hasCurrent = true
}

// ArcTo implements pen.Pen: turn must be (near) zero — the rack is
// piecewise linear — and it produces both the edge cut and the destination
// vertex's point cut.
func (g *GearCutter) ArcTo(x, y, turn float64) {
	if !g.hasCurrent {
		panic(DomainError("gearcut: ArcTo called with no current point"))
	}
	if math.Abs(turn) > curvedEdgeTol {
		panic(DomainError(fmt.Sprintf("gearcut: curved cutter edge (turn=%g)", turn)))
	}
	g.checkVertex(x)

	g.addEdgeCut(g.curX, g.curY, x, y)
	g.addPointCut(x, y)

	g.curX, g.curY = x, y
}

func (g *GearCutter) checkVertex(x float64) {
	if x <= 0 {
		panic(DomainError(fmt.Sprintf("gearcut: rack vertex at x=%g, must be > 0", x)))
	}
}

// addPointCut emits the segment for the point-involute cut at rack vertex
// (x, y): a full tooth of the shared, x-keyed CircleCut, rotated so its
// angular span is centered on the vertex's pitch-line crossing time.
func (g *GearCutter) addPointCut(x, y float64) {
	curve := g.pointCurve(x)
	rot := y / g.dydTooth
	rotStart := rot - 0.5
	g.Path = append(g.Path, Segment{
		StartAngle: rotStart,
		EndAngle:   rotStart + 1,
		Rotation:   rotStart,
		Curve:      curve,
	})
}

// pointCurve returns the (memoized) shape of the locus traced by any rack
// vertex at radius x over one full tooth of rolling motion. The shape
// depends only on x, dadTooth and dydTooth — not on the vertex's own y,
// which only determines the segment's rotational placement (addPointCut).
func (g *GearCutter) pointCurve(x float64) *geom.CircleCut {
	key := math.Float64bits(x)
	if c, ok := g.pointCurves[key]; ok {
		return c
	}
	p0 := geom.Point{X: x, Y: g.dydTooth * 0.5}
	v := geom.Point{X: 0, Y: -g.dydTooth}
	c := geom.NewCircleCut(p0, v, g.dadTooth, g.FilletTol)
	g.pointCurves[key] = c
	return c
}

// addEdgeCut emits the segment for the rack edge running from (x0,y0) to
// (x1,y1): a constant-radius cut if the edge is vertical, otherwise a
// circle-cut parameterized by the edge's sliding contact point.
func (g *GearCutter) addEdgeCut(x0, y0, x1, y1 float64) {
	if x0 == x1 {
		g.addFlatCut(x0, y0, y1)
		return
	}

	xp := g.PitchRadius
	y0p := (y1-y0)*(xp-x0)/(x1-x0) + y0
	tp := -y0p / g.dydTooth

	dx, dy := x1-x0, y1-y0
	edgeLen := math.Hypot(dx, dy)
	ex, ey := dx/edgeLen, dy/edgeLen
	// Rack velocity (0, dydTooth) projected off its along-edge component,
	// leaving the component perpendicular to the edge.
	along := g.dydTooth * ey
	dxdt := -along * ex
	dydt := g.dydTooth - along*ey

	if dxdt == 0 {
		// Edge perpendicular to the rack's direction of travel (ey == 0, as
		// with a zero pressure angle): the contact point has no x-velocity,
		// so this falls back to a flat cut at x0 over y0..y1, which has zero
		// span because y0 == y1.
		g.addFlatCut(x0, y0, y1)
		return
	}

	t0 := (x0 - xp) / dxdt
	t1 := (x1 - xp) / dxdt

	p0 := geom.Point{X: x0, Y: t0 * dydt}
	p1 := geom.Point{X: x1, Y: t1 * dydt}
	v := p1.Sub(p0)
	da := (t1 - t0) * g.dadTooth

	curve := geom.NewCircleCut(p0, v, da, g.FaceTol)

	rotStart := t0 + tp
	rotEnd := t1 + tp
	if rotStart > rotEnd {
		rotStart, rotEnd = rotEnd, rotStart
	}
	g.Path = append(g.Path, Segment{
		StartAngle: rotStart,
		EndAngle:   rotEnd,
		Rotation:   t0 + tp,
		Curve:      curve,
	})
}

func (g *GearCutter) addFlatCut(x0, y0, y1 float64) {
	curve := g.flatCurve(x0)
	lo, hi := y0, y1
	if lo > hi {
		lo, hi = hi, lo
	}
	g.Path = append(g.Path, Segment{
		StartAngle: lo / g.dydTooth,
		EndAngle:   hi / g.dydTooth,
		Rotation:   0,
		Curve:      curve,
	})
}

func (g *GearCutter) flatCurve(x float64) *geom.ConstantRadiusCut {
	key := math.Float64bits(x)
	if c, ok := g.flatCurves[key]; ok {
		return c
	}
	c := &geom.ConstantRadiusCut{R: x}
	g.flatCurves[key] = c
	return c
}
