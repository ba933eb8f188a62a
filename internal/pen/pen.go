// Package pen defines the 2D path sink the geometric kernel draws against,
// and an affine-transforming wrapper for it. Concrete sinks live in
// subpackages (recpen, svgpen) and in internal/dxfout.
package pen

// Pen is the output protocol the core emits against. Every ArcTo call has a
// defined current point, established by a prior MoveTo or by the endpoint of
// the previous ArcTo.
//
// Turn is the signed total tangent rotation along the arc from the current
// point to (x, y): 0 means a straight line; a positive turn sweeps the
// tangent from the +x axis toward +y. |turn| < 1e-5 is semantically a line.
type Pen interface {
	MoveTo(x, y float64)
	ArcTo(x, y, turn float64)
}

// LineTol is the turn magnitude below which an ArcTo is treated as a
// straight line rather than a true arc.
const LineTol = 1e-5
