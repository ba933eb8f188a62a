package pen

import "math"

// snapEps is the angular tolerance, in degrees, within which Rotate snaps to
// an exact multiple of 90 degrees.
const snapEps = 1e-9

// Transform is a Pen wrapper that applies an affine transform to every point
// before forwarding to an underlying delegate Pen. Operations compose in the
// order they are called: Translate(tx,ty).Rotate(deg) shifts every point by
// (tx,ty) and then rotates the shifted result about the origin — each new
// call wraps around the effect of the calls made before it.
//
// Point mapping: p' = A*p + T, where A is the accumulated 2x2 linear part and
// T the accumulated translation. Turn is invariant under rotation, translation,
// and uniform positive scale; a flipY scale reverses arc orientation, so the
// accumulated parity is tracked separately and applied to every ArcTo turn.
type Transform struct {
	delegate Pen
	a, b     float64 // first row of the linear part
	c, d     float64 // second row of the linear part
	tx, ty   float64
	flipped  bool // true if an odd number of flipY scales has been applied

	hasCurrent bool
}

// NewTransform wraps delegate in an identity transform.
func NewTransform(delegate Pen) *Transform {
	return &Transform{delegate: delegate, a: 1, d: 1}
}

// Copy returns an independent Transform with the same accumulated state,
// wrapping the same delegate.
func (t *Transform) Copy() *Transform {
	cp := *t
	return &cp
}

// apply maps a point through the accumulated affine transform.
func (t *Transform) apply(x, y float64) (float64, float64) {
	return t.a*x + t.b*y + t.tx, t.c*x + t.d*y + t.ty
}

// composeLinear left-composes the op's linear part (oa,ob,oc,od) and
// translation (otx,oty) outside the transform's current state: the op is
// applied to the result of the existing transform.
func (t *Transform) composeLinear(oa, ob, oc, od, otx, oty float64) {
	na := oa*t.a + ob*t.c
	nb := oa*t.b + ob*t.d
	nc := oc*t.a + od*t.c
	nd := oc*t.b + od*t.d
	ntx := oa*t.tx + ob*t.ty + otx
	nty := oc*t.tx + od*t.ty + oty
	t.a, t.b, t.c, t.d, t.tx, t.ty = na, nb, nc, nd, ntx, nty
}

// Translate shifts subsequent points by (dx, dy) in the frame established so
// far.
func (t *Transform) Translate(dx, dy float64) *Transform {
	t.composeLinear(1, 0, 0, 1, dx, dy)
	return t
}

// Rotate rotates subsequent points by deg degrees counterclockwise (positive
// turn direction: +x toward +y), about the origin of the frame established
// so far. Angles that are exact multiples of 90 degrees, within snapEps, snap
// to exact {-1, 0, 1} matrix entries rather than carrying trig round-off.
func (t *Transform) Rotate(deg float64) *Transform {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	rem := math.Mod(deg, 90)
	if rem < 0 {
		rem += 90
	}
	if rem < snapEps || 90-rem < snapEps {
		quadrant := int(math.Round(deg/90)) % 4
		if quadrant < 0 {
			quadrant += 4
		}
		switch quadrant {
		case 0:
			cos, sin = 1, 0
		case 1:
			cos, sin = 0, 1
		case 2:
			cos, sin = -1, 0
		case 3:
			cos, sin = 0, -1
		}
	}

	t.composeLinear(cos, -sin, sin, cos, 0, 0)
	return t
}

// Scale scales subsequent points by factor about the origin of the frame
// established so far. If flipY is true, the y axis is also mirrored, which
// reverses the orientation (and hence the sign) of every subsequent arcTo
// turn drawn through this transform.
func (t *Transform) Scale(factor float64, flipY bool) *Transform {
	sy := factor
	if flipY {
		sy = -factor
		t.flipped = !t.flipped
	}
	t.composeLinear(factor, 0, 0, sy, 0, 0)
	return t
}

// MoveTo implements Pen.
func (t *Transform) MoveTo(x, y float64) {
	t.hasCurrent = true
	tx, ty := t.apply(x, y)
	t.delegate.MoveTo(tx, ty)
}

// ArcTo implements Pen. It panics if no current point has been established,
// per the Pen contract.
func (t *Transform) ArcTo(x, y, turn float64) {
	if !t.hasCurrent {
		panic("pen: ArcTo called with no current point")
	}
	tx, ty := t.apply(x, y)
	if t.flipped {
		turn = -turn
	}
	t.delegate.ArcTo(tx, ty, turn)
}
