package geom

import (
	"math"
	"sort"

	"github.com/mtimmerm/gearcutter/internal/biarc"
	"github.com/mtimmerm/gearcutter/internal/pen"
)

// CutCurve is a polar curve on the blank representing the locus of one rack
// feature while rack and blank move in locked rolling motion.
type CutCurve interface {
	// GetR returns the blank radius at the given angle theta (radians, in
	// the curve's own local frame — callers apply rotation separately).
	GetR(theta float64) float64
	// GetDiscontinuityThetas returns the angles, strictly inside (lo, hi),
	// at which a branch transition must occur when drawing this curve.
	GetDiscontinuityThetas(lo, hi float64) []float64
	// DrawSegment draws the curve from thetaFrom to thetaTo. If
	// doInitialMove is true, it issues a MoveTo for the starting point;
	// otherwise the caller's pen is assumed to already be there.
	DrawSegment(dst pen.Pen, thetaFrom, thetaTo float64, doInitialMove bool)
}

// ConstantRadiusCut is the cut curve produced by a vertical rack segment: a
// fixed-radius circle about the blank axis.
type ConstantRadiusCut struct {
	R float64
}

func (c *ConstantRadiusCut) GetR(theta float64) float64 { return c.R }

func (c *ConstantRadiusCut) GetDiscontinuityThetas(lo, hi float64) []float64 { return nil }

func (c *ConstantRadiusCut) DrawSegment(dst pen.Pen, thetaFrom, thetaTo float64, doInitialMove bool) {
	x0, y0 := c.R*math.Cos(thetaFrom), c.R*math.Sin(thetaFrom)
	x1, y1 := c.R*math.Cos(thetaTo), c.R*math.Sin(thetaTo)
	if doInitialMove {
		dst.MoveTo(x0, y0)
	}
	dst.ArcTo(x1, y1, thetaTo-thetaFrom)
}

// calSamples is the number of calibration samples used to unwrap the raw
// atan2 angle across a monotone branch.
const calSamples = 96

// branch is one monotone-in-theta piece of a CircleCut's parameter domain.
type branch struct {
	tLo, tHi         float64
	thetaLo, thetaHi float64
	calT, calTheta   []float64
}

// wrapToPi reduces x to (-pi, pi].
func wrapToPi(x float64) float64 {
	for x > math.Pi {
		x -= 2 * math.Pi
	}
	for x <= -math.Pi {
		x += 2 * math.Pi
	}
	return x
}

// CircleCut is the cut curve produced by a single rack point (vertex or
// edge-interior point) linearly interpolated over t in [0,1] while the
// blank rotates by da radians. See spec §3/§4.4 for the precomputed scalars.
type CircleCut struct {
	P0  Point
	V   Point
	Da  float64 // total blank rotation over t in [0,1]
	Tol float64 // subdivision tolerance for DrawSegment (faceTol or filletTol)

	dnum, da2, db, p0sq float64
	tMid                float64
	hasReversal         bool
	tRevLo, tRevHi      float64

	branches []branch
}

// NewCircleCut builds a CircleCut for a rack point starting at p0 moving
// with constant velocity v over t in [0,1], while the blank rotates by da
// radians over the same interval.
func NewCircleCut(p0, v Point, da, tol float64) *CircleCut {
	c := &CircleCut{P0: p0, V: v, Da: da, Tol: tol}
	c.dnum = p0.Cross(v)
	c.da2 = v.Dot(v)
	c.db = 2 * p0.Dot(v)
	c.p0sq = p0.Dot(p0)
	if c.da2 != 0 {
		c.tMid = -c.db / (2 * c.da2)
	}
	c.findReversal()
	c.buildBranches()
	return c
}

// SetTol updates the subdivision tolerance DrawSegment uses. A point-cut
// curve is shared between the tooth face and the fillet it also forms; the
// caller (the kernel) sets this to the tolerance matching whichever role
// is currently being drawn before each DrawSegment call.
func (c *CircleCut) SetTol(tol float64) { c.Tol = tol }

func (c *CircleCut) xyAt(t float64) Point {
	return Point{c.P0.X + t*c.V.X, c.P0.Y + t*c.V.Y}
}

func (c *CircleCut) rawAngle(t float64) float64 {
	p := c.xyAt(t)
	return math.Atan2(p.Y, p.X)
}

// findReversal solves DA*t^2 + DB*t + (|P0|^2 - DNUM/da) = 0 for the cusp
// times bracketing the interval of t where dTheta/dt changes sign, clipped
// to [0, 1].
func (c *CircleCut) findReversal() {
	if c.da2 == 0 || c.Da == 0 {
		return
	}
	disc := c.db*c.db - 4*c.da2*(c.p0sq-c.dnum/c.Da)
	if disc < 0 {
		return
	}
	sq := math.Sqrt(disc)
	t1 := (-c.db - sq) / (2 * c.da2)
	t2 := (-c.db + sq) / (2 * c.da2)
	lo, hi := t1, t2
	if lo > hi {
		lo, hi = hi, lo
	}
	lo = math.Max(lo, 0)
	hi = math.Min(hi, 1)
	if lo < hi {
		c.hasReversal = true
		c.tRevLo, c.tRevHi = lo, hi
	}
}

func (c *CircleCut) buildBranches() {
	if !c.hasReversal {
		c.branches = []branch{c.buildBranch(0, 1, nil)}
		return
	}
	b0 := c.buildBranch(0, c.tRevLo, nil)
	ref0 := b0.thetaHi
	b1 := c.buildBranch(c.tRevLo, c.tRevHi, &ref0)
	ref1 := b1.thetaHi
	b2 := c.buildBranch(c.tRevHi, 1, &ref1)
	c.branches = []branch{b0, b1, b2}
}

// buildBranch samples calSamples points across [tLo, tHi], unwraps the raw
// atan2 angle sequentially, and subtracts t*da to produce a continuous
// theta(t). If ref is non-nil, the whole branch is shifted so its first
// sample equals *ref, chaining continuity with the previous branch.
func (c *CircleCut) buildBranch(tLo, tHi float64, ref *float64) branch {
	n := calSamples
	calT := make([]float64, n)
	calTheta := make([]float64, n)

	prevRaw := c.rawAngle(tLo)
	unwrapped := prevRaw
	for i := 0; i < n; i++ {
		t := tLo + (tHi-tLo)*float64(i)/float64(n-1)
		raw := c.rawAngle(t)
		if i > 0 {
			unwrapped += wrapToPi(raw - prevRaw)
			prevRaw = raw
		}
		calT[i] = t
		calTheta[i] = unwrapped - t*c.Da
	}

	if ref != nil {
		shift := *ref - calTheta[0]
		for i := range calTheta {
			calTheta[i] += shift
		}
	}

	return branch{
		tLo: tLo, tHi: tHi,
		thetaLo: calTheta[0], thetaHi: calTheta[n-1],
		calT: calT, calTheta: calTheta,
	}
}

// thetaAt evaluates branch b's continuous theta at t by unwrapping the raw
// atan2 relative to the nearest calibration sample.
func thetaAt(c *CircleCut, b *branch, t float64) float64 {
	i := sort.SearchFloat64s(b.calT, t)
	if i >= len(b.calT) {
		i = len(b.calT) - 1
	}
	if i > 0 && math.Abs(b.calT[i]-t) > math.Abs(b.calT[i-1]-t) {
		i--
	}
	refRawMinusTDa := b.calTheta[i] // = unwrappedRaw(calT[i]) - calT[i]*da
	refUnwrappedRaw := refRawMinusTDa + b.calT[i]*c.Da
	raw := c.rawAngle(t)
	unwrappedRaw := refUnwrappedRaw + wrapToPi(raw-wrapToPi(refUnwrappedRaw))
	// The above keeps raw on the same 2*pi sheet as the reference when the
	// travel between them is less than pi, which calSamples is chosen to
	// guarantee for these curves.
	return unwrappedRaw - t*c.Da
}

// locate returns, for each branch whose theta range contains target, the t
// solving thetaAt(branch, t) == target.
func (c *CircleCut) locate(target float64) []float64 {
	var ts []float64
	for bi := range c.branches {
		b := &c.branches[bi]
		lo, hi := b.thetaLo, b.thetaHi
		increasing := hi >= lo
		min, max := lo, hi
		if !increasing {
			min, max = hi, lo
		}
		const eps = 1e-9
		if target < min-eps || target > max+eps {
			continue
		}
		tt := b.tLo
		hh := b.tHi
		if tt >= hh {
			ts = append(ts, tt)
			continue
		}
		var pred Predicate
		if increasing {
			pred = func(t float64) bool { return thetaAt(c, b, t) < target }
		} else {
			pred = func(t float64) bool { return thetaAt(c, b, t) > target }
		}
		if !pred(tt) {
			ts = append(ts, tt)
			continue
		}
		l, h := FloatBinarySearch(tt, hh, pred)
		ts = append(ts, (l+h)/2)
	}
	return ts
}

// GetR implements CutCurve: it resolves every branch whose theta range
// contains the target and returns the smallest radius among them, per the
// rule that the inner (smaller-r) branch of a reversal is the envelope
// contributor.
func (c *CircleCut) GetR(theta float64) float64 {
	ts := c.locate(theta)
	best := math.Inf(1)
	for _, t := range ts {
		r := c.xyAt(t).Len()
		if r < best {
			best = r
		}
	}
	return best
}

// GetDiscontinuityThetas returns the cusp angles (branch boundaries at a
// reversal) that fall strictly inside (lo, hi).
func (c *CircleCut) GetDiscontinuityThetas(lo, hi float64) []float64 {
	if !c.hasReversal {
		return nil
	}
	var out []float64
	cusps := []float64{c.branches[0].thetaHi, c.branches[1].thetaHi}
	for _, th := range cusps {
		if th > lo && th < hi {
			out = append(out, th)
		}
	}
	return out
}

// DrawSegment draws the branch spanning [thetaFrom, thetaTo] (which must lie
// within a single monotone branch — callers split at GetDiscontinuityThetas
// first) as a dense sequence of point/tangent samples fed through the biarc
// approximator.
func (c *CircleCut) DrawSegment(dst pen.Pen, thetaFrom, thetaTo float64, doInitialMove bool) {
	_, tFrom, tTo := c.branchFor(thetaFrom, thetaTo)

	tLo, tHi := tFrom, tTo
	reversed := tLo > tHi
	if reversed {
		tLo, tHi = tHi, tLo
	}

	var splitPoints []float64
	if c.tMid > tLo && c.tMid < tHi {
		splitPoints = append(splitPoints, c.tMid)
	}

	samples := make([]biarc.Sample, 0, 64)
	emit := func(t float64) {
		samples = append(samples, c.sampleAt(t))
	}

	bounds := append([]float64{tLo}, splitPoints...)
	bounds = append(bounds, tHi)
	sort.Float64s(bounds)

	emit(bounds[0])
	for i := 1; i < len(bounds); i++ {
		c.subdivide(bounds[i-1], bounds[i], &samples)
		emit(bounds[i])
	}

	if reversed {
		for i, j := 0, len(samples)-1; i < j; i, j = i+1, j-1 {
			samples[i], samples[j] = samples[j], samples[i]
		}
		for i := range samples {
			samples[i].TX, samples[i].TY = -samples[i].TX, -samples[i].TY
		}
	}
	biarc.Approximate(dst, samples, c.Tol, doInitialMove)
}

// branchFor locates the branch containing both thetaFrom and thetaTo and
// the t values within it corresponding to each.
func (c *CircleCut) branchFor(thetaFrom, thetaTo float64) (*branch, float64, float64) {
	lo, hi := thetaFrom, thetaTo
	if lo > hi {
		lo, hi = hi, lo
	}
	for bi := range c.branches {
		b := &c.branches[bi]
		blo, bhi := b.thetaLo, b.thetaHi
		if blo > bhi {
			blo, bhi = bhi, blo
		}
		const eps = 1e-6
		if lo >= blo-eps && hi <= bhi+eps {
			tFrom := c.solveInBranch(b, thetaFrom)
			tTo := c.solveInBranch(b, thetaTo)
			return b, tFrom, tTo
		}
	}
	// Fall back to the branch with the largest overlap.
	b := &c.branches[0]
	return b, b.tLo, b.tHi
}

func (c *CircleCut) solveInBranch(b *branch, target float64) float64 {
	increasing := b.thetaHi >= b.thetaLo
	var pred Predicate
	if increasing {
		pred = func(t float64) bool { return thetaAt(c, b, t) < target }
	} else {
		pred = func(t float64) bool { return thetaAt(c, b, t) > target }
	}
	if !pred(b.tLo) {
		return b.tLo
	}
	if pred(b.tHi) {
		return b.tHi
	}
	l, h := FloatBinarySearch(b.tLo, b.tHi, pred)
	return (l + h) / 2
}

// sampleAt returns the point+unit-tangent sample at parameter t. Near a
// cusp (relative velocity squared below 1e-16) the tangent falls back to a
// radial direction with branch-consistent sign, per spec §4.4.
func (c *CircleCut) sampleAt(t float64) biarc.Sample {
	p := c.xyAt(t)
	// d/dt of the blank-frame position: the rack point velocity V, rotated
	// by -a(t) to express it in the rotating blank frame, minus the
	// tangential term from the blank's own rotation.
	a := t * c.Da
	cosA, sinA := math.Cos(a), math.Sin(a)
	// Position in blank frame: R(-a) * p(t).
	bx := p.X*cosA + p.Y*sinA
	by := -p.X*sinA + p.Y*cosA
	// Velocity of P in blank frame: d/dt [R(-a) p] = R(-a) V - da * R'(-a) p,
	// where R'(-a) applied via the perpendicular relation for rotation rate.
	vx := c.V.X*cosA + c.V.Y*sinA
	vy := -c.V.X*sinA + c.V.Y*cosA
	vx += c.Da * by
	vy += -c.Da * bx

	speedSq := vx*vx + vy*vy
	var tx, ty float64
	if speedSq < 1e-16 {
		r := math.Hypot(bx, by)
		if r == 0 {
			tx, ty = 1, 0
		} else {
			tx, ty = bx/r, by/r
			if c.Da < 0 {
				tx, ty = -tx, -ty
			}
		}
	} else {
		speed := math.Sqrt(speedSq)
		tx, ty = vx/speed, vy/speed
	}
	return biarc.Sample{X: bx, Y: by, TX: tx, TY: ty}
}

// subdivide recursively samples (t0, t1) until the midpoint-chord deviation
// stays within the curve's tolerance, appending interior samples (not the
// endpoints, which the caller already emitted) to *out in increasing-t
// order.
func (c *CircleCut) subdivide(t0, t1 float64, out *[]biarc.Sample) {
	s0 := c.sampleAt(t0)
	s1 := c.sampleAt(t1)
	tm := (t0 + t1) / 2
	sm := c.sampleAt(tm)

	// Perpendicular deviation of the midpoint sample from the chord.
	chordX, chordY := s1.X-s0.X, s1.Y-s0.Y
	chordLen := math.Hypot(chordX, chordY)
	var devSq float64
	if chordLen > 0 {
		dx, dy := sm.X-s0.X, sm.Y-s0.Y
		cross := (dx*chordY - dy*chordX) / chordLen
		devSq = cross * cross
	}

	if devSq <= c.Tol*c.Tol/4 || t1-t0 < 1e-12 {
		*out = append(*out, sm)
		return
	}
	c.subdivide(t0, tm, out)
	*out = append(*out, sm)
	c.subdivide(tm, t1, out)
}
