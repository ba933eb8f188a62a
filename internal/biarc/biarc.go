// Package biarc selects a minimal tangent-continuous biarc approximation of
// a sampled curve and emits it through a Pen.
package biarc

import (
	"math"

	"github.com/mtimmerm/gearcutter/internal/pen"
)

// antiparallelEps is the magnitude below which u x v (see split) is treated
// as a degenerate near-antiparallel tangent pair.
const antiparallelEps = 1e-12

// Sample is a point on the curve together with its unit tangent, oriented
// consistently with the direction of traversal.
type Sample struct {
	X, Y   float64
	TX, TY float64
}

func (s Sample) point() vec   { return vec{s.X, s.Y} }
func (s Sample) tangent() vec { return vec{s.TX, s.TY} }

type vec struct{ x, y float64 }

func (a vec) sub(b vec) vec     { return vec{a.x - b.x, a.y - b.y} }
func (a vec) add(b vec) vec     { return vec{a.x + b.x, a.y + b.y} }
func (a vec) scale(s float64) vec { return vec{a.x * s, a.y * s} }
func (a vec) dot(b vec) float64 { return a.x*b.x + a.y*b.y }
func (a vec) cross(b vec) float64 { return a.x*b.y - a.y*b.x }
func (a vec) len() float64      { return math.Hypot(a.x, a.y) }
func (a vec) perp() vec         { return vec{-a.y, a.x} }
func (a vec) norm() vec {
	l := a.len()
	if l == 0 {
		return a
	}
	return a.scale(1 / l)
}

// split is one incenter-connecting biarc between two point-tangent pairs.
type split struct {
	p0, p1   vec // endpoints
	t0, t1   vec // endpoint tangents
	pm, tm   vec // joint point and joint tangent
	ok       bool
}

// splitBiarc computes the incenter-connecting biarc between (p0,t0) and
// (p1,t1): the joint tangent is the unit chord direction, and the joint
// point is found by solving the 2x2 linear system
//
//	a0*(t0+tm) + a1*(t1+tm) = (p1-p0)
//
// for the arc amplitudes a0, a1. The split fails only when t0+tm and t1+tm
// are parallel, which happens when t0 and t1 are close to antiparallel (a
// curvature-sign reversal within the pair) — callers must pre-partition the
// curve at such reversals before calling Approximate.
func splitBiarc(p0, t0, p1, t1 vec) split {
	d := p1.sub(p0)
	chordLen := d.len()
	if chordLen == 0 {
		return split{p0: p0, p1: p1, t0: t0, t1: t1, pm: p0, tm: t0, ok: true}
	}
	tm := d.scale(1 / chordLen)

	u := t0.add(tm)
	v := t1.add(tm)
	denom := u.cross(v)
	if math.Abs(denom) < antiparallelEps {
		return split{p0: p0, p1: p1, t0: t0, t1: t1, ok: false}
	}

	a0 := d.cross(v) / denom
	pm := p0.add(u.scale(a0))

	return split{p0: p0, p1: p1, t0: t0, t1: t1, pm: pm, tm: tm, ok: true}
}

// arcCenter recovers the center and signed radius of the circular arc from
// p0 (tangent t0) to p1 (tangent t1). ok is false when the arc is close
// enough to straight that the center computation is numerically unreliable
// (denominator small relative to chord length, ratio >= 1e8).
func arcCenter(p0, t0, p1, t1 vec) (center vec, radius float64, ok bool) {
	d := p1.sub(p0)
	dt := t1.sub(t0)
	denom := dt.perp().dot(d)
	chordLen := d.len()
	if chordLen == 0 {
		return vec{}, 0, false
	}
	if math.Abs(denom) == 0 || chordLen/math.Abs(denom) >= 1e8 {
		return vec{}, 0, false
	}
	r := d.dot(d) / denom
	c := p0.add(p1).scale(0.5).sub(t0.add(t1).perp().scale(r / 2))
	return c, r, true
}

// pointToArcError measures the distance from sample to the circular arc
// through (p0,t0)-(p1,t1), falling back to perpendicular distance from the
// chord (using the averaged tangent as the line direction) when the arc is
// numerically near-straight.
func pointToArcError(sample, p0, t0, p1, t1 vec) float64 {
	if c, r, ok := arcCenter(p0, t0, p1, t1); ok {
		return math.Abs(sample.sub(c).len() - math.Abs(r))
	}
	mid := p0.add(p1).scale(0.5)
	dir := t0.add(t1).norm()
	if dir.len() == 0 {
		return sample.sub(mid).len()
	}
	return math.Abs(sample.sub(mid).cross(dir))
}

// pointToBiarcError measures the deviation of sample from the biarc sp:
// it projects onto the chord to decide which of the two arcs to measure
// against.
func pointToBiarcError(sample vec, sp split) float64 {
	d := sp.p1.sub(sp.p0)
	chordLen := d.len()
	if chordLen == 0 {
		return sample.sub(sp.p0).len()
	}
	chordDir := d.scale(1 / chordLen)
	jointProj := sp.pm.sub(sp.p0).dot(chordDir)
	sampleProj := sample.sub(sp.p0).dot(chordDir)

	if sampleProj <= jointProj {
		return pointToArcError(sample, sp.p0, sp.t0, sp.pm, sp.tm)
	}
	return pointToArcError(sample, sp.pm, sp.tm, sp.p1, sp.t1)
}

// maxInteriorError returns the largest pointToBiarcError among
// samples[lo+1:hi] (the interior samples strictly between the chosen
// endpoints), and whether the split between lo and hi is usable at all.
func maxInteriorError(samples []Sample, lo, hi int, sp split) (float64, bool) {
	if !sp.ok {
		return 0, false
	}
	maxErr := 0.0
	for k := lo + 1; k < hi; k++ {
		e := pointToBiarcError(samples[k].point(), sp)
		if e > maxErr {
			maxErr = e
		}
	}
	return maxErr, true
}

type dpEntry struct {
	count  int
	maxErr float64
	pred   int
}

// Approximate selects a minimum-cardinality subsequence of samples whose
// pairwise incenter-connecting biarcs deviate from the interior samples by
// at most tolerance, and emits it to dst as one ArcTo pair per chosen
// biarc. If moveTo is true, Approximate first issues a MoveTo to
// samples[0]; otherwise the caller's pen is assumed to already be
// positioned there (e.g. as the endpoint of a previous DrawSegment call).
func Approximate(dst pen.Pen, samples []Sample, tolerance float64, moveTo bool) {
	n := len(samples)
	if n == 0 {
		return
	}
	if moveTo {
		dst.MoveTo(samples[0].X, samples[0].Y)
	}
	if n == 1 {
		return
	}
	if n == 2 {
		emitBiarc(dst, samples[0], samples[1])
		return
	}

	dp := make([]dpEntry, n)
	dp[0] = dpEntry{count: 0, maxErr: 0, pred: -1}
	for i := range dp {
		dp[i].count = -1
	}
	dp[0].count = 0

	for i := 1; i < n; i++ {
		bestCount := -1
		bestErr := math.Inf(1)
		bestPred := -1
		for j := 0; j < i; j++ {
			if dp[j].count < 0 {
				continue
			}
			sp := splitBiarc(samples[j].point(), samples[j].tangent(), samples[i].point(), samples[i].tangent())
			errAt, usable := maxInteriorError(samples, j, i, sp)
			if !usable || errAt > tolerance {
				continue
			}
			count := dp[j].count + 1
			worst := math.Max(dp[j].maxErr, errAt)
			if bestCount < 0 || count < bestCount || (count == bestCount && worst < bestErr) {
				bestCount = count
				bestErr = worst
				bestPred = j
			}
		}
		if bestPred < 0 {
			// No feasible predecessor within tolerance. The adjacent j = i-1
			// pair has no interior samples, so this only happens when its
			// split fails (near-antiparallel tangents); fall back to the
			// immediate predecessor so the approximation always makes
			// progress.
			bestPred = i - 1
			bestCount = dp[i-1].count + 1
			bestErr = dp[i-1].maxErr
		}
		dp[i] = dpEntry{count: bestCount, maxErr: bestErr, pred: bestPred}
	}

	var chain []int
	for at := n - 1; at >= 0; at = dp[at].pred {
		chain = append(chain, at)
		if at == 0 {
			break
		}
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	for k := 1; k < len(chain); k++ {
		emitBiarc(dst, samples[chain[k-1]], samples[chain[k]])
	}
}

// emitBiarc computes the split between s0 and s1 and emits its two arcTo
// commands (or a single straight line if the split is degenerate).
func emitBiarc(dst pen.Pen, s0, s1 Sample) {
	sp := splitBiarc(s0.point(), s0.tangent(), s1.point(), s1.tangent())
	if !sp.ok {
		dst.ArcTo(s1.X, s1.Y, 0)
		return
	}
	turn1 := math.Asin(clamp(sp.t0.cross(sp.tm)))
	turn2 := math.Asin(clamp(sp.tm.cross(sp.t1)))
	dst.ArcTo(sp.pm.x, sp.pm.y, turn1)
	dst.ArcTo(s1.X, s1.Y, turn2)
}

func clamp(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
