// Package envelope reduces a multiset of polar cut segments spanning one
// tooth into a single lower-envelope polar path: the exact tooth boundary.
package envelope

import (
	"container/heap"
	"math"
	"sort"

	"github.com/mtimmerm/gearcutter/internal/gearcut"
	"github.com/mtimmerm/gearcutter/internal/geom"
)

// BottomTolerance is the radius slack within which a cut segment is
// considered a candidate winner alongside the true minimum-radius cut at a
// probe angle.
const BottomTolerance = 1e-5

// probeSpacing is the target angular spacing, in teeth, between sampling
// probes placed between consecutive event angles.
const probeSpacing = 0.001

// probeMargin is the minimum distance, in teeth, a probe is kept away from
// any event angle (segment boundary or curve discontinuity).
const probeMargin = 1e-6

// Segment is one contributor to the normalized envelope: over
// [StartAngle, EndAngle] teeth, Curve (rotated by Rotation teeth) is the
// minimum-radius cut.
type Segment struct {
	StartAngle, EndAngle float64
	Rotation             float64
	Curve                geom.CutCurve
}

type inputSeg = gearcut.Segment

// localTheta converts a global probe angle (teeth) into the curve's own
// theta argument (radians).
func localTheta(seg inputSeg, dadt, a float64) float64 {
	return (a - seg.Rotation) * dadt
}

// segHeap is a min-heap of input segments keyed by ascending StartAngle,
// used to admit segments into the active set in order as the sweep
// progresses.
type segHeap []inputSeg

func (h segHeap) Len() int           { return len(h) }
func (h segHeap) Less(i, j int) bool { return h[i].StartAngle < h[j].StartAngle }
func (h segHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *segHeap) Push(x any)        { *h = append(*h, x.(inputSeg)) }
func (h *segHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Normalize wraps every input segment's span into the canonical tooth
// window (-0.5, +0.5] teeth (splitting spans that cross the boundary),
// sweeps a dense probe grid over a min-heap-admitted active set tracking
// the minimum-radius candidates, and returns the resulting disjoint
// envelope segments covering the full window, refined so adjacent segments
// meet exactly at their true crossover angle.
//
// dadt is radians per teeth-unit (i.e. dadTooth from the gear cutter that
// produced segs).
func Normalize(segs []inputSeg, dadt float64) []Segment {
	wrapped := wrapAll(segs)
	if len(wrapped) == 0 {
		return nil
	}

	events := collectEvents(wrapped, dadt)
	probes := buildProbes(events)

	h := &segHeap{}
	heap.Init(h)
	for _, s := range wrapped {
		heap.Push(h, s)
	}

	var out []Segment
	var activeSet []inputSeg
	var prevCandidates []inputSeg
	var candidateStart float64
	prevProbe := -0.5

	commit := func(upto float64) {
		if len(prevCandidates) == 0 {
			return
		}
		rep := bestRadiusSegment(prevCandidates, dadt, (candidateStart+upto)/2)
		out = append(out, Segment{StartAngle: candidateStart, EndAngle: upto, Rotation: rep.Rotation, Curve: rep.Curve})
	}

	for _, a := range probes {
		for h.Len() > 0 && (*h)[0].StartAngle <= a {
			activeSet = append(activeSet, heap.Pop(h).(inputSeg))
		}
		filtered := activeSet[:0:0]
		for _, s := range activeSet {
			if s.EndAngle > a {
				filtered = append(filtered, s)
			}
		}
		activeSet = filtered

		if len(activeSet) == 0 {
			// The previous candidate set was still valid at prevProbe; commit
			// its range there rather than at a, so the next segment's start
			// (seeded below at a) leaves refine() a real interval to bisect
			// instead of a single repeated boundary value.
			commit(prevProbe)
			prevCandidates = nil
			prevProbe = a
			continue
		}

		minR := math.Inf(1)
		for _, s := range activeSet {
			if r := s.Curve.GetR(localTheta(s, dadt, a)); r < minR {
				minR = r
			}
		}
		var candidates []inputSeg
		for _, s := range activeSet {
			if r := s.Curve.GetR(localTheta(s, dadt, a)); r <= minR+BottomTolerance {
				candidates = append(candidates, s)
			}
		}

		inter := intersectByIdentity(prevCandidates, candidates)
		switch {
		case prevCandidates == nil:
			// A run that begins at the first probe starts at the window
			// edge; one that follows an empty stretch starts at its probe.
			candidateStart = a
			if prevProbe == -0.5 {
				candidateStart = -0.5
			}
			prevCandidates = candidates
		case len(inter) == 0:
			commit(prevProbe)
			candidateStart = a
			prevCandidates = candidates
		default:
			prevCandidates = inter
		}
		prevProbe = a
	}
	commit(0.5)

	refine(out, dadt)
	return out
}

// wrapAll wraps every segment's angular span into (-0.5, +0.5] teeth,
// splitting any span that crosses the boundary into two pieces referencing
// the same curve and rotation.
func wrapAll(segs []inputSeg) []inputSeg {
	var out []inputSeg
	for _, s := range segs {
		if s.EndAngle <= s.StartAngle {
			continue
		}
		if s.EndAngle-s.StartAngle >= 1 {
			// Spans a full period or more: cover the whole window once.
			out = append(out, inputSeg{StartAngle: -0.5, EndAngle: 0.5, Rotation: s.Rotation, Curve: s.Curve})
			continue
		}
		lo, hi := wrapToWindow(s.StartAngle), wrapToWindow(s.EndAngle)
		if lo < hi || (lo == -0.5 && hi == 0.5) {
			out = append(out, inputSeg{StartAngle: lo, EndAngle: hi, Rotation: s.Rotation, Curve: s.Curve})
		} else {
			// Crosses the window boundary: split into [lo, 0.5] and
			// [-0.5, hi].
			out = append(out, inputSeg{StartAngle: lo, EndAngle: 0.5, Rotation: s.Rotation, Curve: s.Curve})
			out = append(out, inputSeg{StartAngle: -0.5, EndAngle: hi, Rotation: s.Rotation, Curve: s.Curve})
		}
	}
	return out
}

func wrapToWindow(a float64) float64 {
	a = math.Mod(a+0.5, 1)
	if a <= 0 {
		a += 1
	}
	return a - 0.5
}

// collectEvents gathers every segment boundary and curve discontinuity
// (translated into tooth units), deduplicated and sorted.
func collectEvents(segs []inputSeg, dadt float64) []float64 {
	set := map[float64]struct{}{-0.5: {}, 0.5: {}}
	for _, s := range segs {
		set[s.StartAngle] = struct{}{}
		set[s.EndAngle] = struct{}{}
		loTheta := (s.StartAngle - s.Rotation) * dadt
		hiTheta := (s.EndAngle - s.Rotation) * dadt
		lo, hi := loTheta, hiTheta
		if lo > hi {
			lo, hi = hi, lo
		}
		for _, th := range s.Curve.GetDiscontinuityThetas(lo, hi) {
			set[th/dadt+s.Rotation] = struct{}{}
		}
	}
	events := make([]float64, 0, len(set))
	for e := range set {
		if e >= -0.5 && e <= 0.5 {
			events = append(events, e)
		}
	}
	sort.Float64s(events)
	return events
}

// buildProbes places a dense grid of sample angles between consecutive
// events, staying at least probeMargin away from any event.
func buildProbes(events []float64) []float64 {
	var probes []float64
	for i := 0; i+1 < len(events); i++ {
		lo, hi := events[i]+probeMargin, events[i+1]-probeMargin
		if hi <= lo {
			continue
		}
		n := int(math.Ceil((hi - lo) / probeSpacing))
		if n < 1 {
			n = 1
		}
		for k := 0; k <= n; k++ {
			t := lo + (hi-lo)*float64(k)/float64(n)
			probes = append(probes, t)
		}
	}
	if len(probes) == 0 {
		probes = append(probes, 0)
	}
	return probes
}

// bestRadiusSegment returns, among candidates, the one with the smallest
// radius at angle a, used as the representative cut for a committed
// envelope segment.
func bestRadiusSegment(candidates []inputSeg, dadt, a float64) inputSeg {
	best := candidates[0]
	bestR := best.Curve.GetR(localTheta(best, dadt, a))
	for _, c := range candidates[1:] {
		if r := c.Curve.GetR(localTheta(c, dadt, a)); r < bestR {
			best, bestR = c, r
		}
	}
	return best
}

// intersectByIdentity returns the elements of b whose (Curve, Rotation,
// StartAngle, EndAngle) identity also appears in a.
func intersectByIdentity(a, b []inputSeg) []inputSeg {
	if a == nil {
		return nil
	}
	seen := make(map[inputSeg]bool, len(a))
	for _, s := range a {
		seen[s] = true
	}
	var out []inputSeg
	for _, s := range b {
		if seen[s] {
			out = append(out, s)
		}
	}
	return out
}

// refine float-binary-searches the true crossover angle between each
// adjacent committed pair and snaps their shared boundary to it, so the
// radius function is continuous at every stitch.
func refine(segs []Segment, dadt float64) {
	for i := 0; i+1 < len(segs); i++ {
		lo, hi := &segs[i], &segs[i+1]
		if hi.StartAngle-lo.EndAngle < 1e-9 && hi.StartAngle >= lo.EndAngle {
			continue
		}
		a, b := lo.EndAngle, hi.StartAngle
		if a > b {
			a, b = b, a
		}
		pred := func(x float64) bool {
			rLo := lo.Curve.GetR((x - lo.Rotation) * dadt)
			rHi := hi.Curve.GetR((x - hi.Rotation) * dadt)
			return rLo < rHi
		}
		var l, hh float64
		if pred(a) {
			l, hh = geom.FloatBinarySearch(a, b, pred)
		} else if !pred(b) {
			l, hh = geom.FloatBinarySearch(b, a, func(x float64) bool { return !pred(x) })
		} else {
			continue
		}
		cross := (l + hh) / 2
		lo.EndAngle = cross
		hi.StartAngle = cross
	}
}
