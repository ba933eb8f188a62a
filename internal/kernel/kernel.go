// Package kernel orchestrates one full tooth render: rack path -> gear
// cutter -> lower-envelope normalizer -> per-segment biarc sampling ->
// output Pen. This is the top-level data flow of spec.md §2.
package kernel

import (
	"math"

	"github.com/google/uuid"

	"github.com/mtimmerm/gearcutter/internal/envelope"
	"github.com/mtimmerm/gearcutter/internal/gearcut"
	"github.com/mtimmerm/gearcutter/internal/pen"
	"github.com/mtimmerm/gearcutter/internal/rack"
)

// GearProps is the gear-cutter-level configuration, layered on top of a
// RackProps.
type GearProps struct {
	Rack        rack.RackProps
	NTeeth      int
	PitchRadius float64
	FaceTol     float64
	FilletTol   float64
}

// DefaultGearProps returns a 14-tooth gear at default rack settings with
// the face/fillet tolerances of spec.md's S1 scenario.
func DefaultGearProps() GearProps {
	const nTeeth = 14
	return GearProps{
		Rack:        rack.DefaultRackProps(),
		NTeeth:      nTeeth,
		PitchRadius: PitchRadius(nTeeth),
		FaceTol:     0.0005,
		FilletTol:   0.005,
	}
}

// PitchRadius returns nTeeth/(2*pi) module units: the no-slip radius at
// which rack velocity equals blank tangential velocity.
func PitchRadius(nTeeth int) float64 {
	return float64(nTeeth) / (2 * math.Pi)
}

// RenderResult is the outcome of one kernel.Render call.
type RenderResult struct {
	RunID     uuid.UUID
	Envelope  []envelope.Segment
	ArcCount  int
	MinRadius float64
	MaxRadius float64
}

// Render builds the rack path, cuts one tooth, normalizes the lower
// envelope, and draws every envelope segment (split at its curve's
// discontinuities) into dst via biarc-approximated arcs, returning summary
// metadata about the render tagged with a fresh RunID.
func Render(props GearProps, dst pen.Pen) RenderResult {
	gc := gearcut.New(props.NTeeth, props.PitchRadius, props.FaceTol, props.FilletTol)
	rack.Build(gc, props.Rack)

	dadt := 2 * math.Pi / float64(props.NTeeth)
	env := envelope.Normalize(gc.Path, dadt)

	result := RenderResult{
		RunID:     uuid.New(),
		Envelope:  env,
		MinRadius: math.Inf(1),
		MaxRadius: math.Inf(-1),
	}

	first := true
	for _, seg := range env {
		result.ArcCount += drawSegment(dst, seg, props, dadt, first)
		first = false

		lo, hi := radiusRange(seg, dadt)
		if lo < result.MinRadius {
			result.MinRadius = lo
		}
		if hi > result.MaxRadius {
			result.MaxRadius = hi
		}
	}
	return result
}

// drawSegment sets the curve's tolerance according to whether this segment
// is a fillet (point-cut, spans a near-full tooth) or a tooth face, splits
// it at any internal discontinuity, and draws each piece. It returns the
// number of DrawSegment pieces drawn, a lower bound on the arc count used
// only for reporting.
func drawSegment(dst pen.Pen, seg envelope.Segment, props GearProps, dadt float64, doInitialMove bool) int {
	loTheta := (seg.StartAngle - seg.Rotation) * dadt
	hiTheta := (seg.EndAngle - seg.Rotation) * dadt
	lo, hi := loTheta, hiTheta
	if lo > hi {
		lo, hi = hi, lo
	}

	if setter, ok := seg.Curve.(toleranceSetter); ok {
		if isFilletSpan(seg) {
			setter.SetTol(props.FilletTol)
		} else {
			setter.SetTol(props.FaceTol)
		}
	}

	cuts := seg.Curve.GetDiscontinuityThetas(lo, hi)
	bounds := append([]float64{loTheta}, cuts...)
	bounds = append(bounds, hiTheta)

	count := 0
	move := doInitialMove
	for i := 0; i+1 < len(bounds); i++ {
		seg.Curve.DrawSegment(dst, bounds[i], bounds[i+1], move)
		move = false
		count++
	}
	return count
}

// toleranceSetter is implemented by cut curves whose subdivision tolerance
// is configured per draw, rather than fixed at construction — circle cuts
// shared between a tooth face and a fillet use each role's tolerance.
type toleranceSetter interface {
	SetTol(tol float64)
}

// isFilletSpan reports whether seg looks like a point-cut's full-tooth
// span (width close to 1 tooth) rather than a trimmed tooth-face/edge
// fragment.
func isFilletSpan(seg envelope.Segment) bool {
	w := seg.EndAngle - seg.StartAngle
	return w > 0.9
}

// radiusRange samples seg's curve across its angular span to estimate the
// min/max radius it contributes, for render-summary reporting only (not
// used by the geometric core itself).
func radiusRange(seg envelope.Segment, dadt float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	const samples = 8
	for i := 0; i <= samples; i++ {
		frac := float64(i) / samples
		a := seg.StartAngle + (seg.EndAngle-seg.StartAngle)*frac
		r := seg.Curve.GetR((a - seg.Rotation) * dadt)
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}
	return lo, hi
}
