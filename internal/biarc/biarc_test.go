package biarc

import (
	"math"
	"testing"

	"github.com/mtimmerm/gearcutter/internal/pen/recpen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// circleSamples returns n evenly spaced samples around the unit circle,
// each tangent oriented for counterclockwise traversal.
func circleSamples(n int) []Sample {
	s := make([]Sample, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n-1)
		s[i] = Sample{
			X: math.Cos(theta), Y: math.Sin(theta),
			TX: -math.Sin(theta), TY: math.Cos(theta),
		}
	}
	return s
}

func TestApproximate_ExactCircleYieldsTwoArcs(t *testing.T) {
	samples := circleSamples(9)
	rec := recpen.New()
	Approximate(rec, samples, 1e-6, true)

	cmds := rec.Commands()
	require.GreaterOrEqual(t, len(cmds), 3, "moveTo + at least two arcTo")
	for _, c := range cmds[1:] {
		assert.Equal(t, recpen.OpArc, c.Op)
	}
}

func TestApproximate_RespectsMoveToFlag(t *testing.T) {
	samples := circleSamples(5)
	rec := recpen.New()
	rec.MoveTo(samples[0].X, samples[0].Y)
	Approximate(rec, samples, 1e-6, false)

	cmds := rec.Commands()
	require.NotEmpty(t, cmds)
	assert.Equal(t, recpen.OpMove, cmds[0].Op)
	moveCount := 0
	for _, c := range cmds {
		if c.Op == recpen.OpMove {
			moveCount++
		}
	}
	assert.Equal(t, 1, moveCount, "no extra moveTo issued when moveTo=false")
}

func TestApproximate_SinglePointOnlyMovesTo(t *testing.T) {
	rec := recpen.New()
	Approximate(rec, []Sample{{X: 1, Y: 2, TX: 1, TY: 0}}, 1e-6, true)
	assert.Len(t, rec.Commands(), 1)
}

func TestApproximate_TangentContinuityAtJoint(t *testing.T) {
	p0 := vec{0, 0}
	t0 := vec{1, 0}
	p1 := vec{1, 1}
	t1 := vec{0, 1}
	sp := splitBiarc(p0, t0, p1, t1)
	require.True(t, sp.ok)

	chord := p1.sub(p0).norm()
	assert.InDelta(t, chord.x, sp.tm.x, 1e-12)
	assert.InDelta(t, chord.y, sp.tm.y, 1e-12)
}

func TestPointToBiarcError_WithinToleranceForDenseSamples(t *testing.T) {
	samples := circleSamples(40)
	sp := splitBiarc(samples[0].point(), samples[0].tangent(), samples[len(samples)-1].point(), samples[len(samples)-1].tangent())
	require.True(t, sp.ok)
	for _, s := range samples[1 : len(samples)-1] {
		e := pointToBiarcError(s.point(), sp)
		assert.Less(t, e, 0.05)
	}
}
