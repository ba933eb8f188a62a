package rack

import (
	"testing"

	"github.com/mtimmerm/gearcutter/internal/pen/recpen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ClosureAndPitchAdvance(t *testing.T) {
	rec := recpen.New()
	Build(rec, DefaultRackProps())

	cmds := rec.Commands()
	require.Len(t, cmds, 5, "moveTo + four arcTos")
	assert.Equal(t, recpen.OpMove, cmds[0].Op)
	for _, c := range cmds[1:] {
		assert.Equal(t, recpen.OpArc, c.Op)
		assert.Equal(t, 0.0, c.Turn, "rack edges are straight")
	}

	first, last := cmds[0], cmds[len(cmds)-1]
	assert.InDelta(t, first.Y, last.Y, 1e-12, "rack closure: same y at start and end")
	assert.InDelta(t, first.X+1, last.X, 1e-9, "pitch advances by exactly one module")
}

func TestBuild_ZeroPressureAngleIsSquareWave(t *testing.T) {
	props := DefaultRackProps()
	props.PressureAngleDeg = 0

	rec := recpen.New()
	Build(rec, props)
	cmds := rec.Commands()

	// With zero pressure angle, the flanks are vertical: x is unchanged
	// across the first and third edges.
	assert.InDelta(t, cmds[0].X, cmds[1].X, 1e-9)
	assert.InDelta(t, cmds[2].X, cmds[3].X, 1e-9)
}

func TestBuild_BacklashWidensOneFlankAndNarrowsTheOther(t *testing.T) {
	nominal := DefaultRackProps()
	backlashed := nominal
	backlashed.BalanceAbsPercent = 0.2

	recNominal := recpen.New()
	Build(recNominal, nominal)
	cmdsNominal := recNominal.Commands()
	leftNominal, rightNominal := cmdsNominal[0].X, cmdsNominal[3].X
	center := (leftNominal + rightNominal) / 2

	recShifted := recpen.New()
	Build(recShifted, backlashed)
	cmdsShifted := recShifted.Commands()
	leftShifted, rightShifted := cmdsShifted[0].X, cmdsShifted[3].X

	// A uniform shift moves both flanks by the same amount, which (measured
	// against the nominal, unshifted tooth center) grows one flank's offset
	// and shrinks the other's, rather than widening the gap symmetrically on
	// both sides.
	assert.InDelta(t, rightShifted-leftShifted, rightNominal-leftNominal, 1e-9, "gap width is unchanged by a uniform shift")

	leftOffsetNominal := center - leftNominal
	leftOffsetShifted := center - leftShifted
	rightOffsetNominal := rightNominal - center
	rightOffsetShifted := rightShifted - center

	assert.Less(t, leftOffsetShifted, leftOffsetNominal, "left flank's offset from the nominal center shrinks")
	assert.Greater(t, rightOffsetShifted, rightOffsetNominal, "right flank's offset from the nominal center grows")
}

func TestBuild_InternalSwapsBalanceAndClearance(t *testing.T) {
	external := DefaultRackProps()
	external.BalancePercent = 70
	external.TopClrPercent = 0.1
	external.BotClrPercent = 0.2
	external.BalanceAbsPercent = 0.05

	internal := external
	internal.Internal = true

	recExt := recpen.New()
	Build(recExt, external)
	recInt := recpen.New()
	Build(recInt, internal)

	// Internal flag must actually change the emitted geometry relative to
	// the external rack with the same nominal inputs.
	assert.NotEqual(t, recExt.Commands(), recInt.Commands())
}
