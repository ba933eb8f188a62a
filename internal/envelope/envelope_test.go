package envelope

import (
	"testing"

	"github.com/mtimmerm/gearcutter/internal/gearcut"
	"github.com/mtimmerm/gearcutter/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_TwoConstantRadiusCutsPicksSmaller(t *testing.T) {
	segs := []gearcut.Segment{
		{StartAngle: -0.5, EndAngle: 0.5, Rotation: 0, Curve: &geom.ConstantRadiusCut{R: 2}},
		{StartAngle: -0.5, EndAngle: 0.5, Rotation: 0, Curve: &geom.ConstantRadiusCut{R: 1}},
	}
	out := Normalize(segs, 1)
	require.Len(t, out, 1)
	assert.Equal(t, &geom.ConstantRadiusCut{R: 1}, out[0].Curve)
	assert.InDelta(t, -0.5, out[0].StartAngle, 1e-9)
	assert.InDelta(t, 0.5, out[0].EndAngle, 1e-9)
}

func TestNormalize_CrossoverStitchesContinuously(t *testing.T) {
	// Two constant-radius cuts overlapping on [-0.01, 0.01]: the smaller
	// radius wins throughout the overlap, so the stitch lands where that cut
	// ends (near 0.01), and both neighbors must share that one angle.
	segs := []gearcut.Segment{
		{StartAngle: -0.5, EndAngle: 0.01, Rotation: 0, Curve: &geom.ConstantRadiusCut{R: 1}},
		{StartAngle: -0.01, EndAngle: 0.5, Rotation: 0, Curve: &geom.ConstantRadiusCut{R: 2}},
	}
	out := Normalize(segs, 1)
	require.Len(t, out, 2)
	assert.InDelta(t, out[0].EndAngle, out[1].StartAngle, 1e-9)
}

func TestNormalize_CoversFullWindow(t *testing.T) {
	segs := []gearcut.Segment{
		{StartAngle: -0.5, EndAngle: 0.5, Rotation: 0, Curve: &geom.ConstantRadiusCut{R: 1}},
	}
	out := Normalize(segs, 1)
	require.NotEmpty(t, out)
	assert.InDelta(t, -0.5, out[0].StartAngle, 1e-9)
	assert.InDelta(t, 0.5, out[len(out)-1].EndAngle, 1e-9)
}
