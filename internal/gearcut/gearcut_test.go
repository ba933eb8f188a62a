package gearcut

import (
	"testing"

	"github.com/mtimmerm/gearcutter/internal/rack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildCutter(t *testing.T, props rack.RackProps) *GearCutter {
	t.Helper()
	gc := New(14, 14/(2*3.141592653589793), 0.0005, 0.005)
	rack.Build(gc, props)
	return gc
}

func TestGearCutter_ProducesPointAndEdgeCuts(t *testing.T) {
	gc := buildCutter(t, rack.DefaultRackProps())
	require.NotEmpty(t, gc.Path)

	var pointCuts, edgeCuts int
	for _, seg := range gc.Path {
		if seg.EndAngle-seg.StartAngle > 0.9 && seg.EndAngle-seg.StartAngle < 1.1 {
			pointCuts++
		} else {
			edgeCuts++
		}
	}
	assert.Greater(t, pointCuts, 0, "expected at least one full-tooth point cut")
	assert.Greater(t, edgeCuts, 0, "expected at least one edge cut")
}

func TestGearCutter_RejectsNonPositiveVertex(t *testing.T) {
	gc := New(14, 2, 0.0005, 0.005)
	assert.Panics(t, func() {
		gc.MoveTo(-1, 0)
	})
}

func TestGearCutter_RejectsCurvedEdge(t *testing.T) {
	gc := New(14, 2, 0.0005, 0.005)
	gc.MoveTo(0.1, 0)
	assert.Panics(t, func() {
		gc.ArcTo(0.2, 0.1, 0.1)
	})
}

func TestGearCutter_MemoizesPointCurveByX(t *testing.T) {
	gc := New(14, 2, 0.0005, 0.005)
	gc.MoveTo(0.3, 0.1)
	c1 := gc.pointCurve(0.3)
	c2 := gc.pointCurve(0.3)
	assert.Same(t, c1, c2, "identical vertex x should share one memoized curve")
}
