package toolpath

import (
	"math"
	"testing"

	"github.com/mtimmerm/gearcutter/internal/pen/recpen"
	"github.com/stretchr/testify/assert"
)

func TestFromRecorder_StraightLine(t *testing.T) {
	rec := recpen.New()
	rec.MoveTo(0, 0)
	rec.ArcTo(3, 4, 0)

	est := FromRecorder(rec)
	assert.InDelta(t, 5.0, est.LengthModuleUnits, 1e-9)
	assert.Equal(t, 1, est.LineCount)
	assert.Equal(t, 0, est.ArcCount)
}

func TestFromRecorder_QuarterCircle(t *testing.T) {
	rec := recpen.New()
	rec.MoveTo(1, 0)
	rec.ArcTo(0, 1, math.Pi/2)

	est := FromRecorder(rec)
	assert.InDelta(t, math.Pi/2, est.LengthModuleUnits, 1e-6, "quarter circle of radius 1 has arc length pi/2")
	assert.Equal(t, 1, est.ArcCount)
}

func TestEstimate_TimeSeconds(t *testing.T) {
	est := Estimate{LengthModuleUnits: 10}
	assert.InDelta(t, 5.0, est.TimeSeconds(2), 1e-9)
	assert.Equal(t, 0.0, est.TimeSeconds(0))
}
