package pen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturePen is a minimal Pen recording exactly what it was called with, for
// asserting the transform's output directly against hand-computed values.
type capturePen struct {
	x, y, turn float64
	isMove     bool
}

func (c *capturePen) MoveTo(x, y float64) { c.x, c.y = x, y; c.isMove = true }
func (c *capturePen) ArcTo(x, y, turn float64) {
	c.x, c.y, c.turn = x, y, turn
	c.isMove = false
}

func TestTransform_IdentityPassesThrough(t *testing.T) {
	cap := &capturePen{}
	tr := NewTransform(cap)
	tr.MoveTo(1, 2)
	assert.Equal(t, 1.0, cap.x)
	assert.Equal(t, 2.0, cap.y)
}

func TestTransform_TranslateThenRotateComposesInCallOrder(t *testing.T) {
	cap := &capturePen{}
	tr := NewTransform(cap).Translate(1, 0).Rotate(90)
	tr.MoveTo(0, 0)
	assert.InDelta(t, 0, cap.x, 1e-9)
	assert.InDelta(t, 1, cap.y, 1e-9)
}

func TestTransform_RotateSnapsToExactMultiplesOf90(t *testing.T) {
	cap := &capturePen{}
	tr := NewTransform(cap).Rotate(90)
	tr.MoveTo(1, 0)
	assert.Equal(t, 0.0, cap.x, "90-degree rotate must snap to an exact zero, no trig round-off")
	assert.Equal(t, 1.0, cap.y)
}

func TestTransform_ScaleFlipYReversesArcTurn(t *testing.T) {
	cap := &capturePen{}
	tr := NewTransform(cap).Scale(2, true)
	tr.MoveTo(0, 0)
	tr.ArcTo(1, 1, 0.5)
	assert.InDelta(t, -0.5, cap.turn, 1e-12)
	assert.InDelta(t, 2, cap.x, 1e-12)
	assert.InDelta(t, -2, cap.y, 1e-12)
}

func TestTransform_DoubleFlipRestoresTurnSign(t *testing.T) {
	cap := &capturePen{}
	tr := NewTransform(cap).Scale(2, true).Scale(1, true)
	tr.MoveTo(0, 0)
	tr.ArcTo(1, 1, 0.5)
	assert.InDelta(t, 0.5, cap.turn, 1e-12)
}

func TestTransform_CopyIsIndependent(t *testing.T) {
	cap1, cap2 := &capturePen{}, &capturePen{}
	base := NewTransform(cap1).Translate(5, 5)
	clone := base.Copy()
	clone.delegate = cap2
	clone.Rotate(90)

	base.MoveTo(0, 0)
	clone.MoveTo(0, 0)

	assert.InDelta(t, 5, cap1.x, 1e-9)
	assert.InDelta(t, 5, cap1.y, 1e-9)
	assert.InDelta(t, -5, cap2.x, 1e-9)
	assert.InDelta(t, 5, cap2.y, 1e-9)
}

func TestTransform_ArcToPanicsWithoutCurrentPoint(t *testing.T) {
	tr := NewTransform(&capturePen{})
	assert.Panics(t, func() { tr.ArcTo(1, 1, 0) })
}

// TestTransform_ComposedActionMatchesDirectComposition checks that chaining
// translate/rotate/scale through a copied Transform agrees with evaluating
// the same composed affine map directly, for an arbitrary point.
func TestTransform_ComposedActionMatchesDirectComposition(t *testing.T) {
	const a, b, theta, s = 3.0, -2.0, 37.0, 1.7
	cap := &capturePen{}
	tr := NewTransform(cap).Translate(a, b).Rotate(theta).Scale(s, false).Copy()

	px, py := 0.6, -1.3
	tr.MoveTo(px, py)

	rad := theta * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	// direct composition: each call applies outside the accumulated transform,
	// so translate happens first, then rotate, then scale.
	tx, ty := px+a, py+b
	rx := tx*cos - ty*sin
	ry := tx*sin + ty*cos
	wantX, wantY := rx*s, ry*s

	require.InDelta(t, wantX, cap.x, 1e-9)
	require.InDelta(t, wantY, cap.y, 1e-9)
}
