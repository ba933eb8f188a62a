package recpen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_RecordsMoveAndArc(t *testing.T) {
	r := New()
	r.MoveTo(0, 0)
	r.ArcTo(1, 1, 0.5)

	cmds := r.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, OpMove, cmds[0].Op)
	assert.Equal(t, OpArc, cmds[1].Op)
	assert.Equal(t, 0.5, cmds[1].Turn)
}

func TestRecorder_ArcToPanicsWithoutCurrentPoint(t *testing.T) {
	r := New()
	assert.Panics(t, func() { r.ArcTo(1, 1, 0) })
}

func TestRecorder_DiscardsExactDuplicatePoint(t *testing.T) {
	r := New()
	r.MoveTo(5, 5)
	r.ArcTo(5, 5, 0.3)
	assert.Len(t, r.Commands(), 1, "a zero-length arcTo is discarded entirely")
}

func TestRecorder_SnapsShortArcToLine(t *testing.T) {
	r := New()
	r.MoveTo(0, 0)
	r.ArcTo(1e-5, 1e-5, 0.7)
	cmds := r.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, 0.0, cmds[1].Turn, "a sub-threshold chord clamps turn to zero rather than being discarded")
}

func TestRecorder_BoundingBox(t *testing.T) {
	r := New()
	r.MoveTo(0, 0)
	r.ArcTo(3, -2, 0)
	r.ArcTo(-1, 5, 0.1)

	minX, minY, maxX, maxY, ok := r.BoundingBox()
	require.True(t, ok)
	assert.Equal(t, -1.0, minX)
	assert.Equal(t, -2.0, minY)
	assert.Equal(t, 3.0, maxX)
	assert.Equal(t, 5.0, maxY)
}

func TestRecorder_BoundingBoxEmptyWhenUnused(t *testing.T) {
	r := New()
	_, _, _, _, ok := r.BoundingBox()
	assert.False(t, ok)
}

func TestRecorder_ReplayFeedsDelegateInOrder(t *testing.T) {
	r := New()
	r.MoveTo(0, 0)
	r.ArcTo(1, 0, 0)
	r.ArcTo(1, 1, 0.2)

	dst := New()
	r.Replay(dst)
	assert.Equal(t, r.Commands(), dst.Commands())
}

func TestRecorder_Reset(t *testing.T) {
	r := New()
	r.MoveTo(0, 0)
	r.ArcTo(1, 1, 0.1)
	r.Reset()
	assert.Empty(t, r.Commands())
	assert.Panics(t, func() { r.ArcTo(1, 1, 0) }, "reset clears the current point too")
}
