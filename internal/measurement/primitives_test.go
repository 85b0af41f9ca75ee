package measurement

import (
	"testing"

	"github.com/philipparndt/armeasure/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitivesForStarted(t *testing.T) {
	p := geometry.NewVector3(1, 0, 1)
	prims := PrimitivesFor(Started{Point: p})

	require.Len(t, prims.Markers, 1)
	assert.Equal(t, Marker{Position: p, Radius: MarkerRadius}, prims.Markers[0])
	assert.Nil(t, prims.Segment)
	assert.Nil(t, prims.Label)
}

func TestPrimitivesForCompleted(t *testing.T) {
	start := geometry.NewVector3(0, 0, 0)
	end := geometry.NewVector3(0.3731, 0, 0)
	prims := PrimitivesFor(Completed{Result: NewResult(start, end)})

	require.Len(t, prims.Markers, 2)
	assert.Equal(t, start, prims.Markers[0].Position)
	assert.Equal(t, end, prims.Markers[1].Position)

	require.NotNil(t, prims.Label)
	assert.Equal(t, "37.31 cm", prims.Label.Text)
	assert.True(t, prims.Label.Position.ApproxEqual(geometry.NewVector3(0.3731, 0.05, 0), 1e-12))

	require.NotNil(t, prims.Segment)
	seg := prims.Segment
	assert.InDelta(t, 0.3731, seg.Length, 1e-12)
	assert.Equal(t, SegmentThickness, seg.Thickness)
	assert.True(t, seg.Center.ApproxEqual(geometry.NewVector3(0.18655, 0, 0), 1e-12))

	// the prism's local +Z axis must point from start to end
	axis := seg.Orientation.Rotate(geometry.Forward)
	assert.True(t, axis.ApproxEqual(geometry.NewVector3(1, 0, 0), 1e-9), "axis %v", axis)
}

func TestPrimitivesForDegenerateSkipsSegment(t *testing.T) {
	p := geometry.NewVector3(0.2, 0.2, 0.2)
	prims := PrimitivesFor(Completed{Result: NewResult(p, p)})

	assert.Len(t, prims.Markers, 2)
	assert.Nil(t, prims.Segment)
	require.NotNil(t, prims.Label)
	assert.Equal(t, "0.00 cm", prims.Label.Text)
}

func TestPrimitivesForNil(t *testing.T) {
	assert.Equal(t, Primitives{}, PrimitivesFor(nil))
}
