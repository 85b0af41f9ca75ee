package tracking

import (
	"context"
	"testing"

	"github.com/philipparndt/armeasure/pkg/geometry"
	"github.com/philipparndt/armeasure/pkg/stl"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type viewpointFunc func(ScreenPoint) geometry.Ray

func (f viewpointFunc) RayThrough(p ScreenPoint) geometry.Ray { return f(p) }

func fixedRay(origin, dir geometry.Vector3) Viewpoint {
	return viewpointFunc(func(ScreenPoint) geometry.Ray { return geometry.NewRay(origin, dir) })
}

func v(x, y, z float64) geometry.Vector3 { return geometry.NewVector3(x, y, z) }

func tri(a, b, c geometry.Vector3) geometry.Triangle {
	return geometry.NewTriangle(geometry.Vector3{}, a, b, c)
}

// room is a 2x2 m floor at y=0 with a 2 m wall at z=-1 facing +Z
func room() *stl.Model {
	m := stl.NewModel("room")
	m.AddTriangle(tri(v(-1, 0, -1), v(-1, 0, 1), v(1, 0, 1)))
	m.AddTriangle(tri(v(-1, 0, -1), v(1, 0, 1), v(1, 0, -1)))
	m.AddTriangle(tri(v(-1, 0, -1), v(1, 0, -1), v(1, 2, -1)))
	m.AddTriangle(tri(v(-1, 0, -1), v(1, 2, -1), v(-1, 2, -1)))
	// a small chip under the floor: too small to be a plane, hidden from above
	m.AddTriangle(tri(v(0.5, -0.5, 0.2), v(0.5, -0.5, 0.25), v(0.55, -0.5, 0.2)))
	return m
}

func runningWorld(t *testing.T, vp Viewpoint, cfg Configuration) *MeshWorld {
	t.Helper()
	w := NewMeshWorld(room(), vp, DefaultOptions(), zerolog.Nop())
	require.NoError(t, w.Run(context.Background(), cfg))
	return w
}

func TestDetectPlanes(t *testing.T) {
	opts := DefaultOptions().Planes
	tris := room().Triangles
	tilted := tri(v(3, 0.5, 0), v(3.5, 1, 0), v(3, 0.5, 0.5))
	tris = append(tris, tilted)

	planes, err := DetectPlanes(context.Background(), tris, Horizontal|Vertical, opts)
	require.NoError(t, err)
	require.Len(t, planes, 2)

	floor, wall := planes[0], planes[1]
	assert.Equal(t, AlignmentHorizontal, floor.Alignment)
	assert.InDelta(t, 4.0, floor.Area, 1e-9)
	assert.True(t, floor.Normal.ApproxEqual(v(0, 1, 0), 1e-9))
	assert.Len(t, floor.Extent, 2)

	assert.Equal(t, AlignmentVertical, wall.Alignment)
	assert.True(t, wall.Normal.ApproxEqual(v(0, 0, 1), 1e-9))
	assert.Equal(t, 1, wall.ID)

	planes, err = DetectPlanes(context.Background(), tris, Horizontal, opts)
	require.NoError(t, err)
	require.Len(t, planes, 1)
	assert.Equal(t, AlignmentHorizontal, planes[0].Alignment)
}

func TestDetectPlanesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DetectPlanes(ctx, room().Triangles, Horizontal|Vertical, DefaultOptions().Planes)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHitTestRequiresRunning(t *testing.T) {
	w := NewMeshWorld(room(), fixedRay(v(0, 1, 0), v(0, -1, 0)), DefaultOptions(), zerolog.Nop())

	_, err := w.HitTest(ScreenPoint{})
	assert.ErrorIs(t, err, ErrNotRunning)

	require.NoError(t, w.Run(context.Background(), DefaultConfiguration()))
	assert.True(t, w.Running())

	w.Pause()
	_, err = w.HitTest(ScreenPoint{})
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestHitTestPlaneExtent(t *testing.T) {
	w := runningWorld(t, fixedRay(v(0.3, 1, -0.2), v(0, -1, 0)), DefaultConfiguration())

	hits, err := w.HitTest(ScreenPoint{X: 10, Y: 10})
	require.NoError(t, err)
	require.Len(t, hits, 1)

	assert.Equal(t, PlaneExtent, hits[0].Kind)
	assert.True(t, hits[0].Position.ApproxEqual(v(0.3, 0, -0.2), 1e-9))
	assert.InDelta(t, 1.0, hits[0].Distance, 1e-9)
}

func TestHitTestHiddenFeatureIgnored(t *testing.T) {
	w := runningWorld(t, fixedRay(v(0.5, 1, 0.2), v(0, -1, 0)), DefaultConfiguration())

	hits, err := w.HitTest(ScreenPoint{})
	require.NoError(t, err)
	for _, h := range hits {
		assert.Equal(t, PlaneExtent, h.Kind, "vertex under the floor must not be hit")
	}
}

func TestHitTestFeaturePointRanksFirst(t *testing.T) {
	w := runningWorld(t, fixedRay(v(1, 1, 1), v(0, -1, 0)), DefaultConfiguration())

	hits, err := w.HitTest(ScreenPoint{})
	require.NoError(t, err)
	require.NotEmpty(t, hits)

	assert.Equal(t, FeaturePoint, hits[0].Kind)
	assert.Equal(t, v(1, 0, 1), hits[0].Position)
}

func TestHitTestRespectsDetection(t *testing.T) {
	toWall := fixedRay(v(0.5, 0.5, 1), v(0, 0, -1))

	w := runningWorld(t, toWall, DefaultConfiguration())
	hits, err := w.HitTest(ScreenPoint{})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 1, hits[0].PlaneID)
	assert.True(t, hits[0].Position.ApproxEqual(v(0.5, 0.5, -1), 1e-9))

	w = runningWorld(t, toWall, Configuration{PlaneDetection: Horizontal})
	hits, err = w.HitTest(ScreenPoint{})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestReloadRedetects(t *testing.T) {
	w := runningWorld(t, fixedRay(v(0, 1, 0), v(0, -1, 0)), DefaultConfiguration())
	require.Len(t, w.Planes(), 2)

	floorOnly := stl.NewModel("floor")
	floorOnly.Triangles = room().Triangles[:2]
	require.NoError(t, w.Reload(context.Background(), floorOnly))

	assert.Len(t, w.Planes(), 1)
	assert.Equal(t, 4, w.FeatureCount())
	assert.Equal(t, "floor", w.Model().Name)
}

func TestPlaneDetectionString(t *testing.T) {
	assert.Equal(t, "horizontal|vertical", DefaultConfiguration().PlaneDetection.String())
	assert.Equal(t, "none", PlaneDetection(0).String())
}
