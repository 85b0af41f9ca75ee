package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/armeasure/internal/config"
	"github.com/philipparndt/armeasure/internal/measurement"
	"github.com/philipparndt/armeasure/internal/tracking"
	"github.com/philipparndt/armeasure/pkg/geometry"
	"github.com/philipparndt/armeasure/pkg/stl"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// floorMM is a 2x2 m floor at y=0, in millimeters
const floorMM = `solid floor
facet normal 0 1 0
  outer loop
    vertex -1000 0 -1000
    vertex -1000 0 1000
    vertex 1000 0 1000
  endloop
endfacet
facet normal 0 1 0
  outer loop
    vertex -1000 0 -1000
    vertex 1000 0 1000
    vertex 1000 0 -1000
  endloop
endfacet
endsolid floor
`

type aim struct {
	origin geometry.Vector3
}

func (a *aim) RayThrough(tracking.ScreenPoint) geometry.Ray {
	return geometry.NewRay(a.origin, geometry.NewVector3(0, -1, 0))
}

func writeScene(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "floor.stl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func defaults(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	cfg.Scene.Watch = false
	return cfg
}

func TestLoadModelScalesToMeters(t *testing.T) {
	path := writeScene(t, floorMM)

	model, err := LoadModel(path, 0.001)
	require.NoError(t, err)

	size := model.BoundingBox().Size()
	assert.InDelta(t, 2.0, size.X, 1e-9)
	assert.InDelta(t, 2.0, size.Z, 1e-9)
}

func TestLoadModelRejectsOtherFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.obj")
	require.NoError(t, os.WriteFile(path, []byte(floorMM), 0o644))

	_, err := LoadModel(path, 1)
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestLoadModelEmpty(t *testing.T) {
	path := writeScene(t, "solid empty\nendsolid empty\n")

	_, err := LoadModel(path, 1)
	assert.ErrorIs(t, err, stl.ErrEmptyModel)
}

func TestOpenAndMeasure(t *testing.T) {
	cfg := defaults(t)
	vp := &aim{origin: geometry.NewVector3(0.3, 1, -0.2)}

	ws, err := Open(context.Background(), writeScene(t, floorMM), cfg, vp, zerolog.Nop())
	require.NoError(t, err)
	defer ws.Close()

	require.Len(t, ws.World.Planes(), 1)

	out, ok, err := ws.Coordinator.HandleTap(tracking.ScreenPoint{})
	require.NoError(t, err)
	require.True(t, ok)
	require.IsType(t, measurement.Started{}, out)

	vp.origin = geometry.NewVector3(-0.3, 1, 0.6)
	out, ok, err = ws.Coordinator.HandleTap(tracking.ScreenPoint{})
	require.NoError(t, err)
	require.True(t, ok)

	completed, isCompleted := out.(measurement.Completed)
	require.True(t, isCompleted)
	assert.InDelta(t, 1.0, completed.Result.Distance, 1e-9)
	assert.Equal(t, "100.00 cm", completed.Result.Text())
	assert.Equal(t, 2, ws.Scene.Len())
}

func TestReloadSwapsModel(t *testing.T) {
	cfg := defaults(t)
	path := writeScene(t, floorMM)

	ws, err := Open(context.Background(), path, cfg, &aim{}, zerolog.Nop())
	require.NoError(t, err)
	defer ws.Close()

	bigger := floorMM + `solid step
facet normal 0 1 0
  outer loop
    vertex 2000 500 2000
    vertex 2000 500 3000
    vertex 3000 500 3000
  endloop
endfacet
endsolid step
`
	require.NoError(t, os.WriteFile(path, []byte(bigger), 0o644))

	var reloaded *stl.Model
	ws.reload(context.Background(), func(m *stl.Model) { reloaded = m })

	require.NotNil(t, reloaded)
	assert.Same(t, reloaded, ws.Model())
}

func TestReloadKeepsSceneOnParseError(t *testing.T) {
	cfg := defaults(t)
	path := writeScene(t, floorMM)

	ws, err := Open(context.Background(), path, cfg, &aim{}, zerolog.Nop())
	require.NoError(t, err)
	defer ws.Close()

	before := ws.Model()
	require.NoError(t, os.WriteFile(path, []byte("solid broken\nfacet normal 0 0 1\n  outer loop\n    vertex 1 2\n"), 0o644))

	called := false
	ws.reload(context.Background(), func(*stl.Model) { called = true })

	assert.False(t, called)
	assert.Same(t, before, ws.Model())
}

func TestWatchDisabled(t *testing.T) {
	cfg := defaults(t)
	ws, err := Open(context.Background(), writeScene(t, floorMM), cfg, &aim{}, zerolog.Nop())
	require.NoError(t, err)

	require.NoError(t, ws.Watch(context.Background(), nil))
	assert.NoError(t, ws.Close())
}

func TestTrackingOptions(t *testing.T) {
	cfg := defaults(t)
	opts := TrackingOptions(cfg)

	assert.Equal(t, cfg.Tracking.FeatureTolerance, opts.FeatureTolerance)
	assert.InDelta(t, cfg.PlaneAngleRadians(), opts.Planes.AngleTolerance, 1e-12)
	assert.Equal(t, cfg.Tracking.MinPlaneArea, opts.Planes.MinArea)
}
