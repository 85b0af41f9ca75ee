package viewer

import (
	"math"
	"testing"

	"github.com/philipparndt/armeasure/internal/tracking"
	"github.com/philipparndt/armeasure/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestCenterRayHitsTarget(t *testing.T) {
	bbox := geometry.NewBoundingBox()
	bbox.Extend(geometry.NewVector3(-1, 0, -1))
	bbox.Extend(geometry.NewVector3(1, 0.5, 1))

	cam := NewCamera(bbox)
	vp := &Viewport{Camera: cam, Width: 800, Height: 600}

	ray := vp.RayThrough(vp.Center())
	assert.InDelta(t, 0, ray.DistToPoint(cam.Target), 1e-9)
	assert.Greater(t, ray.Project(cam.Target), 0.0)
}

func TestProjectUnprojectRoundTrip(t *testing.T) {
	cam := &Camera{
		Target:   geometry.Vector3{},
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      math.Pi / 3,
		Distance: 2,
	}
	cam.Orbit(0.4, 0.3)

	point := geometry.NewVector3(0.2, 0.1, -0.3)
	x, y, depth := cam.Project(point, 640, 480)
	assert.Greater(t, depth, 0.0)

	ray := cam.Unproject(x, y, 640, 480)
	assert.InDelta(t, 0, ray.DistToPoint(point), 1e-9)
}

func TestOrbitClampsPitch(t *testing.T) {
	cam := &Camera{Up: geometry.NewVector3(0, 1, 0), Distance: 1}
	cam.Orbit(0, math.Pi)

	assert.InDelta(t, math.Pi/2-0.1, cam.RotationX, 1e-12)
	assert.Greater(t, cam.Position.Y, 0.0)
}

func TestBehindCameraHasNegativeDepth(t *testing.T) {
	cam := &Camera{Up: geometry.NewVector3(0, 1, 0), Distance: 1, FOV: math.Pi / 3}
	cam.Orbit(0, 0)

	_, _, depth := cam.Project(geometry.NewVector3(0, 0, 5), 100, 100)
	assert.Less(t, depth, 0.0)
}

func TestLookTurnsInPlace(t *testing.T) {
	cam := &Camera{Up: geometry.NewVector3(0, 1, 0), Distance: 1, FOV: math.Pi / 3}
	cam.Orbit(0, 0)
	position := cam.Position

	cam.Look(math.Pi/2, 0)
	assert.Equal(t, position, cam.Position)
	assert.True(t, cam.Target.Sub(cam.Position).ApproxEqual(geometry.NewVector3(1, 0, 0), 1e-9), "turned right: %s", cam.Target)

	cam.Orbit(0, 0)
	cam.Look(0, math.Pi/4)
	want := geometry.NewVector3(0, math.Sqrt2/2, -math.Sqrt2/2)
	assert.True(t, cam.Target.Sub(cam.Position).ApproxEqual(want, 1e-9), "tilted up: %s", cam.Target)
}

var _ tracking.Viewpoint = (*Viewport)(nil)
