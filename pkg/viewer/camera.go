package viewer

import (
	"math"

	"github.com/philipparndt/armeasure/internal/tracking"
	"github.com/philipparndt/armeasure/pkg/geometry"
)

// Camera is an orbiting device pose looking at Target. It stands in for the
// tracked phone camera.
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // Vertical field of view in radians
	Distance  float64
	RotationX float64 // Pitch, positive looks down on the target
	RotationY float64 // Yaw around the vertical axis
}

// NewCamera creates a camera positioned to view a bounding box
func NewCamera(bbox geometry.BoundingBox) *Camera {
	size := bbox.Size()
	distance := math.Max(size.X, math.Max(size.Y, size.Z)) * 1.5
	if distance == 0 {
		distance = 1
	}

	c := &Camera{
		Target:   bbox.Center(),
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      math.Pi / 3,
		Distance: distance,
	}
	c.Orbit(0, 0.5)
	return c
}

// UpdatePosition updates camera position based on rotation angles
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Orbit sets absolute yaw and pitch in radians
func (c *Camera) Orbit(yaw, pitch float64) {
	c.RotationX = 0
	c.RotationY = 0
	c.Rotate(pitch, yaw)
}

// Rotate rotates the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Keep away from the poles where Up and the view direction align
	maxAngle := math.Pi/2 - 0.1
	c.RotationX = math.Max(-maxAngle, math.Min(maxAngle, c.RotationX))

	c.UpdatePosition()
}

// Look turns the camera in place, keeping its position: yaw turns right
// and pitch tilts up, both in radians relative to the current view
func (c *Camera) Look(yaw, pitch float64) {
	forward := c.Target.Sub(c.Position).Normalize()

	heading := math.Atan2(forward.X, forward.Z) - yaw
	elevation := math.Asin(math.Max(-1, math.Min(1, forward.Y))) + pitch
	maxAngle := math.Pi/2 - 0.01
	elevation = math.Max(-maxAngle, math.Min(maxAngle, elevation))

	dir := geometry.NewVector3(
		math.Cos(elevation)*math.Sin(heading),
		math.Sin(elevation),
		math.Cos(elevation)*math.Cos(heading),
	)
	c.Target = c.Position.Add(dir.Mul(c.Distance))
}

// Zoom changes the camera distance
func (c *Camera) Zoom(delta float64) {
	c.Distance = math.Max(0.05, c.Distance*(1.0+delta))
	c.UpdatePosition()
}

func (c *Camera) basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// Project projects a 3D point to 2D screen coordinates. The third value is
// the view depth; points at or behind the camera have depth <= 0.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (float64, float64, float64) {
	forward, right, up := c.basis()

	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	z := relative.Dot(forward)

	depth := z
	if z <= 0.001 {
		z = 0.001
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX := (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, depth
}

// Unproject converts 2D screen coordinates into a world-space ray
func (c *Camera) Unproject(screenX, screenY, width, height float64) geometry.Ray {
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	forward, right, up := c.basis()
	dir := forward.Add(right.Mul(ndcX * fovScale * aspect)).Add(up.Mul(ndcY * fovScale))

	return geometry.NewRay(c.Position, dir)
}

// PixelsPerMeter is the on-screen size of one meter at the given depth
func (c *Camera) PixelsPerMeter(depth, height float64) float64 {
	if depth <= 0 {
		return 0
	}
	return height / (2 * depth * math.Tan(c.FOV/2))
}

// Viewport binds a camera to a view size so hit-tests can cast rays through
// screen points. It implements tracking.Viewpoint.
type Viewport struct {
	Camera *Camera
	Width  float64
	Height float64
}

// RayThrough casts the camera ray through p
func (v *Viewport) RayThrough(p tracking.ScreenPoint) geometry.Ray {
	return v.Camera.Unproject(p.X, p.Y, v.Width, v.Height)
}

// Center returns the crosshair position
func (v *Viewport) Center() tracking.ScreenPoint {
	return tracking.ScreenPoint{X: v.Width / 2, Y: v.Height / 2}
}
