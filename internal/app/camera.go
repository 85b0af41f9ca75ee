package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/armeasure/internal/tracking"
	"github.com/philipparndt/armeasure/pkg/geometry"
)

// setupCamera frames the model from a slightly raised position
func (app *App) setupCamera() {
	bbox := app.Model.model.BoundingBox()
	center := bbox.Center()
	size := bbox.Size()
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	distance := float32(maxDim * 1.5)
	if distance == 0 {
		distance = 1
	}

	app.Model.center = toRaylib(center)
	app.Model.size = float32(maxDim)

	app.Camera.target = app.Model.center
	app.Camera.distance = distance
	app.Camera.angleX = 0.5
	app.Camera.angleY = 0
	app.Camera.defaultDist = distance
	app.Camera.defaultAngleX = 0.5
	app.Camera.defaultAngleY = 0

	app.Camera.camera = rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 0, Z: distance},
		Target:     app.Camera.target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       60.0,
		Projection: rl.CameraPerspective,
	}
	app.updateCamera()
}

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = app.Model.center
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	ax := float64(app.Camera.angleX)
	ay := float64(app.Camera.angleY)
	d := app.Camera.distance

	app.Camera.camera.Position = rl.Vector3{
		X: app.Camera.target.X + d*float32(math.Cos(ax)*math.Sin(ay)),
		Y: app.Camera.target.Y + d*float32(math.Sin(ax)),
		Z: app.Camera.target.Z + d*float32(math.Cos(ax)*math.Cos(ay)),
	}
	app.Camera.camera.Target = app.Camera.target
}

// doPan moves the camera target in the view plane
func (app *App) doPan(delta rl.Vector2) {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(app.Camera.target, app.Camera.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, app.Camera.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	panSpeed := app.Camera.distance * 0.001

	app.Camera.target = rl.Vector3Add(app.Camera.target, rl.Vector3Scale(right, -delta.X*panSpeed))
	app.Camera.target = rl.Vector3Add(app.Camera.target, rl.Vector3Scale(up, delta.Y*panSpeed))
}

// RayThrough casts the current camera ray through a screen point. Only
// valid on the main thread while the window is open.
func (app *App) RayThrough(p tracking.ScreenPoint) geometry.Ray {
	ray := rl.GetScreenToWorldRay(rl.Vector2{X: float32(p.X), Y: float32(p.Y)}, app.Camera.camera)
	return geometry.NewRay(fromRaylib(ray.Position), fromRaylib(ray.Direction))
}

// inFront reports whether a world point is in front of the camera
func (app *App) inFront(p rl.Vector3) bool {
	forward := rl.Vector3Subtract(app.Camera.camera.Target, app.Camera.camera.Position)
	return rl.Vector3DotProduct(rl.Vector3Subtract(p, app.Camera.camera.Position), forward) > 0
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func fromRaylib(v rl.Vector3) geometry.Vector3 {
	return geometry.NewVector3(float64(v.X), float64(v.Y), float64(v.Z))
}
