package app

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/armeasure/internal/scene"
	"github.com/philipparndt/armeasure/internal/tracking"
	"github.com/philipparndt/armeasure/pkg/geometry"
	"github.com/philipparndt/armeasure/pkg/stl"
)

// Plane tint colors by alignment
var (
	horizontalTint = rl.NewColor(80, 200, 255, 60)
	verticalTint   = rl.NewColor(255, 140, 60, 60)
)

// stlToRaylibMesh converts an STL model to a Raylib mesh with baked lighting
func stlToRaylibMesh(model *stl.Model) rl.Mesh {
	triangleCount := len(model.Triangles)
	vertexCount := triangleCount * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(triangleCount),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	colors := make([]uint8, vertexCount*4)

	lightDir := geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

	idx := 0
	for _, triangle := range model.Triangles {
		normal := triangle.CalculateNormal()

		// Scene meshes are often single-sided, so light both faces alike
		intensity := math.Max(0.3, math.Abs(normal.Dot(lightDir)))
		shade := [4]uint8{
			uint8(180 * intensity),
			uint8(180 * intensity),
			uint8(170 * intensity),
			255,
		}

		for _, v := range [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
			vertices[idx*3+0] = float32(v.X)
			vertices[idx*3+1] = float32(v.Y)
			vertices[idx*3+2] = float32(v.Z)
			normals[idx*3+0] = float32(normal.X)
			normals[idx*3+1] = float32(normal.Y)
			normals[idx*3+2] = float32(normal.Z)
			copy(colors[idx*4:idx*4+4], shade[:])
			idx++
		}
	}

	if len(vertices) > 0 {
		mesh.Vertices = &vertices[0]
		mesh.Normals = &normals[0]
		mesh.Colors = &colors[0]
	}

	// Upload mesh data to GPU
	rl.UploadMesh(&mesh, false)

	return mesh
}

// drawPlanes tints the detected planes, lifted slightly off the surface
func (app *App) drawPlanes() {
	for _, plane := range app.ws.World.Planes() {
		tint := horizontalTint
		if plane.Alignment == tracking.AlignmentVertical {
			tint = verticalTint
		}
		lift := plane.Normal.Mul(0.002)
		for _, t := range plane.Extent {
			a := toRaylib(t.V1.Add(lift))
			b := toRaylib(t.V2.Add(lift))
			c := toRaylib(t.V3.Add(lift))
			// Both windings, the mesh facing is unknown
			rl.DrawTriangle3D(a, b, c, tint)
			rl.DrawTriangle3D(a, c, b, tint)
		}
	}
}

// drawAnchors draws markers and segments; labels are drawn in 2D later
func (app *App) drawAnchors() {
	for _, anchor := range app.ws.Scene.Anchors() {
		for _, e := range anchor.Entities {
			world := toRaylib(anchor.WorldPosition(e))
			switch e.Kind {
			case scene.Sphere:
				rl.DrawSphere(world, float32(e.Radius), toColor(e.Color))
			case scene.Box:
				app.drawPrism(world, e)
			}
		}
	}
}

// drawPrism draws a box of e.Size rotated by e.Orientation around center
func (app *App) drawPrism(center rl.Vector3, e scene.Entity) {
	axis, angle := e.Orientation.AxisAngle()

	rl.PushMatrix()
	rl.Translatef(center.X, center.Y, center.Z)
	rl.Rotatef(float32(angle*180/math.Pi), float32(axis.X), float32(axis.Y), float32(axis.Z))
	rl.DrawCubeV(rl.Vector3{}, toRaylib(e.Size), toColor(e.Color))
	rl.PopMatrix()
}

// drawLabels draws the measurement texts at their projected positions
func (app *App) drawLabels() {
	fontSize := float32(20)
	for _, anchor := range app.ws.Scene.Anchors() {
		for _, e := range anchor.Entities {
			if e.Kind != scene.Text {
				continue
			}
			world := toRaylib(anchor.WorldPosition(e))
			if !app.inFront(world) {
				continue
			}
			label := Label{
				Text:      e.Text,
				ScreenPos: rl.GetWorldToScreen(world, app.Camera.camera),
				Color:     toColor(e.Color),
			}
			label.Draw(app.UI.font, fontSize, 6)
		}
	}
}

func toColor(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
