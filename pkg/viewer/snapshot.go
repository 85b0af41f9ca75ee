package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/philipparndt/armeasure/internal/scene"
	"github.com/philipparndt/armeasure/pkg/geometry"
	"github.com/philipparndt/armeasure/pkg/stl"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	backgroundColor = color.RGBA{R: 15, G: 18, B: 25, A: 255}
	meshColor       = color.RGBA{R: 100, G: 120, B: 200, A: 255}
	crosshairColor  = color.RGBA{R: 255, G: 255, B: 255, A: 128}
)

// lightDir is the direction light travels in the baked lighting
var lightDir = geometry.NewVector3(-0.5, -1.0, -0.5).Normalize()

// Snapshot renders the scene mesh and all anchors as seen from cam
func Snapshot(model *stl.Model, anchors []scene.Anchor, cam *Camera, width, height int) *image.RGBA {
	w, h := float64(width), float64(height)
	canvas := newDepthCanvas(width, height, backgroundColor)

	project := func(p geometry.Vector3) (screenVertex, bool) {
		x, y, depth := cam.Project(p, w, h)
		return screenVertex{x: x, y: y, z: depth}, depth > 0
	}

	if model != nil {
		for _, tri := range model.Triangles {
			a, okA := project(tri.V1)
			b, okB := project(tri.V2)
			c, okC := project(tri.V3)
			if !okA || !okB || !okC {
				continue
			}
			intensity := -tri.CalculateNormal().Dot(lightDir)
			canvas.fillTriangle(a, b, c, shade(meshColor, math.Abs(intensity)))
		}
	}

	var labels []labelAt
	for _, anchor := range anchors {
		for _, e := range anchor.Entities {
			world := anchor.WorldPosition(e)
			switch e.Kind {
			case scene.Sphere:
				if p, ok := project(world); ok {
					r := math.Max(2, e.Radius*cam.PixelsPerMeter(p.z, h))
					// the sphere's front face sits one radius closer
					p.z -= e.Radius
					canvas.disc(p, r, e.Color)
				}
			case scene.Box:
				half := e.Orientation.Rotate(geometry.Forward).Mul(e.Size.Z / 2)
				a, okA := project(world.Sub(half))
				b, okB := project(world.Add(half))
				if okA && okB {
					thickness := int(math.Max(2, e.Size.X*cam.PixelsPerMeter((a.z+b.z)/2, h)))
					canvas.line(a, b, thickness, e.Color)
				}
			case scene.Text:
				if p, ok := project(world); ok {
					labels = append(labels, labelAt{text: e.Text, x: p.x, y: p.y, col: e.Color})
				}
			}
		}
	}

	drawCrosshair(canvas.img, width/2, height/2)

	// labels float above everything
	for _, l := range labels {
		drawLabel(canvas.img, l)
	}
	return canvas.img
}

type labelAt struct {
	text string
	x, y float64
	col  color.RGBA
}

func drawLabel(img *image.RGBA, l labelAt) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(l.col), Face: face}
	width := d.MeasureString(l.text)
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(l.x)) - width/2,
		Y: fixed.I(int(l.y)),
	}
	d.DrawString(l.text)
}

// drawCrosshair draws the 20px aiming cross at the view center
func drawCrosshair(img *image.RGBA, cx, cy int) {
	for i := -10; i <= 10; i++ {
		for t := 0; t < 2; t++ {
			blend(img, cx+i, cy+t, crosshairColor)
			blend(img, cx+t, cy+i, crosshairColor)
		}
	}
}

func blend(img *image.RGBA, x, y int, col color.RGBA) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	dst := img.RGBAAt(x, y)
	a := float64(col.A) / 255
	mix := func(s, d uint8) uint8 { return uint8(float64(s)*a + float64(d)*(1-a)) }
	img.SetRGBA(x, y, color.RGBA{R: mix(col.R, dst.R), G: mix(col.G, dst.G), B: mix(col.B, dst.B), A: 255})
}

// WritePNG encodes img to path
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return f.Close()
}
