package viewer

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/armeasure/internal/scene"
	"github.com/philipparndt/armeasure/internal/tracking"
	"github.com/philipparndt/armeasure/pkg/geometry"
	"github.com/philipparndt/armeasure/pkg/stl"
)

// ARView shows the scene as a wireframe with the placed anchors and a
// crosshair at the center. Taps are always aimed at the crosshair.
type ARView struct {
	widget.BaseWidget
	model      *stl.Model
	scene      *scene.Scene
	viewport   *Viewport
	wireframe  []fyne.CanvasObject
	overlay    []fyne.CanvasObject
	dragStart  *fyne.Position
	isDragging bool
	onTap      func(tracking.ScreenPoint)
}

// NewARView creates a view over model that draws the anchors of s
func NewARView(model *stl.Model, s *scene.Scene) *ARView {
	v := &ARView{
		model: model,
		scene: s,
		viewport: &Viewport{
			Camera: NewCamera(model.BoundingBox()),
			Width:  400,
			Height: 400,
		},
	}
	v.ExtendBaseWidget(v)
	return v
}

// Viewport returns the camera binding used for hit-tests
func (v *ARView) Viewport() *Viewport {
	return v.viewport
}

// SetOnTap sets the callback invoked with the crosshair position
func (v *ARView) SetOnTap(callback func(tracking.ScreenPoint)) {
	v.onTap = callback
}

// SetModel replaces the displayed model. Must be called on the UI goroutine.
func (v *ARView) SetModel(model *stl.Model) {
	v.model = model
	v.Redraw()
}

// TapCenter fires the tap callback at the crosshair
func (v *ARView) TapCenter() {
	if v.onTap != nil {
		v.onTap(v.viewport.Center())
	}
}

// CreateRenderer creates the renderer for the widget
func (v *ARView) CreateRenderer() fyne.WidgetRenderer {
	return &arViewRenderer{view: v}
}

// Redraw rebuilds the wireframe and the anchor overlay
func (v *ARView) Redraw() {
	v.buildWireframe()
	v.buildOverlay()
	v.Refresh()
}

func (v *ARView) buildWireframe() {
	v.wireframe = v.wireframe[:0]
	if v.model == nil {
		return
	}

	cam := v.viewport.Camera
	w, h := v.viewport.Width, v.viewport.Height
	for _, triangle := range v.model.Triangles {
		vertices := [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3}
		for i := 0; i < 3; i++ {
			x1, y1, z1 := cam.Project(vertices[i], w, h)
			x2, y2, z2 := cam.Project(vertices[(i+1)%3], w, h)
			if z1 <= 0 || z2 <= 0 {
				continue
			}

			// Fade distant edges
			avgZ := (z1 + z2) / 2
			brightness := uint8(math.Max(50, math.Min(200, 220-avgZ*20)))

			line := canvas.NewLine(color.RGBA{R: brightness, G: brightness, B: brightness, A: 255})
			line.StrokeWidth = 1
			line.Position1 = fyne.NewPos(float32(x1), float32(y1))
			line.Position2 = fyne.NewPos(float32(x2), float32(y2))
			v.wireframe = append(v.wireframe, line)
		}
	}
}

func (v *ARView) buildOverlay() {
	v.overlay = v.overlay[:0]
	cam := v.viewport.Camera
	w, h := v.viewport.Width, v.viewport.Height

	if v.scene != nil {
		for _, anchor := range v.scene.Anchors() {
			for _, e := range anchor.Entities {
				world := anchor.WorldPosition(e)
				switch e.Kind {
				case scene.Sphere:
					x, y, depth := cam.Project(world, w, h)
					if depth <= 0 {
						continue
					}
					size := float32(math.Max(6, 2*e.Radius*cam.PixelsPerMeter(depth, h)))
					marker := canvas.NewCircle(e.Color)
					marker.Resize(fyne.NewSize(size, size))
					marker.Move(fyne.NewPos(float32(x)-size/2, float32(y)-size/2))
					v.overlay = append(v.overlay, marker)
				case scene.Box:
					half := e.Orientation.Rotate(geometry.Forward).Mul(e.Size.Z / 2)
					x1, y1, z1 := cam.Project(world.Sub(half), w, h)
					x2, y2, z2 := cam.Project(world.Add(half), w, h)
					if z1 <= 0 || z2 <= 0 {
						continue
					}
					line := canvas.NewLine(e.Color)
					line.StrokeWidth = 2
					line.Position1 = fyne.NewPos(float32(x1), float32(y1))
					line.Position2 = fyne.NewPos(float32(x2), float32(y2))
					v.overlay = append(v.overlay, line)
				case scene.Text:
					x, y, depth := cam.Project(world, w, h)
					if depth <= 0 {
						continue
					}
					text := canvas.NewText(e.Text, e.Color)
					text.TextStyle = fyne.TextStyle{Bold: true}
					text.TextSize = 14
					size := text.MinSize()
					text.Move(fyne.NewPos(float32(x)-size.Width/2, float32(y)-size.Height))
					v.overlay = append(v.overlay, text)
				}
			}
		}
	}

	cx, cy := float32(w/2), float32(h/2)
	for _, seg := range [][2]fyne.Position{
		{fyne.NewPos(cx-10, cy), fyne.NewPos(cx+10, cy)},
		{fyne.NewPos(cx, cy-10), fyne.NewPos(cx, cy+10)},
	} {
		line := canvas.NewLine(crosshairColor)
		line.StrokeWidth = 2
		line.Position1 = seg[0]
		line.Position2 = seg[1]
		v.overlay = append(v.overlay, line)
	}
}

// Dragged orbits the camera
func (v *ARView) Dragged(event *fyne.DragEvent) {
	if v.dragStart != nil {
		deltaX := event.Position.X - v.dragStart.X
		deltaY := event.Position.Y - v.dragStart.Y

		v.viewport.Camera.Rotate(float64(deltaY)*0.01, float64(-deltaX)*0.01)
		v.Redraw()
	}
	v.dragStart = &event.Position
	v.isDragging = true
}

// DragEnd handles the end of a drag event
func (v *ARView) DragEnd() {
	v.dragStart = nil
	v.isDragging = false
}

// Tapped measures at the crosshair, wherever the pointer was
func (v *ARView) Tapped(_ *fyne.PointEvent) {
	if v.isDragging {
		return
	}
	v.TapCenter()
}

// Scrolled zooms the camera
func (v *ARView) Scrolled(event *fyne.ScrollEvent) {
	v.viewport.Camera.Zoom(-float64(event.Scrolled.DY) * 0.01)
	v.Redraw()
}

type arViewRenderer struct {
	view    *ARView
	objects []fyne.CanvasObject
}

func (r *arViewRenderer) Layout(size fyne.Size) {
	r.view.viewport.Width = float64(size.Width)
	r.view.viewport.Height = float64(size.Height)
	r.view.buildWireframe()
	r.view.buildOverlay()
	r.collect()
}

func (r *arViewRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *arViewRenderer) Refresh() {
	r.collect()
	canvas.Refresh(r.view)
}

func (r *arViewRenderer) collect() {
	r.objects = r.objects[:0]
	r.objects = append(r.objects, r.view.wireframe...)
	r.objects = append(r.objects, r.view.overlay...)
}

func (r *arViewRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *arViewRenderer) Destroy() {}
