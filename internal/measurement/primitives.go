package measurement

import "github.com/philipparndt/armeasure/pkg/geometry"

// Sizes of the rendered primitives, in meters
const (
	MarkerRadius     = 0.01
	SegmentThickness = 0.002
	LabelOffset      = 0.05
	LabelFontSize    = 0.1
	LabelExtrusion   = 0.01
)

// Marker is a sphere at a measured point
type Marker struct {
	Position geometry.Vector3
	Radius   float64
}

// Segment is a thin square prism connecting the two points. The prism is
// modelled along +Z, centered on the origin, and rotated by Orientation.
type Segment struct {
	Start       geometry.Vector3
	End         geometry.Vector3
	Center      geometry.Vector3
	Length      float64
	Thickness   float64
	Orientation geometry.Quaternion
}

// Label is the floating distance text
type Label struct {
	Text      string
	Position  geometry.Vector3
	FontSize  float64
	Extrusion float64
}

// Primitives is everything a renderer places for one outcome, in world
// coordinates. Segment and Label are nil for a started measurement; Segment
// is also nil when the two points coincide.
type Primitives struct {
	Markers []Marker
	Segment *Segment
	Label   *Label
}

// PrimitivesFor derives the visual primitives of an outcome
func PrimitivesFor(o Outcome) Primitives {
	switch o := o.(type) {
	case Started:
		return Primitives{Markers: []Marker{newMarker(o.Point)}}
	case Completed:
		return completedPrimitives(o.Result)
	default:
		return Primitives{}
	}
}

func completedPrimitives(r Result) Primitives {
	p := Primitives{
		Markers: []Marker{newMarker(r.Start), newMarker(r.End)},
		Label: &Label{
			Text:      r.Text(),
			Position:  r.End.Add(geometry.NewVector3(0, LabelOffset, 0)),
			FontSize:  LabelFontSize,
			Extrusion: LabelExtrusion,
		},
	}

	if r.HasDirection() {
		p.Segment = &Segment{
			Start:       r.Start,
			End:         r.End,
			Center:      r.Midpoint,
			Length:      r.Distance,
			Thickness:   SegmentThickness,
			Orientation: geometry.RotationBetween(geometry.Forward, r.Direction),
		}
	}
	return p
}

func newMarker(p geometry.Vector3) Marker {
	return Marker{Position: p, Radius: MarkerRadius}
}
