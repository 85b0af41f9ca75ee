package tracking

import (
	"context"
	"math"

	"github.com/philipparndt/armeasure/pkg/geometry"
)

var worldUp = geometry.NewVector3(0, 1, 0)

// PlaneOptions controls how triangles are grouped into planes
type PlaneOptions struct {
	AngleTolerance  float64 // radians between a facet normal and the plane normal
	OffsetTolerance float64 // meters between a facet and the plane
	MinArea         float64 // square meters; smaller groups are discarded
}

// DetectPlanes groups the scene triangles into horizontal and vertical
// planes. Only the alignments enabled in detection are returned. Facets
// that are neither level nor upright are ignored.
func DetectPlanes(ctx context.Context, triangles []geometry.Triangle, detection PlaneDetection, opts PlaneOptions) ([]Plane, error) {
	cosTol := math.Cos(opts.AngleTolerance)
	sinTol := math.Sin(opts.AngleTolerance)

	var planes []*Plane
	for i, tri := range triangles {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		area := tri.Area()
		if area == 0 {
			continue
		}
		normal := tri.CalculateNormal()
		up := normal.Dot(worldUp)

		var alignment PlaneAlignment
		switch {
		case math.Abs(up) >= cosTol && detection&Horizontal != 0:
			alignment = AlignmentHorizontal
		case math.Abs(up) <= sinTol && detection&Vertical != 0:
			alignment = AlignmentVertical
		default:
			continue
		}

		center := tri.Center()
		plane := findPlane(planes, alignment, normal, center, cosTol, opts.OffsetTolerance)
		if plane == nil {
			plane = &Plane{Alignment: alignment, Normal: normal, Center: center}
			planes = append(planes, plane)
		}
		plane.absorb(tri, normal, center, area)
	}

	result := make([]Plane, 0, len(planes))
	for _, p := range planes {
		if p.Area < opts.MinArea {
			continue
		}
		p.ID = len(result)
		result = append(result, *p)
	}
	return result, nil
}

func findPlane(planes []*Plane, alignment PlaneAlignment, normal, center geometry.Vector3, cosTol, offsetTol float64) *Plane {
	for _, p := range planes {
		if p.Alignment != alignment || p.Normal.Dot(normal) < cosTol {
			continue
		}
		if math.Abs(center.Sub(p.Center).Dot(p.Normal)) <= offsetTol {
			return p
		}
	}
	return nil
}

// absorb adds a facet, keeping Normal and Center area-weighted
func (p *Plane) absorb(tri geometry.Triangle, normal, center geometry.Vector3, area float64) {
	total := p.Area + area
	w := area / total
	p.Normal = p.Normal.Mul(1 - w).Add(normal.Mul(w)).Normalize()
	p.Center = p.Center.Mul(1 - w).Add(center.Mul(w))
	p.Area = total
	p.Extent = append(p.Extent, tri)
}

// IntersectRay returns the nearest hit on the plane's extent
func (p Plane) IntersectRay(ray geometry.Ray) (float64, bool) {
	best := math.Inf(1)
	for _, tri := range p.Extent {
		if d, ok := tri.IntersectRay(ray); ok && d < best {
			best = d
		}
	}
	return best, !math.IsInf(best, 1)
}
