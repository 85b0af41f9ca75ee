package stl

import (
	"github.com/philipparndt/armeasure/pkg/geometry"
)

// Model is a triangle mesh. In armeasure it stands in for the reconstructed
// scene a tracking session would otherwise build from camera frames.
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new empty model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// SurfaceArea calculates the total surface area of the model
func (m *Model) SurfaceArea() float64 {
	totalArea := 0.0
	for _, triangle := range m.Triangles {
		totalArea += triangle.Area()
	}
	return totalArea
}

// Vertices returns every distinct vertex in first-seen order
func (m *Model) Vertices() []geometry.Vector3 {
	seen := make(map[geometry.Vector3]struct{}, len(m.Triangles))
	vertices := make([]geometry.Vector3, 0, len(m.Triangles))
	for _, triangle := range m.Triangles {
		for _, v := range [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3} {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			vertices = append(vertices, v)
		}
	}
	return vertices
}

// Scaled returns a copy of the model with every vertex multiplied by factor.
// Used to bring millimeter STL files into the meter-based world frame.
func (m *Model) Scaled(factor float64) *Model {
	scaled := &Model{
		Name:      m.Name,
		Triangles: make([]geometry.Triangle, len(m.Triangles)),
	}
	for i, triangle := range m.Triangles {
		scaled.Triangles[i] = triangle.Scale(factor)
	}
	return scaled
}
