// Package analysis summarizes a scene for the info command.
package analysis

import (
	"context"
	"fmt"
	"sort"

	"github.com/philipparndt/armeasure/internal/tracking"
	"github.com/philipparndt/armeasure/pkg/geometry"
	"github.com/philipparndt/armeasure/pkg/stl"
	"gonum.org/v1/gonum/stat"
)

// PlaneSummary describes one detected plane
type PlaneSummary struct {
	ID        int
	Alignment tracking.PlaneAlignment
	Center    geometry.Vector3
	Area      float64
	Triangles int
}

// Report contains scene statistics in meters
type Report struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	EdgeCount     int
	FeatureCount  int
	MinEdgeLength    float64
	MaxEdgeLength    float64
	AvgEdgeLength    float64
	MedianEdgeLength float64
	StdDevEdgeLength float64
	Planes           []PlaneSummary
}

type edge [2]geometry.Vector3

// AnalyzeScene collects mesh statistics and runs plane detection for both
// alignments
func AnalyzeScene(ctx context.Context, model *stl.Model, opts tracking.PlaneOptions) (*Report, error) {
	report := &Report{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
		FeatureCount:  len(model.Vertices()),
	}
	report.Dimensions = report.BoundingBox.Size()

	// Shared edges are counted once
	seen := make(map[edge]bool, len(model.Triangles)*2)
	var lengths []float64
	for _, t := range model.Triangles {
		for _, e := range [3]edge{{t.V1, t.V2}, {t.V2, t.V3}, {t.V3, t.V1}} {
			if seen[e] || seen[edge{e[1], e[0]}] {
				continue
			}
			seen[e] = true
			lengths = append(lengths, e[0].Distance(e[1]))
		}
	}

	report.EdgeCount = len(lengths)
	if report.EdgeCount > 0 {
		sort.Float64s(lengths)
		report.MinEdgeLength = lengths[0]
		report.MaxEdgeLength = lengths[len(lengths)-1]
		report.AvgEdgeLength, report.StdDevEdgeLength = stat.MeanStdDev(lengths, nil)
		report.MedianEdgeLength = stat.Quantile(0.5, stat.Empirical, lengths, nil)
	}

	planes, err := tracking.DetectPlanes(ctx, model.Triangles, tracking.Horizontal|tracking.Vertical, opts)
	if err != nil {
		return nil, fmt.Errorf("plane detection: %w", err)
	}
	for _, p := range planes {
		report.Planes = append(report.Planes, PlaneSummary{
			ID:        p.ID,
			Alignment: p.Alignment,
			Center:    p.Center,
			Area:      p.Area,
			Triangles: len(p.Extent),
		})
	}
	return report, nil
}

// FormatVector formats a 3D vector in meters
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f) m", v.X, v.Y, v.Z)
}
