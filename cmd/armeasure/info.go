package main

import (
	"fmt"

	"github.com/philipparndt/armeasure/internal/workspace"
	"github.com/philipparndt/armeasure/pkg/analysis"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <scene.stl>",
	Short: "Display scene statistics and detected planes",
	Long:  "Show dimensions, triangle and feature point counts, edge statistics and the planes a tracker would detect.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	model, err := workspace.LoadModel(filename, cfg.UnitScale())
	if err != nil {
		return err
	}

	result, err := analysis.AnalyzeScene(cmd.Context(), model, workspace.TrackingOptions(cfg).Planes)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Scene Information")
	fmt.Fprintln(out, "=================")
	if model.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", model.Name)
	}
	fmt.Fprintf(out, "File: %s (%s)\n\n", filename, cfg.Scene.Units)

	fmt.Fprintln(out, "Scene Statistics:")
	fmt.Fprintf(out, "  Triangles: %d\n", result.TriangleCount)
	fmt.Fprintf(out, "  Edges: %d\n", result.EdgeCount)
	fmt.Fprintf(out, "  Feature points: %d\n", result.FeatureCount)
	fmt.Fprintf(out, "  Surface Area: %.4f m²\n\n", result.SurfaceArea)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Fprintf(out, "  Size: %.4f × %.4f × %.4f m\n\n", result.Dimensions.X, result.Dimensions.Y, result.Dimensions.Z)

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %.4f m\n", result.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.4f m\n", result.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.4f m (σ %.4f)\n", result.AvgEdgeLength, result.StdDevEdgeLength)
	fmt.Fprintf(out, "  Median: %.4f m\n\n", result.MedianEdgeLength)

	fmt.Fprintf(out, "Detected Planes: %d\n", len(result.Planes))
	for _, p := range result.Planes {
		fmt.Fprintf(out, "  #%d %-10s area %.3f m², %d triangles, center %s\n",
			p.ID, p.Alignment, p.Area, p.Triangles, analysis.FormatVector(p.Center))
	}
	return nil
}
