package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/philipparndt/armeasure/internal/measurement"
	"github.com/philipparndt/armeasure/internal/tracking"
	"github.com/philipparndt/armeasure/internal/workspace"
	"github.com/philipparndt/armeasure/pkg/viewer"
	"github.com/spf13/cobra"
)

var (
	measureTaps   []string
	measurePNG    string
	measureWidth  int
	measureHeight int
)

var measureCmd = &cobra.Command{
	Use:   "measure <scene.stl>",
	Short: "Replay crosshair taps from scripted camera poses",
	Long: `Replay taps without a window. The device starts in front of the scene,
looking at its center. Each --tap turns it in place by yaw (right) and pitch
(up) in degrees and taps at the crosshair. Every outcome is printed; --png
renders the final scene from the starting pose.`,
	Example: `  armeasure measure room.stl --tap 0,0 --tap 15,-5 --png room.png`,
	Args:    cobra.ExactArgs(1),
	RunE:    runMeasure,
}

func init() {
	rootCmd.AddCommand(measureCmd)

	measureCmd.Flags().StringArrayVar(&measureTaps, "tap", nil, "device turn yaw,pitch in degrees (repeatable)")
	measureCmd.Flags().StringVar(&measurePNG, "png", "", "write a snapshot of the result to this file")
	measureCmd.Flags().IntVar(&measureWidth, "width", 0, "snapshot width (default window.width)")
	measureCmd.Flags().IntVar(&measureHeight, "height", 0, "snapshot height (default window.height)")
	_ = measureCmd.MarkFlagRequired("tap")
}

// pose turns the device from its starting pose, in radians
type pose struct {
	yaw, pitch float64
}

// parseTap parses "yaw,pitch" in degrees
func parseTap(s string) (pose, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return pose{}, fmt.Errorf("invalid tap %q: want yaw,pitch", s)
	}
	yaw, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return pose{}, fmt.Errorf("invalid yaw in %q: %w", s, err)
	}
	pitch, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return pose{}, fmt.Errorf("invalid pitch in %q: %w", s, err)
	}
	return pose{yaw: yaw * math.Pi / 180, pitch: pitch * math.Pi / 180}, nil
}

func runMeasure(cmd *cobra.Command, args []string) error {
	poses := make([]pose, 0, len(measureTaps))
	for _, t := range measureTaps {
		p, err := parseTap(t)
		if err != nil {
			return err
		}
		poses = append(poses, p)
	}

	width, height := measureWidth, measureHeight
	if width <= 0 {
		width = cfg.Window.Width
	}
	if height <= 0 {
		height = cfg.Window.Height
	}

	vp := &viewer.Viewport{Width: float64(width), Height: float64(height)}
	ws, err := workspace.Open(cmd.Context(), args[0], cfg, vp, logger)
	if err != nil {
		return err
	}
	defer ws.Close()
	if err := replayTaps(cmd.Context(), ws, vp, poses, cmd.OutOrStdout()); err != nil {
		return err
	}

	if measurePNG != "" {
		cam := viewer.NewCamera(ws.Model().BoundingBox())
		img := viewer.Snapshot(ws.Model(), ws.Scene.Anchors(), cam, width, height)
		if err := viewer.WritePNG(measurePNG, img); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Snapshot written to %s\n", measurePNG)
	}
	return nil
}

// replayTaps aims the device at each pose and taps at the crosshair
func replayTaps(ctx context.Context, ws *workspace.Workspace, vp *viewer.Viewport, poses []pose, w io.Writer) error {
	bbox := ws.Model().BoundingBox()
	for i, p := range poses {
		if err := ctx.Err(); err != nil {
			return err
		}

		vp.Camera = viewer.NewCamera(bbox)
		vp.Camera.Look(p.yaw, p.pitch)
		out, ok, err := ws.Coordinator.TapCenter(vp.Width, vp.Height)
		if err != nil && !errors.Is(err, tracking.ErrNotRunning) {
			return err
		}
		fmt.Fprintf(w, "tap %d: %s\n", i+1, describeOutcome(out, ok, err))
	}

	if start, pending := ws.Coordinator.Pending(); pending {
		fmt.Fprintf(w, "measurement still open at %s\n", start)
	}
	return nil
}

// describeOutcome renders a tap result for people
func describeOutcome(out measurement.Outcome, ok bool, err error) string {
	switch {
	case err != nil:
		return fmt.Sprintf("tap failed: %v", err)
	case !ok:
		return "nothing under the crosshair"
	}

	switch o := out.(type) {
	case measurement.Started:
		return fmt.Sprintf("start point at %s", o.Point)
	case measurement.Completed:
		return fmt.Sprintf("%s from %s to %s", o.Result.Text(), o.Result.Start, o.Result.End)
	default:
		return "unknown outcome"
	}
}
