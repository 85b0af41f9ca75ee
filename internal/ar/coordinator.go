// Package ar wires the platform collaborators to the measurement session:
// taps are hit-tested, the first candidate is resolved by the session and
// the outcome is handed to the renderer.
package ar

import (
	"context"
	"fmt"

	"github.com/philipparndt/armeasure/internal/measurement"
	"github.com/philipparndt/armeasure/internal/tracking"
	"github.com/philipparndt/armeasure/pkg/geometry"
	"github.com/rs/zerolog"
)

// Renderer places the visual primitives of session outcomes
type Renderer interface {
	MeasurementStarted(measurement.Started)
	MeasurementCompleted(measurement.Completed)
}

// Coordinator owns the measurement session for one view. Like the session
// it is driven from the UI thread only.
type Coordinator struct {
	tracker   tracking.WorldTracker
	hitTester tracking.HitTester
	renderer  Renderer
	session   *measurement.Session
	log       zerolog.Logger
}

// NewCoordinator creates a coordinator with an empty session
func NewCoordinator(tracker tracking.WorldTracker, hitTester tracking.HitTester, renderer Renderer, log zerolog.Logger) *Coordinator {
	return &Coordinator{
		tracker:   tracker,
		hitTester: hitTester,
		renderer:  renderer,
		session:   measurement.NewSession(),
		log:       log.With().Str("component", "coordinator").Logger(),
	}
}

// Start runs world tracking with horizontal and vertical plane detection
func (c *Coordinator) Start(ctx context.Context) error {
	cfg := tracking.DefaultConfiguration()
	if err := c.tracker.Run(ctx, cfg); err != nil {
		return fmt.Errorf("start tracking: %w", err)
	}
	c.log.Info().Str("planeDetection", cfg.PlaneDetection.String()).Msg("tracking started")
	return nil
}

// Stop pauses world tracking
func (c *Coordinator) Stop() {
	c.tracker.Pause()
}

// HandleTap hit-tests p and feeds the first candidate into the session.
// ok is false when the tap hit nothing; that is not an error and leaves
// the session untouched.
func (c *Coordinator) HandleTap(p tracking.ScreenPoint) (out measurement.Outcome, ok bool, err error) {
	candidates, err := c.hitTester.HitTest(p)
	if err != nil {
		return nil, false, fmt.Errorf("hit-test at (%.0f, %.0f): %w", p.X, p.Y, err)
	}
	if len(candidates) == 0 {
		c.log.Debug().Float64("x", p.X).Float64("y", p.Y).Msg("tap hit nothing")
		return nil, false, nil
	}

	hit := candidates[0]
	if !hit.Position.IsFinite() {
		c.log.Warn().Str("kind", hit.Kind.String()).Msg("dropping non-finite hit")
		return nil, false, nil
	}

	out = c.session.Resolve(hit.Position)
	switch o := out.(type) {
	case measurement.Started:
		c.log.Info().
			Str("kind", hit.Kind.String()).
			Stringer("point", o.Point).
			Msg("measurement started")
		c.renderer.MeasurementStarted(o)
	case measurement.Completed:
		c.log.Info().
			Stringer("start", o.Result.Start).
			Stringer("end", o.Result.End).
			Float64("meters", o.Result.Distance).
			Str("text", o.Result.Text()).
			Msg("measurement completed")
		c.renderer.MeasurementCompleted(o)
	}
	return out, true, nil
}

// TapCenter taps the crosshair in the middle of a width x height view
func (c *Coordinator) TapCenter(width, height float64) (measurement.Outcome, bool, error) {
	return c.HandleTap(tracking.ScreenPoint{X: width / 2, Y: height / 2})
}

// Pending exposes the session's pending start
func (c *Coordinator) Pending() (geometry.Vector3, bool) {
	return c.session.Pending()
}

// Reset discards the session. Anchors already placed stay in the scene.
func (c *Coordinator) Reset() {
	c.session = measurement.NewSession()
	c.log.Debug().Msg("session reset")
}
