// Package tracking defines what armeasure needs from a world-tracking
// platform, and ships MeshWorld, a simulated platform backed by an STL scene.
package tracking

import (
	"context"
	"errors"
	"strings"

	"github.com/philipparndt/armeasure/pkg/geometry"
)

// ErrNotRunning is returned by hit-tests while tracking is paused
var ErrNotRunning = errors.New("world tracking is not running")

// PlaneDetection selects which plane alignments the tracker reconstructs
type PlaneDetection uint8

const (
	Horizontal PlaneDetection = 1 << iota
	Vertical
)

func (d PlaneDetection) String() string {
	var parts []string
	if d&Horizontal != 0 {
		parts = append(parts, "horizontal")
	}
	if d&Vertical != 0 {
		parts = append(parts, "vertical")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Configuration is handed to WorldTracker.Run
type Configuration struct {
	PlaneDetection PlaneDetection
}

// DefaultConfiguration detects both horizontal and vertical planes. It is
// the only configuration the measuring app uses.
func DefaultConfiguration() Configuration {
	return Configuration{PlaneDetection: Horizontal | Vertical}
}

// PlaneAlignment of a detected plane
type PlaneAlignment int

const (
	AlignmentHorizontal PlaneAlignment = iota
	AlignmentVertical
)

func (a PlaneAlignment) String() string {
	if a == AlignmentVertical {
		return "vertical"
	}
	return "horizontal"
}

// Plane is a reconstructed planar surface. Extent holds the triangles that
// make up its surface; hit-tests against the plane are limited to them.
type Plane struct {
	ID        int
	Alignment PlaneAlignment
	Normal    geometry.Vector3
	Center    geometry.Vector3
	Area      float64
	Extent    []geometry.Triangle
}

// CandidateKind tells feature-point hits from plane hits
type CandidateKind int

const (
	FeaturePoint CandidateKind = iota
	PlaneExtent
)

func (k CandidateKind) String() string {
	if k == PlaneExtent {
		return "plane"
	}
	return "feature"
}

// HitCandidate is one world-space result of a hit-test
type HitCandidate struct {
	Kind     CandidateKind
	Position geometry.Vector3
	Distance float64 // along the camera ray
	PlaneID  int     // set for PlaneExtent hits
}

// ScreenPoint is a 2D location in view coordinates (pixels, origin top-left)
type ScreenPoint struct {
	X, Y float64
}

// WorldTracker runs the tracking session. Hit-testing is only meaningful
// while it runs with plane detection enabled.
type WorldTracker interface {
	Run(ctx context.Context, cfg Configuration) error
	Pause()
	Running() bool
	Planes() []Plane
}

// HitTester resolves a screen point into ranked world-space candidates:
// feature points first, then plane-extent hits, each nearest first.
type HitTester interface {
	HitTest(p ScreenPoint) ([]HitCandidate, error)
}

// Viewpoint is the current device pose, able to cast a ray through a
// screen point
type Viewpoint interface {
	RayThrough(p ScreenPoint) geometry.Ray
}
