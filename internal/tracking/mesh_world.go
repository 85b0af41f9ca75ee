package tracking

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/philipparndt/armeasure/pkg/geometry"
	"github.com/philipparndt/armeasure/pkg/stl"
	"github.com/rs/zerolog"
)

// Options tunes the simulated tracker
type Options struct {
	// FeatureTolerance is how close, in meters, a mesh vertex must pass to
	// the camera ray to count as a feature-point hit
	FeatureTolerance float64
	Planes           PlaneOptions
}

// DefaultOptions matches a phone-sized scene in meters
func DefaultOptions() Options {
	return Options{
		FeatureTolerance: 0.005,
		Planes: PlaneOptions{
			AngleTolerance:  10 * math.Pi / 180,
			OffsetTolerance: 0.01,
			MinArea:         0.01,
		},
	}
}

// MeshWorld simulates a tracking session over a static scene mesh: the
// mesh vertices are the feature points and its level/upright facets are
// the detectable planes. It implements WorldTracker and HitTester.
type MeshWorld struct {
	mu        sync.RWMutex
	model     *stl.Model
	viewpoint Viewpoint
	opts      Options
	log       zerolog.Logger

	running  bool
	config   Configuration
	planes   []Plane
	features []geometry.Vector3
}

// NewMeshWorld creates a paused tracker over model
func NewMeshWorld(model *stl.Model, viewpoint Viewpoint, opts Options, log zerolog.Logger) *MeshWorld {
	return &MeshWorld{
		model:     model,
		viewpoint: viewpoint,
		opts:      opts,
		log:       log.With().Str("component", "tracking").Logger(),
	}
}

// Run starts tracking and reconstructs planes according to cfg
func (w *MeshWorld) Run(ctx context.Context, cfg Configuration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.reconstruct(ctx, w.model, cfg); err != nil {
		return err
	}
	w.running = true
	w.config = cfg
	return nil
}

// Pause stops tracking; hit-tests fail until Run is called again
func (w *MeshWorld) Pause() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.running = false
	w.log.Debug().Msg("tracking paused")
}

// Running reports whether the session is tracking
func (w *MeshWorld) Running() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// Planes returns the currently detected planes
func (w *MeshWorld) Planes() []Plane {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]Plane(nil), w.planes...)
}

// FeatureCount returns the number of tracked feature points
func (w *MeshWorld) FeatureCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.features)
}

// Model returns the scene currently tracked
func (w *MeshWorld) Model() *stl.Model {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.model
}

// SetViewpoint replaces the device pose used by hit-tests
func (w *MeshWorld) SetViewpoint(v Viewpoint) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.viewpoint = v
}

// Reload swaps in a new scene, re-running plane detection if tracking
func (w *MeshWorld) Reload(ctx context.Context, model *stl.Model) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		if err := w.reconstruct(ctx, model, w.config); err != nil {
			return err
		}
	}
	w.model = model
	return nil
}

// reconstruct must be called with mu held
func (w *MeshWorld) reconstruct(ctx context.Context, model *stl.Model, cfg Configuration) error {
	planes, err := DetectPlanes(ctx, model.Triangles, cfg.PlaneDetection, w.opts.Planes)
	if err != nil {
		return fmt.Errorf("plane detection: %w", err)
	}
	w.planes = planes
	w.features = model.Vertices()

	w.log.Info().
		Str("detection", cfg.PlaneDetection.String()).
		Int("planes", len(planes)).
		Int("features", len(w.features)).
		Msg("scene reconstructed")
	return nil
}

// HitTest casts a ray through p and returns ranked candidates
func (w *MeshWorld) HitTest(p ScreenPoint) ([]HitCandidate, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if !w.running {
		return nil, ErrNotRunning
	}
	if w.viewpoint == nil {
		return nil, fmt.Errorf("hit-test at %v: no viewpoint", p)
	}

	ray := w.viewpoint.RayThrough(p)
	occluder := w.nearestSurface(ray)

	var features []HitCandidate
	for _, v := range w.features {
		along := ray.Project(v)
		if along <= 0 || along > occluder+w.opts.FeatureTolerance {
			continue
		}
		if ray.DistToPoint(v) <= w.opts.FeatureTolerance {
			features = append(features, HitCandidate{Kind: FeaturePoint, Position: v, Distance: along})
		}
	}

	var planeHits []HitCandidate
	for _, plane := range w.planes {
		if d, ok := plane.IntersectRay(ray); ok {
			planeHits = append(planeHits, HitCandidate{
				Kind:     PlaneExtent,
				Position: ray.At(d),
				Distance: d,
				PlaneID:  plane.ID,
			})
		}
	}

	sortByDistance(features)
	sortByDistance(planeHits)
	return append(features, planeHits...), nil
}

// nearestSurface is the distance to the first mesh facet along the ray
func (w *MeshWorld) nearestSurface(ray geometry.Ray) float64 {
	best := math.Inf(1)
	for _, tri := range w.model.Triangles {
		if d, ok := tri.IntersectRay(ray); ok && d < best {
			best = d
		}
	}
	return best
}

func sortByDistance(c []HitCandidate) {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].Distance < c[j].Distance
	})
}
