// Package workspace opens a scene file and wires the simulated tracker,
// the measurement coordinator and the anchor scene around it. All front
// ends share it.
package workspace

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/philipparndt/armeasure/internal/ar"
	"github.com/philipparndt/armeasure/internal/config"
	"github.com/philipparndt/armeasure/internal/scene"
	"github.com/philipparndt/armeasure/internal/tracking"
	"github.com/philipparndt/armeasure/pkg/stl"
	"github.com/philipparndt/armeasure/pkg/watcher"
	"github.com/rs/zerolog"
)

// LoadModel parses an STL scene and converts it to meters
func LoadModel(path string, unitScale float64) (*stl.Model, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".stl" {
		return nil, fmt.Errorf("unsupported file type: %s (expected .stl)", ext)
	}

	model, err := stl.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse STL file: %w", err)
	}
	if unitScale != 1 {
		model = model.Scaled(unitScale)
	}
	return model, nil
}

// TrackingOptions converts the tracking settings for the simulated tracker
func TrackingOptions(cfg *config.Config) tracking.Options {
	return tracking.Options{
		FeatureTolerance: cfg.Tracking.FeatureTolerance,
		Planes: tracking.PlaneOptions{
			AngleTolerance:  cfg.PlaneAngleRadians(),
			OffsetTolerance: cfg.Tracking.PlaneOffsetTolerance,
			MinArea:         cfg.Tracking.MinPlaneArea,
		},
	}
}

// Workspace is one open scene with its running measurement stack
type Workspace struct {
	Path        string
	World       *tracking.MeshWorld
	Scene       *scene.Scene
	Coordinator *ar.Coordinator

	cfg     *config.Config
	log     zerolog.Logger
	mu      sync.Mutex
	watcher *watcher.FileWatcher
}

// Open loads path and starts tracking, hit-testing through viewpoint
func Open(ctx context.Context, path string, cfg *config.Config, viewpoint tracking.Viewpoint, log zerolog.Logger) (*Workspace, error) {
	model, err := LoadModel(path, cfg.UnitScale())
	if err != nil {
		return nil, err
	}

	world := tracking.NewMeshWorld(model, viewpoint, TrackingOptions(cfg), log)
	sc := scene.New(cfg.Render.AnchorWarnThreshold, log)
	coordinator := ar.NewCoordinator(world, world, sc, log)
	if err := coordinator.Start(ctx); err != nil {
		return nil, err
	}

	log.Info().
		Str("file", path).
		Int("triangles", model.TriangleCount()).
		Str("units", cfg.Scene.Units).
		Msg("scene loaded")

	return &Workspace{
		Path:        path,
		World:       world,
		Scene:       sc,
		Coordinator: coordinator,
		cfg:         cfg,
		log:         log.With().Str("component", "workspace").Logger(),
	}, nil
}

// Model returns the scene mesh currently tracked
func (w *Workspace) Model() *stl.Model {
	return w.World.Model()
}

// Watch reloads the scene whenever the file changes, if enabled in the
// configuration. onReload runs on the watcher goroutine after the tracker
// has switched to the new model.
func (w *Workspace) Watch(ctx context.Context, onReload func(*stl.Model)) error {
	if !w.cfg.Scene.Watch {
		return nil
	}

	fw, err := watcher.New(w.cfg.Scene.WatchDebounce, w.log)
	if err != nil {
		return err
	}
	if err := fw.Watch(w.Path, func(string) { w.reload(ctx, onReload) }); err != nil {
		fw.Close()
		return err
	}

	w.mu.Lock()
	w.watcher = fw
	w.mu.Unlock()

	go fw.Run(ctx)
	return nil
}

// reload keeps the old scene when the new file does not parse
func (w *Workspace) reload(ctx context.Context, onReload func(*stl.Model)) {
	model, err := LoadModel(w.Path, w.cfg.UnitScale())
	if err != nil {
		w.log.Error().Err(err).Msg("reload failed, keeping previous scene")
		return
	}
	if err := w.World.Reload(ctx, model); err != nil {
		w.log.Error().Err(err).Msg("reload failed, keeping previous scene")
		return
	}

	w.log.Info().Int("triangles", model.TriangleCount()).Msg("scene reloaded")
	if onReload != nil {
		onReload(model)
	}
}

// Close stops tracking and file watching
func (w *Workspace) Close() error {
	w.Coordinator.Stop()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		err := w.watcher.Close()
		w.watcher = nil
		return err
	}
	return nil
}
