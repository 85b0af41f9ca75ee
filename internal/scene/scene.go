// Package scene keeps the anchored entities placed for measurements. Front
// ends draw from it; the coordinator writes to it through the Renderer
// methods.
package scene

import (
	"image/color"
	"sync"

	"github.com/google/uuid"
	"github.com/philipparndt/armeasure/internal/measurement"
	"github.com/philipparndt/armeasure/pkg/geometry"
	"github.com/rs/zerolog"
)

// Entity colors
var (
	MarkerColor = color.RGBA{R: 255, G: 40, B: 40, A: 255}
	LineColor   = color.RGBA{R: 255, G: 220, B: 0, A: 255}
	TextColor   = color.RGBA{R: 255, G: 220, B: 0, A: 255}
)

// EntityKind identifies the shape of an entity
type EntityKind int

const (
	Sphere EntityKind = iota
	Box
	Text
)

// Entity is a renderable child of an anchor. Position is relative to the
// anchor.
type Entity struct {
	Kind        EntityKind
	Position    geometry.Vector3
	Orientation geometry.Quaternion
	Radius      float64          // Sphere
	Size        geometry.Vector3 // Box, before rotation
	Text        string
	FontSize    float64
	Extrusion   float64
	Color       color.RGBA
}

// AnchorKind tells single start markers from finished measurements
type AnchorKind int

const (
	StartAnchor AnchorKind = iota
	MeasurementAnchor
)

// Anchor pins entities to a world position
type Anchor struct {
	ID       uuid.UUID
	Kind     AnchorKind
	Position geometry.Vector3
	Entities []Entity
	// Result is set on measurement anchors
	Result *measurement.Result
}

// WorldPosition returns the world-space position of one of the anchor's
// entities
func (a Anchor) WorldPosition(e Entity) geometry.Vector3 {
	return a.Position.Add(e.Position)
}

// Scene is an append-only list of anchors. Anchors are never updated in
// place; Clear drops all of them.
type Scene struct {
	mu        sync.RWMutex
	anchors   []Anchor
	version   uint64
	warnEvery int
	log       zerolog.Logger
}

// New creates an empty scene. A warning is logged each time the anchor
// count reaches a multiple of warnEvery; zero disables it.
func New(warnEvery int, log zerolog.Logger) *Scene {
	return &Scene{
		warnEvery: warnEvery,
		log:       log.With().Str("component", "scene").Logger(),
	}
}

// MeasurementStarted places a single marker at the start point
func (s *Scene) MeasurementStarted(o measurement.Started) {
	s.add(newAnchor(StartAnchor, o.Point, measurement.PrimitivesFor(o), nil))
}

// MeasurementCompleted places markers, segment and label under one anchor
// at the start point
func (s *Scene) MeasurementCompleted(o measurement.Completed) {
	result := o.Result
	s.add(newAnchor(MeasurementAnchor, result.Start, measurement.PrimitivesFor(o), &result))
}

func newAnchor(kind AnchorKind, at geometry.Vector3, p measurement.Primitives, result *measurement.Result) Anchor {
	a := Anchor{ID: uuid.New(), Kind: kind, Position: at, Result: result}

	local := func(world geometry.Vector3) geometry.Vector3 { return world.Sub(at) }

	for _, m := range p.Markers {
		a.Entities = append(a.Entities, Entity{
			Kind:        Sphere,
			Position:    local(m.Position),
			Orientation: geometry.IdentityQuaternion(),
			Radius:      m.Radius,
			Color:       MarkerColor,
		})
	}
	if seg := p.Segment; seg != nil {
		a.Entities = append(a.Entities, Entity{
			Kind:        Box,
			Position:    local(seg.Center),
			Orientation: seg.Orientation,
			Size:        geometry.NewVector3(seg.Thickness, seg.Thickness, seg.Length),
			Color:       LineColor,
		})
	}
	if label := p.Label; label != nil {
		a.Entities = append(a.Entities, Entity{
			Kind:        Text,
			Position:    local(label.Position),
			Orientation: geometry.IdentityQuaternion(),
			Text:        label.Text,
			FontSize:    label.FontSize,
			Extrusion:   label.Extrusion,
			Color:       TextColor,
		})
	}
	return a
}

func (s *Scene) add(a Anchor) {
	s.mu.Lock()
	s.anchors = append(s.anchors, a)
	s.version++
	count := len(s.anchors)
	s.mu.Unlock()

	s.log.Debug().
		Str("anchor", a.ID.String()).
		Int("entities", len(a.Entities)).
		Msg("anchor added")

	if s.warnEvery > 0 && count%s.warnEvery == 0 {
		s.log.Warn().Int("anchors", count).Msg("scene keeps growing; clear old measurements")
	}
}

// Anchors returns a snapshot of all anchors in placement order
func (s *Scene) Anchors() []Anchor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Anchor(nil), s.anchors...)
}

// Len returns the number of anchors
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.anchors)
}

// Version increases on every change, letting viewers skip redraws
func (s *Scene) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Clear removes every anchor
func (s *Scene) Clear() {
	s.mu.Lock()
	n := len(s.anchors)
	s.anchors = nil
	s.version++
	s.mu.Unlock()

	s.log.Info().Int("removed", n).Msg("scene cleared")
}

// Measurements returns the results of all completed measurements
func (s *Scene) Measurements() []measurement.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []measurement.Result
	for _, a := range s.anchors {
		if a.Result != nil {
			results = append(results, *a.Result)
		}
	}
	return results
}
