package scene

import (
	"sync"
	"testing"

	"github.com/philipparndt/armeasure/internal/measurement"
	"github.com/philipparndt/armeasure/pkg/geometry"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func v(x, y, z float64) geometry.Vector3 { return geometry.NewVector3(x, y, z) }

func kinds(a Anchor) []EntityKind {
	var k []EntityKind
	for _, e := range a.Entities {
		k = append(k, e.Kind)
	}
	return k
}

func TestMeasurementStartedPlacesMarker(t *testing.T) {
	s := New(0, zerolog.Nop())
	s.MeasurementStarted(measurement.Started{Point: v(1, 2, 3)})

	anchors := s.Anchors()
	require.Len(t, anchors, 1)
	a := anchors[0]
	assert.Equal(t, StartAnchor, a.Kind)
	assert.Equal(t, v(1, 2, 3), a.Position)
	assert.Equal(t, []EntityKind{Sphere}, kinds(a))
	assert.Equal(t, v(1, 2, 3), a.WorldPosition(a.Entities[0]))
	assert.Nil(t, a.Result)
}

func TestMeasurementCompletedPlacesAllEntities(t *testing.T) {
	s := New(0, zerolog.Nop())
	result := measurement.NewResult(v(0, 0, 0), v(0, 0, 1))
	s.MeasurementCompleted(measurement.Completed{Result: result})

	anchors := s.Anchors()
	require.Len(t, anchors, 1)
	a := anchors[0]
	assert.Equal(t, MeasurementAnchor, a.Kind)
	assert.Equal(t, []EntityKind{Sphere, Sphere, Box, Text}, kinds(a))

	box := a.Entities[2]
	assert.Equal(t, v(0, 0, 0.5), a.WorldPosition(box))
	assert.Equal(t, v(0.002, 0.002, 1), box.Size)

	text := a.Entities[3]
	assert.Equal(t, "100.00 cm", text.Text)
	assert.True(t, a.WorldPosition(text).ApproxEqual(v(0, 0.05, 1), 1e-12))

	require.NotNil(t, a.Result)
	assert.Equal(t, result, *a.Result)
	assert.Equal(t, []measurement.Result{result}, s.Measurements())
}

func TestChildPositionsAreLocalToAnchor(t *testing.T) {
	s := New(0, zerolog.Nop())
	start, end := v(2, 1, 2), v(3, 1, 2)
	s.MeasurementCompleted(measurement.Completed{Result: measurement.NewResult(start, end)})

	a := s.Anchors()[0]
	assert.Equal(t, start, a.Position)
	assert.Equal(t, geometry.Vector3{}, a.Entities[0].Position)
	assert.Equal(t, v(1, 0, 0), a.Entities[1].Position)
	assert.Equal(t, end, a.WorldPosition(a.Entities[1]))
}

func TestDegenerateMeasurementHasNoBox(t *testing.T) {
	s := New(0, zerolog.Nop())
	p := v(1, 1, 1)
	s.MeasurementCompleted(measurement.Completed{Result: measurement.NewResult(p, p)})

	assert.Equal(t, []EntityKind{Sphere, Sphere, Text}, kinds(s.Anchors()[0]))
}

func TestClearAndVersion(t *testing.T) {
	s := New(2, zerolog.Nop())
	v0 := s.Version()

	s.MeasurementStarted(measurement.Started{Point: v(0, 0, 0)})
	s.MeasurementStarted(measurement.Started{Point: v(1, 0, 0)})
	assert.Equal(t, 2, s.Len())
	assert.Greater(t, s.Version(), v0)

	before := s.Version()
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Greater(t, s.Version(), before)
}

func TestAnchorsAreUnique(t *testing.T) {
	s := New(0, zerolog.Nop())
	s.MeasurementStarted(measurement.Started{Point: v(0, 0, 0)})
	s.MeasurementStarted(measurement.Started{Point: v(0, 0, 0)})

	anchors := s.Anchors()
	assert.NotEqual(t, anchors[0].ID, anchors[1].ID)
}

func TestConcurrentReaders(t *testing.T) {
	s := New(0, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Anchors()
				_ = s.Len()
			}
		}()
	}
	for i := 0; i < 100; i++ {
		s.MeasurementStarted(measurement.Started{Point: v(float64(i), 0, 0)})
	}
	wg.Wait()

	assert.Equal(t, 100, s.Len())
}
