package viewer

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/armeasure/internal/measurement"
	"github.com/philipparndt/armeasure/internal/scene"
	"github.com/philipparndt/armeasure/pkg/geometry"
	"github.com/philipparndt/armeasure/pkg/stl"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floor() *stl.Model {
	m := stl.NewModel("floor")
	v := geometry.NewVector3
	m.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, v(-1, 0, -1), v(-1, 0, 1), v(1, 0, 1)))
	m.AddTriangle(geometry.NewTriangle(geometry.Vector3{}, v(-1, 0, -1), v(1, 0, 1), v(1, 0, -1)))
	return m
}

func TestSnapshotDrawsMesh(t *testing.T) {
	model := floor()
	cam := NewCamera(model.BoundingBox())
	img := Snapshot(model, nil, cam, 200, 200)

	require.Equal(t, 200, img.Bounds().Dx())
	require.Equal(t, 200, img.Bounds().Dy())

	x, y, depth := cam.Project(geometry.NewVector3(0.5, 0, 0.4), 200, 200)
	require.Greater(t, depth, 0.0)
	assert.NotEqual(t, backgroundColor, img.RGBAAt(int(x), int(y)))

	// corners stay empty
	assert.Equal(t, backgroundColor, img.RGBAAt(0, 0))
}

func TestSnapshotDrawsMarker(t *testing.T) {
	s := scene.New(0, zerolog.Nop())
	point := geometry.NewVector3(0.3, 0.1, 0.2)
	s.MeasurementStarted(measurement.Started{Point: point})

	bbox := geometry.NewBoundingBox()
	bbox.Extend(geometry.NewVector3(-1, 0, -1))
	bbox.Extend(geometry.NewVector3(1, 0, 1))
	cam := NewCamera(bbox)

	img := Snapshot(nil, s.Anchors(), cam, 200, 200)

	x, y, _ := cam.Project(point, 200, 200)
	assert.Equal(t, scene.MarkerColor, img.RGBAAt(int(x), int(y)))
}

func TestSnapshotDrawsSegmentAndLabel(t *testing.T) {
	s := scene.New(0, zerolog.Nop())
	start := geometry.NewVector3(-0.5, 0, 0)
	end := geometry.NewVector3(0.5, 0, 0)
	s.MeasurementCompleted(measurement.Completed{Result: measurement.NewResult(start, end)})

	bbox := geometry.NewBoundingBox()
	bbox.Extend(geometry.NewVector3(-1, 0, -1))
	bbox.Extend(geometry.NewVector3(1, 0, 1))
	cam := NewCamera(bbox)

	img := Snapshot(nil, s.Anchors(), cam, 300, 300)

	lineX, lineY, _ := cam.Project(geometry.NewVector3(-0.25, 0, 0), 300, 300)
	assert.Equal(t, scene.LineColor, img.RGBAAt(int(lineX), int(lineY)))

	x, y, _ := cam.Project(start, 300, 300)
	assert.Equal(t, scene.MarkerColor, img.RGBAAt(int(x), int(y)))
}

func TestWritePNG(t *testing.T) {
	model := floor()
	img := Snapshot(model, nil, NewCamera(model.BoundingBox()), 64, 48)

	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, WritePNG(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestWritePNGBadPath(t *testing.T) {
	img := Snapshot(nil, nil, NewCamera(floor().BoundingBox()), 8, 8)
	err := WritePNG(filepath.Join(t.TempDir(), "missing", "out.png"), img)
	assert.Error(t, err)
}
