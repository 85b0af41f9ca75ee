package app

import (
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/armeasure/pkg/stl"
)

// CameraState holds the orbit camera that stands in for the device pose
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3 // Current camera target (can be panned)
	defaultDist   float32
	defaultAngleX float32
	defaultAngleY float32
}

// ModelData holds the scene mesh
type ModelData struct {
	model    *stl.Model
	mesh     rl.Mesh
	material rl.Material
	center   rl.Vector3
	size     float32 // Max dimension in meters
}

// ViewSettings holds display toggles
type ViewSettings struct {
	showWireframe bool
	showFilled    bool
	showPlanes    bool
	showHelp      bool
}

// InteractionState holds mouse state between frames
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	isPanning    bool
}

// ReloadState hands models loaded by the watcher to the main thread
type ReloadState struct {
	mu       sync.Mutex
	pending  *stl.Model
	loadedAt time.Time
}

// UIState holds HUD state
type UIState struct {
	font       rl.Font
	status     string
	statusTime time.Time
}
