package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/armeasure/pkg/stl"
)

// queueReload is called from the watcher goroutine; the mesh itself must
// be rebuilt on the main thread
func (app *App) queueReload(model *stl.Model) {
	app.Reload.mu.Lock()
	defer app.Reload.mu.Unlock()
	app.Reload.pending = model
	app.Reload.loadedAt = time.Now()
}

// applyLoadedModel swaps in a reloaded model (must be called on main thread)
func (app *App) applyLoadedModel() {
	app.Reload.mu.Lock()
	model := app.Reload.pending
	app.Reload.pending = nil
	app.Reload.mu.Unlock()

	if model == nil {
		return
	}

	// Keep the user's view, following the model if its center moved
	oldCenter := app.Model.center
	newMesh := stlToRaylibMesh(model)

	oldMesh := app.Model.mesh
	app.Model.mesh = newMesh
	app.Model.model = model

	bbox := model.BoundingBox()
	size := bbox.Size()
	app.Model.center = toRaylib(bbox.Center())
	app.Model.size = float32(max(size.X, size.Y, size.Z))
	app.Camera.target = rl.Vector3Add(app.Camera.target, rl.Vector3Subtract(app.Model.center, oldCenter))

	rl.UnloadMesh(&oldMesh)

	app.log.Info().Dur("elapsed", time.Since(app.Reload.loadedAt)).Msg("mesh rebuilt")
	app.setStatus("Scene reloaded")
}
