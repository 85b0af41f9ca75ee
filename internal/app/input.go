package app

import (
	"errors"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/armeasure/internal/measurement"
	"github.com/philipparndt/armeasure/internal/tracking"
)

// handleInput processes user input
func (app *App) handleInput() {
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyW) {
		app.View.showWireframe = !app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyF) {
		app.View.showFilled = !app.View.showFilled
	}
	if rl.IsKeyPressed(rl.KeyP) {
		app.View.showPlanes = !app.View.showPlanes
	}
	if rl.IsKeyPressed(rl.KeyH) {
		app.View.showHelp = !app.View.showHelp
	}
	if rl.IsKeyPressed(rl.KeyC) {
		app.ws.Scene.Clear()
		app.setStatus("Measurements cleared")
	}
	if rl.IsKeyPressed(rl.KeyR) {
		app.ws.Coordinator.Reset()
		app.setStatus("Session reset")
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		app.tap()
	}

	// Track mouse down for click vs drag detection
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = rl.GetMousePosition()
		app.Interaction.mouseMoved = false
		app.Interaction.isPanning = rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
	}

	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Interaction.isPanning) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.Interaction.mouseMoved = true
			app.doPan(delta)
		}
	} else if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		if math.Abs(float64(delta.X)) > 1.0 || math.Abs(float64(delta.Y)) > 1.0 {
			app.Interaction.mouseMoved = true
		}
		if delta.X != 0 || delta.Y != 0 {
			app.Camera.angleY -= delta.X * 0.01
			app.Camera.angleX += delta.Y * 0.01

			// Clamp vertical rotation
			if app.Camera.angleX > 1.5 {
				app.Camera.angleX = 1.5
			}
			if app.Camera.angleX < -1.5 {
				app.Camera.angleX = -1.5
			}
		}
	}

	// A click that did not drag is a tap
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		dragDistance := rl.Vector2Distance(app.Interaction.mouseDownPos, rl.GetMousePosition())
		if !app.Interaction.mouseMoved && !app.Interaction.isPanning && dragDistance < 5.0 {
			app.tap()
		}
		app.Interaction.isPanning = false
	}

	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		app.Camera.distance *= 1.0 - wheel*0.05
		minDist := app.Model.size * 0.05
		if app.Camera.distance < minDist {
			app.Camera.distance = minDist
		}
	}
}

// tap hit-tests through the crosshair
func (app *App) tap() {
	out, ok, err := app.ws.Coordinator.TapCenter(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	switch {
	case errors.Is(err, tracking.ErrNotRunning):
		app.setStatus("Tracking is not running")
	case err != nil:
		app.log.Error().Err(err).Msg("tap failed")
		app.setStatus("Tap failed")
	case !ok:
		app.setStatus("Nothing under the crosshair")
	default:
		switch o := out.(type) {
		case measurement.Started:
			app.setStatus("Start point placed")
		case measurement.Completed:
			app.setStatus(o.Result.Text())
		}
	}
}

func (app *App) setStatus(msg string) {
	app.UI.status = msg
	app.UI.statusTime = time.Now()
}
