// Package app is the interactive raylib viewer. The orbit camera plays the
// phone: taps hit-test through the crosshair at the center of the window.
package app

import (
	"context"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/armeasure/internal/config"
	"github.com/philipparndt/armeasure/internal/workspace"
	"github.com/rs/zerolog"
)

type App struct {
	Camera      CameraState
	Model       ModelData
	View        ViewSettings
	Interaction InteractionState
	Reload      ReloadState
	UI          UIState

	ws  *workspace.Workspace
	log zerolog.Logger
}

// Run opens path and shows the viewer until the window is closed
func Run(ctx context.Context, path string, cfg *config.Config, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := &App{
		View: ViewSettings{
			showFilled:    true,
			showWireframe: false,
			showPlanes:    true,
			showHelp:      true,
		},
		log: log.With().Str("component", "viewer").Logger(),
	}

	ws, err := workspace.Open(ctx, path, cfg, app, log)
	if err != nil {
		return err
	}
	defer ws.Close()
	app.ws = ws
	app.Model.model = ws.Model()

	if err := ws.Watch(ctx, app.queueReload); err != nil {
		app.log.Warn().Err(err).Msg("auto-reload not available")
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), fmt.Sprintf("armeasure - %s", path))
	rl.SetExitKey(rl.KeyEscape)
	rl.SetTargetFPS(60)

	app.UI.font = rl.GetFontDefault()
	app.Model.mesh = stlToRaylibMesh(app.Model.model)
	app.Model.material = rl.LoadMaterialDefault()
	app.setupCamera()

	for !rl.WindowShouldClose() {
		app.applyLoadedModel()

		app.handleInput()
		app.updateCamera()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		if app.View.showFilled {
			rl.DrawMesh(app.Model.mesh, app.Model.material, rl.MatrixIdentity())
		}
		if app.View.showWireframe {
			app.drawWireframe()
		}
		if app.View.showPlanes {
			app.drawPlanes()
		}
		app.drawAnchors()
		rl.EndMode3D()

		app.drawLabels()
		app.drawCrosshair()
		app.drawUI()

		rl.EndDrawing()
	}

	rl.UnloadMesh(&app.Model.mesh)
	rl.CloseWindow()
	return nil
}
