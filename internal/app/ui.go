package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/armeasure/version"
)

const statusDuration = 3 * time.Second

// drawCrosshair draws the aiming cross in the window center
func (app *App) drawCrosshair() {
	cx := float32(rl.GetScreenWidth()) / 2
	cy := float32(rl.GetScreenHeight()) / 2
	col := rl.Fade(rl.White, 0.5)

	rl.DrawLineEx(rl.Vector2{X: cx - 10, Y: cy}, rl.Vector2{X: cx + 10, Y: cy}, 2, col)
	rl.DrawLineEx(rl.Vector2{X: cx, Y: cy - 10}, rl.Vector2{X: cx, Y: cy + 10}, 2, col)
}

// drawUI draws the heads-up display
func (app *App) drawUI() {
	y := float32(10)
	lineHeight := float32(20)
	fontSize16 := float32(16)
	fontSize14 := float32(14)
	fontSize12 := float32(12)

	text := func(s string, size float32, col rl.Color) {
		rl.DrawTextEx(app.UI.font, s, rl.Vector2{X: 10, Y: y}, size, 1, col)
		y += lineHeight
	}

	// === TRACKING ===
	text("Tracking:", fontSize16, rl.Yellow)
	if app.ws.World.Running() {
		text(fmt.Sprintf("  Planes: %d | Features: %d", len(app.ws.World.Planes()), app.ws.World.FeatureCount()), fontSize14, rl.White)
	} else {
		text("  Paused", fontSize14, rl.Red)
	}
	y += lineHeight / 2

	// === MEASURE ===
	text("Measure:", fontSize16, rl.Yellow)
	if start, ok := app.ws.Coordinator.Pending(); ok {
		text(fmt.Sprintf("  Start: %s", start), fontSize14, rl.Green)
		text("  Tap to place the end point", fontSize14, rl.NewColor(144, 238, 144, 255))
	} else {
		text("  Tap to place the start point", fontSize14, rl.NewColor(144, 238, 144, 255))
	}
	results := app.ws.Scene.Measurements()
	if n := len(results); n > 0 {
		text(fmt.Sprintf("  Last: %s (%d total)", results[n-1].Text(), n), fontSize14, rl.Yellow)
	}
	y += lineHeight / 2

	if app.View.showHelp {
		text("Controls:", fontSize16, rl.Yellow)
		text("  Click / Space: Tap at crosshair", fontSize14, rl.LightGray)
		text("  Left Drag: Rotate | Shift+Drag: Pan | Wheel: Zoom", fontSize14, rl.LightGray)
		text("  C: Clear | R: Reset session | Home: Reset view", fontSize14, rl.LightGray)
		text("  W: Wireframe | F: Fill | P: Planes | H: Help | Esc: Quit", fontSize14, rl.LightGray)
	}

	// Transient status in the bottom-right corner
	if app.UI.status != "" && time.Since(app.UI.statusTime) < statusDuration {
		boxPadding := float32(10)
		textSize := rl.MeasureTextEx(app.UI.font, app.UI.status, fontSize16, 1)
		boxWidth := textSize.X + boxPadding*2
		boxHeight := textSize.Y + boxPadding*2
		boxX := float32(rl.GetScreenWidth()) - boxWidth - 20
		boxY := float32(rl.GetScreenHeight()) - boxHeight - 20

		rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 200))
		rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)
		rl.DrawTextEx(app.UI.font, app.UI.status, rl.Vector2{X: boxX + boxPadding, Y: boxY + boxPadding}, fontSize16, 1, rl.Yellow)
	}

	// Version and FPS in bottom-left corner
	bottomY := float32(rl.GetScreenHeight()) - 30
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawTextEx(app.UI.font, versionText, rl.Vector2{X: 10, Y: bottomY}, fontSize12, 1, rl.Gray)

	fpsText := fmt.Sprintf("FPS: %d", rl.GetFPS())
	versionWidth := rl.MeasureTextEx(app.UI.font, versionText, fontSize12, 1).X
	rl.DrawTextEx(app.UI.font, fpsText, rl.Vector2{X: 10 + versionWidth + 15, Y: bottomY}, fontSize12, 1, rl.Lime)
}
