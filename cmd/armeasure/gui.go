package main

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/armeasure/internal/tracking"
	"github.com/philipparndt/armeasure/internal/workspace"
	"github.com/philipparndt/armeasure/pkg/stl"
	"github.com/philipparndt/armeasure/pkg/viewer"
	"github.com/spf13/cobra"
)

var guiCmd = &cobra.Command{
	Use:   "gui <scene.stl>",
	Short: "Open the scene in a fyne window",
	Args:  cobra.ExactArgs(1),
	RunE:  runGUI,
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

func runGUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// The view's viewport replaces this one once the widget exists
	ws, err := workspace.Open(ctx, args[0], cfg, nil, logger)
	if err != nil {
		return err
	}
	defer ws.Close()

	a := fyneapp.New()
	w := a.NewWindow(fmt.Sprintf("armeasure - %s", args[0]))

	view := viewer.NewARView(ws.Model(), ws.Scene)
	ws.World.SetViewpoint(view.Viewport())

	status := widget.NewLabel("Tap to place the start point")
	view.SetOnTap(func(p tracking.ScreenPoint) {
		out, ok, err := ws.Coordinator.HandleTap(p)
		status.SetText(describeOutcome(out, ok, err))
		view.Redraw()
	})

	toolbar := container.NewHBox(
		widget.NewButton("Tap", view.TapCenter),
		widget.NewButton("Clear", func() {
			ws.Scene.Clear()
			view.Redraw()
			status.SetText("Measurements cleared")
		}),
		widget.NewButton("Reset", func() {
			ws.Coordinator.Reset()
			status.SetText("Tap to place the start point")
		}),
		status,
	)

	if err := ws.Watch(ctx, func(m *stl.Model) {
		fyne.Do(func() {
			view.SetModel(m)
			status.SetText("Scene reloaded")
		})
	}); err != nil {
		logger.Warn().Err(err).Msg("auto-reload not available")
	}

	w.SetContent(container.NewBorder(nil, toolbar, nil, nil, view))
	w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	w.ShowAndRun()
	return nil
}
