package main

import (
	"github.com/philipparndt/armeasure/internal/app"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view <scene.stl>",
	Short: "Open the interactive 3D measuring view",
	Long: `Open the scene in an interactive raylib window. Orbit the camera with the
mouse and click or press Space to tap at the crosshair.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), args[0], cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
