package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

type edgeKey [2]rl.Vector3

// drawWireframe draws each mesh edge once
func (app *App) drawWireframe() {
	wireframeColor := rl.NewColor(100, 100, 100, 200)
	drawn := make(map[edgeKey]bool, len(app.Model.model.Triangles)*2)

	for _, triangle := range app.Model.model.Triangles {
		v1 := toRaylib(triangle.V1)
		v2 := toRaylib(triangle.V2)
		v3 := toRaylib(triangle.V3)

		for _, edge := range [3]edgeKey{{v1, v2}, {v2, v3}, {v3, v1}} {
			if drawn[edge] || drawn[edgeKey{edge[1], edge[0]}] {
				continue
			}
			drawn[edge] = true
			rl.DrawLine3D(edge[0], edge[1], wireframeColor)
		}
	}
}
