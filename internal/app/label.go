package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Label is a boxed text anchored above a screen position
type Label struct {
	Text      string
	ScreenPos rl.Vector2
	Color     rl.Color
}

// Draw renders the label centered above ScreenPos and returns its bounds
func (l *Label) Draw(font rl.Font, fontSize float32, padding float32) rl.Rectangle {
	textSize := rl.MeasureTextEx(font, l.Text, fontSize, 1)

	rect := rl.Rectangle{
		X:      l.ScreenPos.X - textSize.X/2 - padding,
		Y:      l.ScreenPos.Y - textSize.Y - 2*padding,
		Width:  textSize.X + 2*padding,
		Height: textSize.Y + 2*padding,
	}

	rl.DrawRectangleRec(rect, rl.NewColor(20, 20, 20, 220))
	rl.DrawRectangleLinesEx(rect, 2, l.Color)

	textPos := rl.Vector2{
		X: rect.X + padding,
		Y: rect.Y + padding,
	}
	rl.DrawTextEx(font, l.Text, textPos, fontSize, 1, l.Color)

	return rect
}
