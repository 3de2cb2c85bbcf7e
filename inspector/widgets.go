package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg    = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill  = rl.Color{R: 255, G: 190, B: 120, A: 255}
	ColorText     = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim  = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorBoolOn   = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff  = rl.Color{R: 80, G: 80, B: 80, A: 255}
	ColorSwatchBg = rl.Color{R: 20, G: 20, B: 25, A: 255}
)

// DrawLabel renders "name: value" and returns the row height.
func DrawLabel(x, y int32, name string, value any, hints Hints) int32 {
	rl.DrawText(fmt.Sprintf("%s: %s", name, FormatValue(value, hints.Format)), x, y, 16, ColorText)
	return 20
}

// DrawBar renders a horizontal bar filled to value/max.
func DrawBar(x, y int32, name string, value float64, hints Hints) int32 {
	ratio := min(max(value/hints.Max, 0), 1)

	const barWidth, barHeight = 120, 14
	rl.DrawText(name, x, y, 14, ColorTextDim)

	barX := x + 90
	rl.DrawRectangle(barX, y, barWidth, barHeight, ColorBarBg)
	rl.DrawRectangle(barX, y, int32(barWidth*ratio), barHeight, ColorBarFill)
	rl.DrawText(FormatValue(value, hints.Format), barX+barWidth+5, y, 14, ColorTextDim)

	return 18
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	const size = 14
	indicatorX := x + 90
	color, text := ColorBoolOff, "NO"
	if value {
		color, text = ColorBoolOn, "YES"
	}
	rl.DrawRectangle(indicatorX, y, size, size, color)
	rl.DrawText(text, indicatorX+size+5, y, 14, color)

	return 18
}

// DrawField renders a field with its widget and returns the row height.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := Numeric(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Hints)
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
	}
	return DrawLabel(x, y, field.Name, field.Value, field.Hints)
}
