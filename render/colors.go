package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/liquid-sort/core"
)

var (
	StyleDefault  = tcell.StyleDefault
	StyleWall     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	StyleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	StyleTarget   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	StyleReject   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	StyleTitle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	StyleHelp     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	StyleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// xtermPalette is the 6x6x6 cube and gray ramp of the 256-color palette
var xtermPalette = func() []tcell.Color {
	p := make([]tcell.Color, 0, 240)
	for i := 16; i < 256; i++ {
		p = append(p, tcell.PaletteColor(i))
	}
	return p
}()

// PausedDim scales liquid colors while the game is paused
const PausedDim = 0.5

// LiquidColor converts a palette color to a terminal color
// trueColor false falls back to the nearest of the 256-color palette
func LiquidColor(c core.Color, trueColor bool) tcell.Color {
	return rgbColor(c.RGB(), trueColor)
}

func rgbColor(rgb core.RGB, trueColor bool) tcell.Color {
	tc := tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
	if !trueColor {
		return tcell.FindColor(tc, xtermPalette)
	}
	return tc
}

// LiquidStyle is the cell style for one unit of c
func LiquidStyle(c core.Color, trueColor bool) tcell.Style {
	return tcell.StyleDefault.Foreground(LiquidColor(c, trueColor))
}
