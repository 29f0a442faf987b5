package chart

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Palette holds the colors a chart is drawn with.
type Palette struct {
	Theme      string
	Background drawing.Color
	TextColor  drawing.Color
	Border     drawing.Color
	Series     []drawing.Color
}

// LightPalette is used when dark mode is off.
var LightPalette = Palette{
	Theme:      ThemeLight,
	Background: drawing.ColorFromHex("ffffff"),
	TextColor:  drawing.ColorFromHex("1d2129"),
	Border:     drawing.ColorFromHex("ffffff"),
	Series: []drawing.Color{
		drawing.ColorFromHex("165dff"),
		drawing.ColorFromHex("14c9c9"),
		drawing.ColorFromHex("f7ba1e"),
		drawing.ColorFromHex("722ed1"),
		drawing.ColorFromHex("f77234"),
	},
}

// DarkPalette is used when dark mode is on.
var DarkPalette = Palette{
	Theme:      ThemeDark,
	Background: drawing.ColorFromHex("17171a"),
	TextColor:  drawing.ColorFromHex("f6f6f6"),
	Border:     drawing.ColorFromHex("17171a"),
	Series: []drawing.Color{
		drawing.ColorFromHex("3c7eff"),
		drawing.ColorFromHex("30cfcf"),
		drawing.ColorFromHex("fac649"),
		drawing.ColorFromHex("8e51da"),
		drawing.ColorFromHex("f9925a"),
	},
}

// PaletteFor picks the palette for a dark-mode flag.
func PaletteFor(isDark bool) Palette {
	if isDark {
		return DarkPalette
	}
	return LightPalette
}

// SeriesColor cycles through the series colors.
func (p Palette) SeriesColor(i int) drawing.Color {
	if len(p.Series) == 0 {
		return p.TextColor
	}
	return p.Series[i%len(p.Series)]
}
