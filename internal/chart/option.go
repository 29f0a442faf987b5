package chart

import (
	"fmt"

	"github.com/okian/assetlens/internal/asset"
)

const (
	defaultWidth  = 640
	defaultHeight = 640
)

// Slice is one wedge of a pie chart.
type Slice struct {
	Label string
	Value float64
}

// PieOption is the chart configuration produced for a given theme.
type PieOption struct {
	Title   string
	Palette Palette
	Slices  []Slice
	Width   int
	Height  int
}

// Theme returns the palette's theme name.
func (o PieOption) Theme() string { return o.Palette.Theme }

// DistributionOption returns a pure option builder for dist, suitable for UseChartOption.
func DistributionOption(title string, dist asset.Distribution) func(isDark bool) PieOption {
	slices := make([]Slice, 0, len(dist.Items))
	for i, it := range dist.Items {
		slices = append(slices, Slice{
			Label: fmt.Sprintf("%s %.1f%%", it.Name, dist.Share(i)*100),
			Value: it.Value,
		})
	}
	return func(isDark bool) PieOption {
		return PieOption{
			Title:   title,
			Palette: PaletteFor(isDark),
			Slices:  slices,
			Width:   defaultWidth,
			Height:  defaultHeight,
		}
	}
}
