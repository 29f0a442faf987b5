package chart

import (
	"errors"
	"fmt"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/okian/assetlens/pkg/metrics"
)

// ErrNoData is returned when there is nothing positive to draw.
var ErrNoData = errors.New("chart: no data to render")

// RenderPNG draws opt as a pie chart and writes the PNG to w.
func RenderPNG(opt PieOption, w io.Writer) error {
	values := make([]gochart.Value, 0, len(opt.Slices))
	for i, s := range opt.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: s.Label,
			Value: s.Value,
			Style: gochart.Style{
				FillColor:   opt.Palette.SeriesColor(i),
				StrokeColor: opt.Palette.Border,
				StrokeWidth: 2,
				FontColor:   opt.Palette.TextColor,
			},
		})
	}
	if len(values) == 0 {
		return ErrNoData
	}

	width, height := opt.Width, opt.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	pie := gochart.PieChart{
		Title: opt.Title,
		TitleStyle: gochart.Style{
			FontColor: opt.Palette.TextColor,
		},
		Width:  width,
		Height: height,
		Background: gochart.Style{
			FillColor: opt.Palette.Background,
		},
		Canvas: gochart.Style{
			FillColor: opt.Palette.Background,
		},
		Values: values,
	}

	if err := pie.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	metrics.RecordChartRender(opt.Theme())
	return nil
}
