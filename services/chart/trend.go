package chartsvc

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/attendance"
)

var ErrNoData = errors.New("no attendance data available yet")

const (
	defaultWidth  = 960
	defaultHeight = 360
	maxSize       = 2048
)

func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    4,
	}
}

// chartSize returns `size`, or `def` when it is not positive, capped at maxSize.
func chartSize(size, def int) int {
	switch {
	case size <= 0:
		return def
	case size > maxSize:
		return maxSize
	}
	return size
}

// RenderTrend writes the daily attendance rate as a PNG line chart.
// Width and height default to 960x360 and are capped at 2048 pixels each.
func RenderTrend(w io.Writer, trend []attendance.DaySummary, width, height int) error {
	if len(trend) == 0 {
		return ErrNoData
	}
	width = chartSize(width, defaultWidth)
	height = chartSize(height, defaultHeight)

	xs := make([]time.Time, 0, len(trend))
	ys := make([]float64, 0, len(trend))
	for _, day := range trend {
		t, err := core.ParseDate(day.Date)
		if err != nil {
			continue
		}
		xs = append(xs, t)
		ys = append(ys, float64(day.Rate))
	}
	if len(xs) == 0 {
		return ErrNoData
	}
	if len(xs) == 1 { // a series needs two points to be drawn
		xs = append(xs, xs[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}

	ticks := make([]chart.Tick, 0, 5)
	for v := 0; v <= 100; v += 25 {
		ticks = append(ticks, chart.Tick{Value: float64(v), Label: chart.IntValueFormatter(v) + "%"})
	}

	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name:  "Attendance rate",
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			Ticks: ticks,
		},
		Series: []chart.Series{
			chart.TimeSeries{Name: "Daily rate", XValues: xs, YValues: ys, Style: pointStyle(chart.ColorBlue)},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return errors.Wrap(err, "rendering trend chart")
	}
	return nil
}
