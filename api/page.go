package api

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"strings"
	"time"

	"github.com/status-im/price-dashboard/dashboard"
	"github.com/status-im/price-dashboard/format"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

// Chart canvas in SVG user units
const (
	chartWidth   = 800
	chartHeight  = 320
	chartPadLeft = 90
	chartPadX    = 20
	chartPadY    = 20
)

type chartDot struct {
	X, Y  float64
	Title string
}

type chartLabel struct {
	X, Y float64
	Text string
}

type chartData struct {
	Width, Height int
	Polyline      string
	Dots          []chartDot
	XLabels       []chartLabel
	YLabels       []chartLabel
}

type pageData struct {
	View dashboard.View
	// RefreshSeconds drives the meta refresh, zero disables it
	RefreshSeconds int
	Chart          *chartData
}

func newPageData(view dashboard.View, refreshInterval time.Duration) pageData {
	page := pageData{
		View:           view,
		RefreshSeconds: int(math.Ceil(refreshInterval.Seconds())),
	}
	if view.Loading {
		// Re-check soon while the initial load is running
		page.RefreshSeconds = 2
	}
	if !view.ChartEmpty {
		page.Chart = buildChart(view.Chart)
	}
	return page
}

// buildChart maps chart entries onto the SVG canvas. Entries are spaced
// evenly on the x axis in sequence order.
func buildChart(points []format.ChartPoint) *chartData {
	if len(points) == 0 {
		return nil
	}

	low, high := points[0].Price, points[0].Price
	for _, p := range points[1:] {
		low = math.Min(low, p.Price)
		high = math.Max(high, p.Price)
	}

	plotWidth := float64(chartWidth - chartPadLeft - chartPadX)
	plotHeight := float64(chartHeight - 2*chartPadY)

	x := func(i int) float64 {
		if len(points) == 1 {
			return chartPadLeft + plotWidth/2
		}
		return chartPadLeft + plotWidth*float64(i)/float64(len(points)-1)
	}
	y := func(price float64) float64 {
		if high == low {
			return chartPadY + plotHeight/2
		}
		return chartPadY + plotHeight*(high-price)/(high-low)
	}

	chart := &chartData{
		Width:  chartWidth,
		Height: chartHeight,
		Dots:   make([]chartDot, 0, len(points)),
	}

	coords := make([]string, 0, len(points))
	step := max(1, len(points)/6)
	for i, p := range points {
		px, py := x(i), y(p.Price)
		coords = append(coords, fmt.Sprintf("%.1f,%.1f", px, py))
		chart.Dots = append(chart.Dots, chartDot{
			X:     px,
			Y:     py,
			Title: p.FullTime + ": " + format.FormatPrice(p.Price),
		})
		if i%step == 0 {
			chart.XLabels = append(chart.XLabels, chartLabel{X: px, Y: chartHeight - 2, Text: p.Time})
		}
	}
	chart.Polyline = strings.Join(coords, " ")

	chart.YLabels = []chartLabel{
		{X: chartPadLeft - 8, Y: y(high) + 4, Text: format.FormatAxisPrice(high)},
	}
	if high != low {
		chart.YLabels = append(chart.YLabels, chartLabel{X: chartPadLeft - 8, Y: y(low) + 4, Text: format.FormatAxisPrice(low)})
	}

	return chart
}
