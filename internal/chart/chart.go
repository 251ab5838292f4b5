// Package chart draws mood history as a text line chart.
package chart

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/julianstephens/moodverse/internal/constants"
	"github.com/julianstephens/moodverse/internal/models"
)

// EmptyMessage is shown instead of a chart when there is no history.
const EmptyMessage = "No records to display!"

const (
	defaultHeight = constants.MaxScore - constants.MinScore
	axisMargin    = 8
	minWidth      = 10
)

type Options struct {
	// Width is the available terminal width. Zero leaves the plot one column per point.
	Width int
}

// Render plots points in the given order on a fixed 1-10 score axis.
// ok is false when points is empty.
func Render(points []models.ChartPoint, opts Options) (string, bool) {
	if len(points) == 0 {
		return "", false
	}

	data := make([]float64, len(points))
	for i, p := range points {
		data[i] = float64(p.Score)
	}
	// asciigraph needs two points to draw a line
	if len(data) == 1 {
		data = append(data, data[0])
	}

	plotOpts := []asciigraph.Option{
		asciigraph.Height(defaultHeight),
		asciigraph.LowerBound(constants.MinScore),
		asciigraph.UpperBound(constants.MaxScore),
		asciigraph.Precision(0),
		asciigraph.Caption("Mood over time"),
	}
	if w := opts.Width - axisMargin; w >= minWidth {
		plotOpts = append(plotOpts, asciigraph.Width(w))
	}

	var b strings.Builder
	b.WriteString(asciigraph.Plot(data, plotOpts...))
	b.WriteString("\n")
	b.WriteString(dateAxis(points))
	return b.String(), true
}

func dateAxis(points []models.ChartPoint) string {
	first, last := points[0].Date, points[len(points)-1].Date
	if first == last {
		return fmt.Sprintf("%s (%d entries)", first, len(points))
	}
	return fmt.Sprintf("%s .. %s (%d entries)", first, last, len(points))
}
