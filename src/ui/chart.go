package ui

import (
	"strings"

	"corona-observer/src/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// yBound leaves headroom above the confirmed curve.
func yBound(c *models.MCountry) float64 {
	return float64(c.Confirmed+1) * 1.2
}

// plotData returns the three series as float points. asciigraph needs at
// least two points per series, so a single-day dataset is repeated.
func plotData(series [][]float64) [][]float64 {
	out := make([][]float64, len(series))
	for i, s := range series {
		switch len(s) {
		case 0:
			out[i] = []float64{0, 0}
		case 1:
			out[i] = []float64{s[0], s[0]}
		default:
			out[i] = s
		}
	}
	return out
}

func legend() string {
	parts := make([]string, len(models.AllMetrics))
	for i, m := range models.AllMetrics {
		parts[i] = legendStyles[i].Render("■ " + m.String())
	}
	return strings.Join(parts, "  ")
}

// renderChart plots the selected country's confirmed, deaths and recovered
// series inside a box of the given size.
func renderChart(c *models.MCountry, series [][]float64, width, height int) string {
	box := boxStyle.
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		MaxHeight(height)

	if c == nil {
		return box.Render(mutedStyle.Render("no country selected"))
	}

	// border (2) + title + legend + x axis slack
	plotHeight := height - 5
	// y-axis labels take roughly a dozen columns
	plotWidth := width - 16
	if plotHeight < 2 || plotWidth < 10 {
		return box.Render(titleStyle.Render(c.Country))
	}

	graph := asciigraph.PlotMany(plotData(series),
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(yBound(c)),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Red, asciigraph.Yellow),
	)

	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(c.Country)+"  "+legend(),
		graph,
	)
	return box.Render(body)
}
