package server

import (
	"bytes"
	"fmt"

	"corona-observer/src/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Colours match the terminal chart.
var seriesColors = map[models.Metric]string{
	models.MetricConfirmed: "#00bcd4",
	models.MetricDeaths:    "#e53935",
	models.MetricRecovered: "#fdd835",
}

func generateCountryChart(ds *models.MDataset, country *models.MCountry) *charts.Line {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: country.Country}),
		charts.WithTitleOpts(opts.Title{
			Title:    country.Country,
			Subtitle: fmt.Sprintf("%d confirmed, %d deaths, %d recovered", country.Confirmed, country.Deaths, country.Recovered),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			AxisLabel: &opts.AxisLabel{
				Rotate: 45,
			},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
	)

	line.SetXAxis(ds.Headers)

	for _, m := range models.AllMetrics {
		line.AddSeries(m.String(), generateLineItems(country.Series(m)),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: seriesColors[m]}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: seriesColors[m]}),
		)
	}

	return line
}

// generateLineItems converts a series to LineData
func generateLineItems(data []int64) []opts.LineData {
	items := make([]opts.LineData, 0, len(data))
	for _, v := range data {
		items = append(items, opts.LineData{Value: v})
	}
	return items
}

// renderCountryChart renders a standalone HTML page.
func renderCountryChart(ds *models.MDataset, country *models.MCountry) ([]byte, error) {
	var buf bytes.Buffer
	if err := generateCountryChart(ds, country).Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
