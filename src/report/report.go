package report

import (
	"fmt"
	"io"

	"corona-observer/src/analysis"
	"corona-observer/src/models"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Write renders the dataset sorted by metric as a plain table followed by the
// summary figures. limit caps the number of rows (TOTAL included); zero
// prints every row.
func Write(w io.Writer, analyzer *analysis.AnalysisFacade, ds *models.MDataset, metric models.Metric, limit int) error {
	rows := analyzer.Rows(ds, metric)
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	tb := table.NewWriter()
	tb.SetOutputMirror(w)
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tb.SetStyle(style)
	tb.SetTitle(fmt.Sprintf("Corona virus - sorted by %s", metric))
	tb.AppendHeader(table.Row{"Country", "Confirmed", "Deaths", "Deaths (%)", "Recovered", "Recovered (%)"})

	right := make([]table.ColumnConfig, 0, 5)
	for n := 2; n <= 6; n++ {
		right = append(right, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	tb.SetColumnConfigs(right)

	for _, r := range rows {
		tb.AppendRow(table.Row{
			r.Country,
			humanize.Comma(r.Confirmed),
			humanize.Comma(r.Deaths),
			r.DeathRate,
			humanize.Comma(r.Recovered),
			r.RecoveryRate,
		})
	}
	tb.Render()

	s := analyzer.Summary(ds)
	_, err := fmt.Fprintf(w, "Updated: %s  Total confirmed: %s  Deaths: %s (%s)  Recovered: %s (%s)  Source: %s\n",
		s.Updated,
		humanize.Comma(s.Confirmed),
		humanize.Comma(s.Deaths), s.DeathRate,
		humanize.Comma(s.Recovered), s.RecoveryRate,
		s.Origin,
	)
	return err
}
