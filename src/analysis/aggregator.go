package analysis

import (
	"slices"

	"corona-observer/src/analysis/core"
	"corona-observer/src/helpers"
	"corona-observer/src/logger"
	"corona-observer/src/models"
)

// Aggregator folds time-series tables into one record per country. Rows that
// share a country name (one per province) are summed element-wise.
type Aggregator struct {
	headers   []string
	countries map[string]*models.MCountry
	logger    *logger.Logger
}

// -----------------------------------------------------------------------------

// NewAggregator starts a fold over the given date header. Every table added
// later must carry exactly these dates.
func NewAggregator(headers []string, log *logger.Logger) *Aggregator {
	return &Aggregator{
		headers:   slices.Clone(headers),
		countries: make(map[string]*models.MCountry),
		logger:    log,
	}
}

// -----------------------------------------------------------------------------

// Add folds every row of the table into the per-country records.
func (a *Aggregator) Add(table *models.MTimeSeriesTable) error {
	if !slices.Equal(table.Dates, a.headers) {
		return helpers.NewParseError(nil, "%s: date header (%d dates) does not match reference (%d dates)",
			table.Metric, len(table.Dates), len(a.headers))
	}

	for _, row := range table.Rows {
		if err := a.AddRow(table.Metric, row.Country, row.Values); err != nil {
			return err
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

// AddRow sums one province row into its country record.
func (a *Aggregator) AddRow(metric models.Metric, country string, values []int64) error {
	if country == models.TotalCountry {
		if a.logger != nil {
			a.logger.Warning("Skipping %s row named %s: name is reserved", metric, country)
		}
		return nil
	}

	record := a.record(country)

	var series []int64
	switch metric {
	case models.MetricConfirmed:
		series = record.ConfirmedSeries
	case models.MetricDeaths:
		series = record.DeathsSeries
	case models.MetricRecovered:
		series = record.RecoveredSeries
	}

	if err := core.SumInto(series, values); err != nil {
		return helpers.NewParseError(err, "%s row for %s", metric, country)
	}
	return nil
}

// record returns the country's record, creating it with zero-filled series
// so all three series always match the header length.
func (a *Aggregator) record(country string) *models.MCountry {
	if c, ok := a.countries[country]; ok {
		return c
	}
	c := newCountry(country, len(a.headers))
	a.countries[country] = c
	return c
}

func newCountry(name string, days int) *models.MCountry {
	return &models.MCountry{
		Country:         name,
		ConfirmedSeries: make([]int64, days),
		DeathsSeries:    make([]int64, days),
		RecoveredSeries: make([]int64, days),
	}
}

// -----------------------------------------------------------------------------

// Dataset finalises counters and adds the TOTAL record. The aggregator must
// not be used afterwards.
func (a *Aggregator) Dataset() (*models.MDataset, error) {
	return Finalize(a.headers, a.countries)
}

// -----------------------------------------------------------------------------

// Finalize sets each record's counters from the last value of its series and
// inserts TOTAL, the element-wise sum of every other record. A record whose
// series do not match the header length is rejected with a ParseError before
// anything is modified.
func Finalize(headers []string, countries map[string]*models.MCountry) (*models.MDataset, error) {
	for name, c := range countries {
		if name == models.TotalCountry {
			continue
		}
		for _, m := range models.AllMetrics {
			if n := len(c.Series(m)); n != len(headers) {
				return nil, helpers.NewParseError(nil, "%s %s series has %d values, expected %d", name, m, n, len(headers))
			}
		}
	}

	total := newCountry(models.TotalCountry, len(headers))
	total.Headers = slices.Clone(headers)

	for name, c := range countries {
		if name == models.TotalCountry {
			continue
		}
		c.Confirmed = core.Last(c.ConfirmedSeries)
		c.Deaths = core.Last(c.DeathsSeries)
		c.Recovered = core.Last(c.RecoveredSeries)

		total.Confirmed += c.Confirmed
		total.Deaths += c.Deaths
		total.Recovered += c.Recovered
		for _, m := range models.AllMetrics {
			if err := core.SumInto(total.Series(m), c.Series(m)); err != nil {
				return nil, helpers.NewParseError(err, "summing %s into TOTAL", name)
			}
		}
	}

	countries[models.TotalCountry] = total

	return &models.MDataset{
		Headers:   slices.Clone(headers),
		Countries: countries,
	}, nil
}
