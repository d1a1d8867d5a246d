package analysis

import (
	"fmt"
	"sort"
	"time"

	"corona-observer/src/analysis/core"
	"corona-observer/src/logger"
	"corona-observer/src/models"
)

// AnalysisFacade builds datasets from raw tables and derives the views the
// dashboard, the API and the print mode need.
type AnalysisFacade struct {
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAnalysisFacade(log *logger.Logger) *AnalysisFacade {
	return &AnalysisFacade{Logger: log}
}

// -----------------------------------------------------------------------------

// BuildDataset merges the three metric tables into one dataset. The confirmed
// table provides the reference date header.
func (f *AnalysisFacade) BuildDataset(tables map[models.Metric]*models.MTimeSeriesTable) (*models.MDataset, error) {
	start := time.Now()

	ref, ok := tables[models.MetricConfirmed]
	if !ok {
		return nil, fmt.Errorf("missing %s table", models.MetricConfirmed)
	}

	agg := NewAggregator(ref.Dates, f.Logger)
	for _, m := range models.AllMetrics {
		table, ok := tables[m]
		if !ok {
			return nil, fmt.Errorf("missing %s table", m)
		}
		if err := agg.Add(table); err != nil {
			return nil, err
		}
	}

	ds, err := agg.Dataset()
	if err != nil {
		return nil, err
	}
	if f.Logger != nil {
		f.Logger.Info("Aggregated %d countries over %d dates in %v", len(ds.Countries)-1, len(ds.Headers), time.Since(start))
	}
	return ds, nil
}

// -----------------------------------------------------------------------------

// SortCountries returns the records ordered by the metric, largest first.
// Among equal values TOTAL comes first, then country names ascending, so the
// order is stable across runs.
func (f *AnalysisFacade) SortCountries(ds *models.MDataset, metric models.Metric) []*models.MCountry {
	list := make([]*models.MCountry, 0, len(ds.Countries))
	for _, c := range ds.Countries {
		list = append(list, c)
	}

	sort.Slice(list, func(i, j int) bool {
		vi, vj := list[i].Value(metric), list[j].Value(metric)
		if vi != vj {
			return vi > vj
		}
		// TOTAL stays on top when a single country holds every case
		if ti, tj := list[i].Country == models.TotalCountry, list[j].Country == models.TotalCountry; ti != tj {
			return ti
		}
		return list[i].Country < list[j].Country
	})
	return list
}

// -----------------------------------------------------------------------------

// Row renders a record as a table row.
func (f *AnalysisFacade) Row(c *models.MCountry) models.MCountryRow {
	return models.MCountryRow{
		Country:      c.Country,
		Confirmed:    c.Confirmed,
		Deaths:       c.Deaths,
		DeathRate:    core.FormatPercentage(c.Deaths, c.Confirmed),
		Recovered:    c.Recovered,
		RecoveryRate: core.FormatPercentage(c.Recovered, c.Confirmed),
	}
}

// Rows renders the sorted table.
func (f *AnalysisFacade) Rows(ds *models.MDataset, metric models.Metric) []models.MCountryRow {
	sorted := f.SortCountries(ds, metric)
	rows := make([]models.MCountryRow, len(sorted))
	for i, c := range sorted {
		rows[i] = f.Row(c)
	}
	return rows
}

// -----------------------------------------------------------------------------

// Summary returns the footer figures taken from the TOTAL record.
func (f *AnalysisFacade) Summary(ds *models.MDataset) models.MSummary {
	s := models.MSummary{Origin: ds.Origin}
	total := ds.Total()
	if total == nil {
		return s
	}

	if len(total.Headers) > 0 {
		s.Updated = total.Headers[len(total.Headers)-1]
	}
	s.Confirmed = total.Confirmed
	s.Deaths = total.Deaths
	s.DeathRate = core.FormatPercentage(total.Deaths, total.Confirmed)
	s.Recovered = total.Recovered
	s.RecoveryRate = core.FormatPercentage(total.Recovered, total.Confirmed)
	s.Countries = len(ds.Countries) - 1
	return s
}

// -----------------------------------------------------------------------------

// ChartSeries returns the confirmed, deaths and recovered series as points.
func (f *AnalysisFacade) ChartSeries(c *models.MCountry) [][]float64 {
	return [][]float64{
		core.ToPoints(c.ConfirmedSeries),
		core.ToPoints(c.DeathsSeries),
		core.ToPoints(c.RecoveredSeries),
	}
}
