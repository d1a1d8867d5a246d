package models

// MTimeSeriesRow is one CSV line: a province (may be empty) of a country
// with one cumulative value per date column.
type MTimeSeriesRow struct {
	Province string
	Country  string
	Values   []int64
}

// MTimeSeriesTable is a parsed time-series CSV for a single metric.
type MTimeSeriesTable struct {
	Metric Metric
	Dates  []string
	Rows   []MTimeSeriesRow
}
