package models

// TotalCountry is the reserved name of the synthetic record summing every country.
const TotalCountry = "TOTAL"

// MCountry is the aggregated record of one country. Every series holds one
// value per date header of the dataset it belongs to.
type MCountry struct {
	Country         string   `json:"country"`
	Confirmed       int64    `json:"confirmed"`
	Deaths          int64    `json:"deaths"`
	Recovered       int64    `json:"recovered"`
	ConfirmedSeries []int64  `json:"confirmed_series"`
	DeathsSeries    []int64  `json:"deaths_series"`
	RecoveredSeries []int64  `json:"recovered_series"`
	Headers         []string `json:"headers,omitempty"` // only set on TOTAL
}

// Value returns the counter for the given metric.
func (c *MCountry) Value(m Metric) int64 {
	switch m {
	case MetricDeaths:
		return c.Deaths
	case MetricRecovered:
		return c.Recovered
	default:
		return c.Confirmed
	}
}

// Series returns the time series for the given metric.
func (c *MCountry) Series(m Metric) []int64 {
	switch m {
	case MetricDeaths:
		return c.DeathsSeries
	case MetricRecovered:
		return c.RecoveredSeries
	default:
		return c.ConfirmedSeries
	}
}
