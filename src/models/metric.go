package models

import (
	"fmt"
	"strings"
)

// Metric selects one of the three tracked counters.
type Metric int

const (
	MetricConfirmed Metric = iota
	MetricDeaths
	MetricRecovered
)

// AllMetrics lists the metrics in display order.
var AllMetrics = []Metric{MetricConfirmed, MetricDeaths, MetricRecovered}

func (m Metric) String() string {
	switch m {
	case MetricConfirmed:
		return "confirmed"
	case MetricDeaths:
		return "deaths"
	case MetricRecovered:
		return "recovered"
	}
	return fmt.Sprintf("metric(%d)", int(m))
}

// ParseMetric accepts the full metric name or its first letter.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "confirmed", "c":
		return MetricConfirmed, nil
	case "deaths", "d":
		return MetricDeaths, nil
	case "recovered", "r":
		return MetricRecovered, nil
	}
	return MetricConfirmed, fmt.Errorf("unknown metric %q", s)
}
