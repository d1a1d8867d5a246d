package core

import "fmt"

// -----------------------------------------------------------------------------

// Percentage returns 100*part/total, or 0 when total is 0.
func Percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * (float64(part) / float64(total))
}

// FormatPercentage renders a percentage with two decimals, e.g. "5.00%".
func FormatPercentage(part, total int64) string {
	return fmt.Sprintf("%.2f%%", Percentage(part, total))
}

// -----------------------------------------------------------------------------

// SumInto adds src to dst element-wise. Both must have the same length.
func SumInto(dst, src []int64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("series length mismatch: %d vs %d", len(dst), len(src))
	}
	for i, v := range src {
		dst[i] += v
	}
	return nil
}

// -----------------------------------------------------------------------------

// Last returns the final element of a cumulative series, 0 if empty.
func Last(series []int64) int64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

// -----------------------------------------------------------------------------

// ToPoints converts a series to float values for plotting.
func ToPoints(series []int64) []float64 {
	points := make([]float64, len(series))
	for i, v := range series {
		points[i] = float64(v)
	}
	return points
}
