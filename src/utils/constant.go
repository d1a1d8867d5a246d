package utils

import "time"

// -----------------------------------------------------------------------------

// The upstream CSVs change once a day, so polling faster only burns requests.
const (
	MinRefreshInterval = time.Minute
)

// -----------------------------------------------------------------------------

// RefreshInterval converts the configured seconds into a ticker period. Zero
// disables refreshing; anything else is clamped to MinRefreshInterval.
func RefreshInterval(seconds int) time.Duration {
	if seconds <= 0 {
		return 0
	}
	d := time.Duration(seconds) * time.Second
	if d < MinRefreshInterval {
		return MinRefreshInterval
	}
	return d
}
