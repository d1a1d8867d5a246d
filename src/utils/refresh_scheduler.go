package utils

import (
	"context"
	"time"

	"corona-observer/src/logger"
)

// RefreshScheduler reloads the dataset on a fixed period. Runs never overlap:
// a tick that fires while a refresh is still running is dropped by the ticker.
type RefreshScheduler struct {
	Interval time.Duration
	Logger   *logger.Logger
}

// -----------------------------------------------------------------------------

func NewRefreshScheduler(interval time.Duration, l *logger.Logger) *RefreshScheduler {
	return &RefreshScheduler{
		Interval: interval,
		Logger:   l,
	}
}

// -----------------------------------------------------------------------------

// Run calls fn once per interval until ctx is done. A failing refresh is
// logged and the next tick retries. Run returns immediately when the
// interval is not positive.
func (rs *RefreshScheduler) Run(ctx context.Context, fn func(ctx context.Context) error) {
	if rs.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(rs.Interval)
	defer ticker.Stop()

	rs.Logger.Info("RefreshScheduler: refreshing every %v", rs.Interval)

	for {
		select {
		case <-ctx.Done():
			rs.Logger.Info("RefreshScheduler: stopped")
			return
		case <-ticker.C:
			start := time.Now()
			if err := fn(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				rs.Logger.Warning("RefreshScheduler: refresh failed: %v", err)
				continue
			}
			rs.Logger.Debug("RefreshScheduler: refresh took %v", time.Since(start))
		}
	}
}
