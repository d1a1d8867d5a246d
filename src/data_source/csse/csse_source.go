package csse

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"corona-observer/src/interfaces"
	"corona-observer/src/logger"
	"corona-observer/src/models"
)

// CSSESource downloads the three JHU CSSE time-series files.
type CSSESource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewCSSESource(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *CSSESource {
	return &CSSESource{
		Config:  cfg,
		Network: netMgr,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

func (s *CSSESource) Name() string {
	return "csse"
}

// -----------------------------------------------------------------------------

// URLs maps each metric to its configured endpoint.
func (s *CSSESource) URLs() map[models.Metric]string {
	return map[models.Metric]string{
		models.MetricConfirmed: s.Config.DataSource.ConfirmedURL,
		models.MetricDeaths:    s.Config.DataSource.DeathsURL,
		models.MetricRecovered: s.Config.DataSource.RecoveredURL,
	}
}

// -----------------------------------------------------------------------------

// FetchTables downloads the three CSVs concurrently and parses them. Any
// failure cancels the remaining downloads and is returned.
func (s *CSSESource) FetchTables(ctx context.Context) (map[models.Metric]*models.MTimeSeriesTable, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(map[models.Metric]*models.MTimeSeriesTable)
	var mu sync.Mutex
	var wg sync.WaitGroup
	var firstErr error

	for metric, url := range s.URLs() {
		wg.Add(1)
		go func(metric models.Metric, url string) {
			defer wg.Done()

			table, err := s.fetchTable(ctx, metric, url)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				return
			}
			results[metric] = table
		}(metric, url)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

// -----------------------------------------------------------------------------

func (s *CSSESource) fetchTable(ctx context.Context, metric models.Metric, url string) (*models.MTimeSeriesTable, error) {
	body, err := s.Network.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", metric, err)
	}

	table, err := ParseTimeSeries(metric, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	s.Logger.Info("Fetched %s: %d rows, %d dates", metric, len(table.Rows), len(table.Dates))
	return table, nil
}
