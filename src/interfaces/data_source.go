package interfaces

import (
	"context"

	"corona-observer/src/models"
)

// -----------------------------------------------------------------------------
// IDataSource fetches the raw time-series tables, one per metric.
// -----------------------------------------------------------------------------

type IDataSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// FetchTables downloads and parses the confirmed, deaths and recovered tables.
	FetchTables(ctx context.Context) (map[models.Metric]*models.MTimeSeriesTable, error)
}
