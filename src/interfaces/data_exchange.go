package interfaces

import (
	"context"

	"corona-observer/src/models"
)

// -----------------------------------------------------------------------------
// IDataExchanger shares the current dataset with external systems (API/Push).
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// UpdateDataset replaces the served dataset and pushes it to listeners.
	UpdateDataset(ds *models.MDataset)

	// -----------------------------------------------------------------------------
	// Start the server; blocks until it stops.
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop(ctx context.Context) error
}
