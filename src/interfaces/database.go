package interfaces

import "corona-observer/src/models"

// -----------------------------------------------------------------------------
// ISnapshotStore persists the last good dataset.
// -----------------------------------------------------------------------------

type ISnapshotStore interface {

	// -----------------------------------------------------------------------------

	// Initialize opens the connection and creates the schema if missing.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveDataset replaces the stored snapshot. The TOTAL record is not stored;
	// it is rebuilt on load.
	SaveDataset(ds *models.MDataset) error

	// -----------------------------------------------------------------------------

	// LoadDataset returns the stored countries and headers, without TOTAL.
	// It returns (nil, nil) when no snapshot exists yet.
	LoadDataset() (*models.MDataset, error)

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
