package datasource

import (
	"context"
	"fmt"
	"sync"
	"time"

	"corona-observer/src/analysis"
	"corona-observer/src/interfaces"
	"corona-observer/src/logger"
	"corona-observer/src/models"
)

// DatasetLoader turns one fetch of the source into a dataset and keeps the
// snapshot store in step with it.
type DatasetLoader struct {
	Source   interfaces.IDataSource
	Analyzer *analysis.AnalysisFacade
	Store    interfaces.ISnapshotStore // optional
	Logger   *logger.Logger

	mu   sync.Mutex
	last *models.MDataset
	now  func() time.Time
}

// -----------------------------------------------------------------------------

func NewDatasetLoader(source interfaces.IDataSource, analyzer *analysis.AnalysisFacade, store interfaces.ISnapshotStore, log *logger.Logger) *DatasetLoader {
	return &DatasetLoader{
		Source:   source,
		Analyzer: analyzer,
		Store:    store,
		Logger:   log,
		now:      time.Now,
	}
}

// -----------------------------------------------------------------------------

// Load fetches and aggregates a fresh dataset. When the fetch or parse fails
// and a snapshot exists, the snapshot is returned instead together with a nil
// error; the original failure is logged.
func (l *DatasetLoader) Load(ctx context.Context) (*models.MDataset, error) {
	ds, err := l.fetch(ctx)
	if err == nil {
		l.remember(ds)
		l.save(ds)
		return ds, nil
	}

	if ctx.Err() != nil || l.Store == nil {
		return nil, err
	}

	l.Logger.Warning("Fetch from %s failed, trying snapshot: %v", l.Source.Name(), err)
	snap, serr := l.Store.LoadDataset()
	if serr != nil {
		l.Logger.Error("Failed to load snapshot: %v", serr)
		return nil, err
	}
	if snap == nil {
		return nil, err
	}

	ds, ferr := analysis.Finalize(snap.Headers, snap.Countries)
	if ferr != nil {
		l.Logger.Error("Snapshot is unusable: %v", ferr)
		return nil, err
	}
	ds.FetchedAt = snap.FetchedAt
	ds.Origin = models.DatasetOriginSnapshot
	l.Logger.Info("Using snapshot from %s (%d countries)", ds.FetchedAt.Format(time.RFC3339), len(ds.Countries)-1)
	l.remember(ds)
	return ds, nil
}

// -----------------------------------------------------------------------------

// Last returns the most recent dataset returned by Load, or nil.
func (l *DatasetLoader) Last() *models.MDataset {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}

// -----------------------------------------------------------------------------

func (l *DatasetLoader) fetch(ctx context.Context) (*models.MDataset, error) {
	tables, err := l.Source.FetchTables(ctx)
	if err != nil {
		return nil, err
	}

	ds, err := l.Analyzer.BuildDataset(tables)
	if err != nil {
		return nil, fmt.Errorf("failed to build dataset from %s: %w", l.Source.Name(), err)
	}
	ds.FetchedAt = l.now()
	ds.Origin = models.DatasetOriginNetwork
	return ds, nil
}

func (l *DatasetLoader) save(ds *models.MDataset) {
	if l.Store == nil {
		return
	}
	if err := l.Store.SaveDataset(ds); err != nil {
		l.Logger.Error("Failed to save snapshot: %v", err)
	}
}

func (l *DatasetLoader) remember(ds *models.MDataset) {
	l.mu.Lock()
	l.last = ds
	l.mu.Unlock()
}
