package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"corona-observer/src/analysis"
	"corona-observer/src/logger"
	"corona-observer/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	tables map[models.Metric]*models.MTimeSeriesTable
	err    error
	calls  int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) FetchTables(ctx context.Context) (map[models.Metric]*models.MTimeSeriesTable, error) {
	s.calls++
	return s.tables, s.err
}

type memoryStore struct {
	saved   *models.MDataset
	loadErr error
	saveErr error
}

func (m *memoryStore) Initialize() error { return nil }
func (m *memoryStore) Close() error      { return nil }

func (m *memoryStore) SaveDataset(ds *models.MDataset) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = ds
	return nil
}

func (m *memoryStore) LoadDataset() (*models.MDataset, error) {
	if m.loadErr != nil || m.saved == nil {
		return nil, m.loadErr
	}
	countries := make(map[string]*models.MCountry)
	for name, c := range m.saved.Countries {
		if name == models.TotalCountry {
			continue
		}
		countries[name] = c
	}
	return &models.MDataset{
		Headers:   m.saved.Headers,
		Countries: countries,
		FetchedAt: m.saved.FetchedAt,
		Origin:    models.DatasetOriginSnapshot,
	}, nil
}

func tables() map[models.Metric]*models.MTimeSeriesTable {
	dates := []string{"1/22/20", "1/23/20"}
	out := make(map[models.Metric]*models.MTimeSeriesTable)
	for _, m := range models.AllMetrics {
		out[m] = &models.MTimeSeriesTable{
			Metric: m,
			Dates:  dates,
			Rows: []models.MTimeSeriesRow{
				{Province: "Hubei", Country: "China", Values: []int64{1, 4}},
				{Province: "Beijing", Country: "China", Values: []int64{0, 2}},
				{Country: "Italy", Values: []int64{0, 3}},
			},
		}
	}
	return out
}

func newTestLoader(src *stubSource, store *memoryStore) *DatasetLoader {
	log := logger.NewLogger("LoaderTest")
	l := NewDatasetLoader(src, analysis.NewAnalysisFacade(log), nil, log)
	if store != nil {
		l.Store = store
	}
	l.now = func() time.Time { return time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC) }
	return l
}

func TestLoad_FromNetwork(t *testing.T) {
	store := &memoryStore{}
	l := newTestLoader(&stubSource{tables: tables()}, store)

	ds, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.DatasetOriginNetwork, ds.Origin)
	assert.Equal(t, int64(6), ds.Countries["China"].Confirmed)
	assert.Equal(t, int64(9), ds.Total().Confirmed)
	assert.Same(t, ds, store.saved)
	assert.Same(t, ds, l.Last())
}

func TestLoad_NoStoreReturnsError(t *testing.T) {
	boom := errors.New("boom")
	l := newTestLoader(&stubSource{err: boom}, nil)

	ds, err := l.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, ds)
	assert.Nil(t, l.Last())
}

func TestLoad_FallsBackToSnapshot(t *testing.T) {
	store := &memoryStore{}
	src := &stubSource{tables: tables()}
	l := newTestLoader(src, store)

	_, err := l.Load(context.Background())
	require.NoError(t, err)

	src.tables = nil
	src.err = errors.New("offline")

	ds, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DatasetOriginSnapshot, ds.Origin)
	require.NotNil(t, ds.Total())
	assert.Equal(t, int64(9), ds.Total().Confirmed)
	assert.Equal(t, []string{"1/22/20", "1/23/20"}, ds.Total().Headers)
	assert.Equal(t, 2, src.calls)
}

func TestLoad_EmptySnapshotKeepsError(t *testing.T) {
	boom := errors.New("boom")
	l := newTestLoader(&stubSource{err: boom}, &memoryStore{})

	_, err := l.Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestLoad_SaveFailureIsNotFatal(t *testing.T) {
	l := newTestLoader(&stubSource{tables: tables()}, &memoryStore{saveErr: errors.New("disk full")})

	ds, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ds)
}

func TestLoad_MissingTable(t *testing.T) {
	tbl := tables()
	delete(tbl, models.MetricRecovered)
	l := newTestLoader(&stubSource{tables: tbl}, nil)

	_, err := l.Load(context.Background())
	assert.Error(t, err)
}

func TestLoad_MalformedSnapshotKeepsError(t *testing.T) {
	boom := errors.New("boom")
	store := &memoryStore{saved: &models.MDataset{
		Headers: []string{"1/22/20", "1/23/20"},
		Countries: map[string]*models.MCountry{
			"Chad": {Country: "Chad", ConfirmedSeries: []int64{1}, DeathsSeries: []int64{0, 0}, RecoveredSeries: []int64{0, 0}},
		},
	}}
	l := newTestLoader(&stubSource{err: boom}, store)

	ds, err := l.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, ds)
	assert.Nil(t, l.Last())
}
