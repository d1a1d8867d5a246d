package main

import (
	"corona-observer/src/analysis"
	datasource "corona-observer/src/data_source"
	"corona-observer/src/data_source/csse"
	"corona-observer/src/interfaces"
	"corona-observer/src/logger"
	"corona-observer/src/models"
	"corona-observer/src/network"
	"corona-observer/src/storage"
)

// application holds the components shared by the UI, the servers and the
// refresh loop.
type application struct {
	Store    interfaces.ISnapshotStore
	Network  interfaces.INetworkManager
	Source   interfaces.IDataSource
	Analyzer *analysis.AnalysisFacade
	Loader   *datasource.DatasetLoader
}

// -----------------------------------------------------------------------------

// setupApplication wires the optional snapshot store, the network layer and
// the CSSE source into a loader.
func setupApplication(cfg *models.MConfig, appLogger *logger.Logger) (*application, error) {
	store, err := storage.NewSnapshotStore(cfg, appLogger.Named("Storage"))
	if err != nil {
		return nil, err
	}
	if store != nil {
		appLogger.Info("Snapshot store enabled (%s)", cfg.Storage.DBType)
	}

	netMgr := network.NewHTTPNetworkManager(cfg, appLogger.Named("Network"))
	source := csse.NewCSSESource(cfg, netMgr, appLogger.Named("CSSESource"))
	analyzer := analysis.NewAnalysisFacade(appLogger.Named("Analysis"))

	app := &application{
		Store:    store,
		Network:  netMgr,
		Source:   source,
		Analyzer: analyzer,
		Loader:   datasource.NewDatasetLoader(source, analyzer, nil, appLogger.Named("Loader")),
	}
	// keep the interface nil when storage is off
	if store != nil {
		app.Loader.Store = store
	}
	return app, nil
}

// Close releases the snapshot store.
func (a *application) Close() {
	if a.Store != nil {
		a.Store.Close()
	}
}
