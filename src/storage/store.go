package storage

import (
	"corona-observer/src/helpers"
	"corona-observer/src/interfaces"
	"corona-observer/src/logger"
	"corona-observer/src/models"
)

// NewSnapshotStore returns the configured store, initialized, or nil when
// storage is disabled.
func NewSnapshotStore(cfg *models.MConfig, log *logger.Logger) (interfaces.ISnapshotStore, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}

	var store interfaces.ISnapshotStore
	switch cfg.Storage.DBType {
	case "postgres":
		store = NewPostgresStore(cfg, log)
	case "sqlite":
		store = NewSQLiteStore(cfg, log)
	default:
		return nil, helpers.NewConfigurationError(nil, "unsupported database type %q", cfg.Storage.DBType)
	}

	if err := store.Initialize(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
