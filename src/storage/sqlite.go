package storage

import (
	"database/sql"

	"corona-observer/src/helpers"
	"corona-observer/src/logger"
	"corona-observer/src/models"

	_ "modernc.org/sqlite"
)

var sqliteDialect = dialect{
	table: func(name string) string { return name },
	bind:  func(int) string { return "?" },
}

// -----------------------------------------------------------------------------

type SQLiteStore struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteStore(cfg *models.MConfig, log *logger.Logger) *SQLiteStore {
	return &SQLiteStore{
		Config: cfg,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return helpers.NewDatabaseError(err, "open sqlite %s", dsn)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return helpers.NewDatabaseError(err, "ping sqlite %s", dsn)
	}

	// a single writer keeps the transaction simple
	db.SetMaxOpenConns(1)
	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return createSnapshotTables(db, sqliteDialect, "INTEGER")
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) SaveDataset(ds *models.MDataset) error {
	if err := saveSnapshot(d.DB, sqliteDialect, ds); err != nil {
		return err
	}
	d.Logger.Info("Saved snapshot: %d countries, %d dates", len(ds.Countries)-1, len(ds.Headers))
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) LoadDataset() (*models.MDataset, error) {
	return loadSnapshot(d.DB, sqliteDialect)
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
