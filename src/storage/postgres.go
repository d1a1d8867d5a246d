package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"corona-observer/src/helpers"
	"corona-observer/src/logger"
	"corona-observer/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresStore struct {
	Config  *models.MConfig
	DB      *sql.DB
	Schema  string
	Logger  *logger.Logger
	dialect dialect
}

// -----------------------------------------------------------------------------

// NewPostgresStore keeps its tables in a schema named after the application.
func NewPostgresStore(cfg *models.MConfig, log *logger.Logger) *PostgresStore {
	schema := strings.ReplaceAll(cfg.Name, `"`, "")

	return &PostgresStore{
		Config: cfg,
		Schema: schema,
		Logger: log,
		dialect: dialect{
			table: func(name string) string { return fmt.Sprintf(`"%s"."%s"`, schema, name) },
			bind:  func(n int) string { return fmt.Sprintf("$%d", n) },
		},
	}
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return helpers.NewDatabaseError(err, "open postgres")
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return helpers.NewDatabaseError(err, "ping postgres")
	}

	d.DB = db

	// Create Schema
	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return helpers.NewDatabaseError(err, "create schema %s", d.Schema)
	}

	if err := createSnapshotTables(db, d.dialect, "BIGINT"); err != nil {
		return err
	}

	d.Logger.Info("PostgresStore initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) SaveDataset(ds *models.MDataset) error {
	if err := saveSnapshot(d.DB, d.dialect, ds); err != nil {
		return err
	}
	d.Logger.Info("Saved snapshot: %d countries, %d dates", len(ds.Countries)-1, len(ds.Headers))
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) LoadDataset() (*models.MDataset, error) {
	return loadSnapshot(d.DB, d.dialect)
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
