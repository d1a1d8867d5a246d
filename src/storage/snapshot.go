package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"corona-observer/src/helpers"
	"corona-observer/src/models"
)

// dialect hides the few differences between the SQLite and PostgreSQL stores.
type dialect struct {
	// table qualifies a table name (schema prefix on postgres)
	table func(name string) string
	// bind returns the n-th (1-based) placeholder
	bind func(n int) string
}

func (d dialect) binds(from, count int) string {
	s := ""
	for i := 0; i < count; i++ {
		if i > 0 {
			s += ", "
		}
		s += d.bind(from + i)
	}
	return s
}

// -----------------------------------------------------------------------------

func createSnapshotTables(db *sql.DB, d dialect, bigint string) error {
	queries := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				day_index INTEGER PRIMARY KEY,
				label TEXT NOT NULL
			);`, d.table("snapshot_dates")),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				country TEXT NOT NULL,
				day_index INTEGER NOT NULL,
				confirmed %[2]s NOT NULL,
				deaths %[2]s NOT NULL,
				recovered %[2]s NOT NULL,
				PRIMARY KEY (country, day_index)
			);`, d.table("snapshot_series"), bigint),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				name TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);`, d.table("snapshot_meta")),
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			return helpers.NewDatabaseError(err, "creating snapshot tables")
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func saveSnapshot(db *sql.DB, d dialect, ds *models.MDataset) error {
	tx, err := db.Begin()
	if err != nil {
		return helpers.NewDatabaseError(err, "begin snapshot")
	}
	defer tx.Rollback()

	for _, t := range []string{"snapshot_dates", "snapshot_series", "snapshot_meta"} {
		if _, err := tx.Exec("DELETE FROM " + d.table(t)); err != nil {
			return helpers.NewDatabaseError(err, "clearing %s", t)
		}
	}

	dates := newRowBatch(tx, d, "snapshot_dates", "day_index", "label")
	for i, label := range ds.Headers {
		if err := dates.add(i, label); err != nil {
			return err
		}
	}
	if err := dates.flush(); err != nil {
		return err
	}

	series := newRowBatch(tx, d, "snapshot_series", "country", "day_index", "confirmed", "deaths", "recovered")
	for name, c := range ds.Countries {
		if name == models.TotalCountry {
			continue
		}
		for _, m := range models.AllMetrics {
			if len(c.Series(m)) != len(ds.Headers) {
				return helpers.NewDatabaseError(nil, "%s %s series has %d values, expected %d", name, m, len(c.Series(m)), len(ds.Headers))
			}
		}
		for i := range ds.Headers {
			if err := series.add(name, i, c.ConfirmedSeries[i], c.DeathsSeries[i], c.RecoveredSeries[i]); err != nil {
				return err
			}
		}
	}
	if err := series.flush(); err != nil {
		return err
	}

	fetchedAt := ds.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	if _, err := tx.Exec(fmt.Sprintf(`INSERT INTO %s (name, value) VALUES (%s)`, d.table("snapshot_meta"), d.binds(1, 2)),
		"fetched_at", fetchedAt.UTC().Format(time.RFC3339)); err != nil {
		return helpers.NewDatabaseError(err, "insert meta")
	}

	if err := tx.Commit(); err != nil {
		return helpers.NewDatabaseError(err, "commit snapshot")
	}
	return nil
}

// -----------------------------------------------------------------------------

// snapshotBatchRows caps the rows per INSERT; at five columns this stays far
// below the bind limits of both SQLite and PostgreSQL.
const snapshotBatchRows = 500

// rowBatch buffers rows and writes them as multi-row INSERT statements.
type rowBatch struct {
	tx      *sql.Tx
	d       dialect
	table   string
	columns []string
	args    []any
	rows    int
}

func newRowBatch(tx *sql.Tx, d dialect, table string, columns ...string) *rowBatch {
	return &rowBatch{tx: tx, d: d, table: table, columns: columns}
}

func (b *rowBatch) add(values ...any) error {
	b.args = append(b.args, values...)
	b.rows++
	if b.rows >= snapshotBatchRows {
		return b.flush()
	}
	return nil
}

func (b *rowBatch) flush() error {
	if b.rows == 0 {
		return nil
	}

	var q strings.Builder
	fmt.Fprintf(&q, "INSERT INTO %s (%s) VALUES ", b.d.table(b.table), strings.Join(b.columns, ", "))
	for i := 0; i < b.rows; i++ {
		if i > 0 {
			q.WriteString(", ")
		}
		fmt.Fprintf(&q, "(%s)", b.d.binds(i*len(b.columns)+1, len(b.columns)))
	}

	if _, err := b.tx.Exec(q.String(), b.args...); err != nil {
		return helpers.NewDatabaseError(err, "insert %d rows into %s", b.rows, b.table)
	}
	b.args = b.args[:0]
	b.rows = 0
	return nil
}

// -----------------------------------------------------------------------------

func loadSnapshot(db *sql.DB, d dialect) (*models.MDataset, error) {
	rows, err := db.Query(fmt.Sprintf(`SELECT label FROM %s ORDER BY day_index`, d.table("snapshot_dates")))
	if err != nil {
		return nil, helpers.NewDatabaseError(err, "query dates")
	}
	var headers []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			rows.Close()
			return nil, helpers.NewDatabaseError(err, "scan date")
		}
		headers = append(headers, label)
	}
	rows.Close()
	if len(headers) == 0 {
		return nil, nil
	}

	var fetchedAt time.Time
	var raw string
	err = db.QueryRow(fmt.Sprintf(`SELECT value FROM %s WHERE name = %s`, d.table("snapshot_meta"), d.bind(1)), "fetched_at").Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return nil, helpers.NewDatabaseError(err, "query meta")
	default:
		if t, perr := time.Parse(time.RFC3339, raw); perr == nil {
			fetchedAt = t
		}
	}

	rows, err = db.Query(fmt.Sprintf(`SELECT country, day_index, confirmed, deaths, recovered FROM %s`, d.table("snapshot_series")))
	if err != nil {
		return nil, helpers.NewDatabaseError(err, "query series")
	}
	defer rows.Close()

	countries := make(map[string]*models.MCountry)
	for rows.Next() {
		var (
			name                         string
			day                          int
			confirmed, deaths, recovered int64
		)
		if err := rows.Scan(&name, &day, &confirmed, &deaths, &recovered); err != nil {
			return nil, helpers.NewDatabaseError(err, "scan series")
		}
		if day < 0 || day >= len(headers) {
			return nil, helpers.NewDatabaseError(nil, "series for %s has day %d outside %d dates", name, day, len(headers))
		}

		c, ok := countries[name]
		if !ok {
			c = &models.MCountry{
				Country:         name,
				ConfirmedSeries: make([]int64, len(headers)),
				DeathsSeries:    make([]int64, len(headers)),
				RecoveredSeries: make([]int64, len(headers)),
			}
			countries[name] = c
		}
		c.ConfirmedSeries[day] = confirmed
		c.DeathsSeries[day] = deaths
		c.RecoveredSeries[day] = recovered
	}
	if err := rows.Err(); err != nil {
		return nil, helpers.NewDatabaseError(err, "iterate series")
	}

	return &models.MDataset{
		Headers:   headers,
		Countries: countries,
		FetchedAt: fetchedAt,
		Origin:    models.DatasetOriginSnapshot,
	}, nil
}
