package report

import "regexp"

// DefaultRunsTable stores one row per detection run.
const DefaultRunsTable = "outlier_runs"

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// RunsTableDDL returns the DDL for the runs table. The full report is kept as
// JSON in payload; the other columns duplicate fields useful for querying.
func RunsTableDDL(table string) string {
	return `CREATE TABLE IF NOT EXISTS ` + table + ` (
    run_id        TEXT PRIMARY KEY,
    dataset       TEXT NOT NULL,
    algorithm     TEXT NOT NULL,
    data_size     INTEGER NOT NULL,
    verified      INTEGER NOT NULL,
    calculations  INTEGER NOT NULL,
    running_time  REAL NOT NULL,
    payload       TEXT NOT NULL,
    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
}

// RunsIndexDDL returns the DDL for the dataset lookup index.
func RunsIndexDDL(table string) string {
	return `CREATE INDEX IF NOT EXISTS ` + table + `_dataset ON ` + table + `(dataset, created_at);`
}
