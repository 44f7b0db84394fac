package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
)

// DefaultTable is the items table used when none is configured.
const DefaultTable = "items"

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateTable rejects names that cannot be interpolated into SQL as a bare
// identifier.
func ValidateTable(table string) error {
	if !identifier.MatchString(table) {
		return fmt.Errorf("dataset: invalid table name %q", table)
	}
	return nil
}

// TableDDL returns the items table DDL. Rows are ordered by id, which fixes
// item indexes. Vector items use embedding, text items use content.
func TableDDL(table string) string {
	return `CREATE TABLE IF NOT EXISTS ` + table + ` (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    label     TEXT NOT NULL DEFAULT '',
    embedding BLOB,
    content   TEXT
);`
}

// EnsureSchema creates the items table if it does not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB, table string) error {
	if err := ValidateTable(table); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx, TableDDL(table))
	return err
}
