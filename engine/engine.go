package engine

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// Open opens a SQLite database using the modernc.org/sqlite driver.
//
// For file-based databases, pass a path like "./db.sqlite". For in-memory
// databases, pass ":memory:".
func Open(dsn string) (*sql.DB, error) { return sql.Open("sqlite", dsn) }

// OpenContext registers the distance functions, opens dsn and verifies the
// connection.
func OpenContext(ctx context.Context, dsn string) (*sql.DB, error) {
	if err := RegisterDistanceFunctions(); err != nil {
		return nil, err
	}
	db, err := Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("engine: failed to open %s: %w", dsn, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("engine: failed to connect to %s: %w", dsn, err)
	}
	return db, nil
}
