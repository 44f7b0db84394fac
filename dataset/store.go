package dataset

import (
	"context"
	"database/sql"
	"fmt"
)

// Store keeps dataset items in a SQLite table.
type Store struct {
	db    *sql.DB
	table string
}

// NewStore creates a Store over table, creating the table when missing.
func NewStore(ctx context.Context, db *sql.DB, table string) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("dataset: db is nil")
	}
	if table == "" {
		table = DefaultTable
	}
	if err := EnsureSchema(ctx, db, table); err != nil {
		return nil, err
	}
	return &Store{db: db, table: table}, nil
}

// OpenStore returns a Store over an existing table without running any DDL.
func OpenStore(db *sql.DB, table string) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("dataset: db is nil")
	}
	if err := ValidateTable(table); err != nil {
		return nil, err
	}
	return &Store{db: db, table: table}, nil
}

// Table returns the backing table name.
func (s *Store) Table() string { return s.table }

// AddVectors appends vector items in one transaction.
func (s *Store) AddVectors(ctx context.Context, ds *Dataset[[]float32]) error {
	return s.insert(ctx, ds.Len(), func(stmt *sql.Stmt, i int) error {
		_, err := stmt.ExecContext(ctx, labelAt(ds.Labels, i), EncodeVector(ds.Items[i]), nil)
		return err
	})
}

// AddTexts appends text items in one transaction.
func (s *Store) AddTexts(ctx context.Context, ds *Dataset[string]) error {
	return s.insert(ctx, ds.Len(), func(stmt *sql.Stmt, i int) error {
		_, err := stmt.ExecContext(ctx, labelAt(ds.Labels, i), nil, ds.Items[i])
		return err
	})
}

func (s *Store) insert(ctx context.Context, n int, exec func(stmt *sql.Stmt, i int) error) error {
	if n == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+s.table+`(label, embedding, content) VALUES(?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			return fmt.Errorf("dataset: failed to insert item %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// LoadVectors reads every row with an embedding, ordered by id. All vectors
// must share one dimension.
func (s *Store) LoadVectors(ctx context.Context) (*Dataset[[]float32], error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, label, embedding FROM `+s.table+` WHERE embedding IS NOT NULL ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ds := &Dataset[[]float32]{Name: s.table}
	dim := -1
	for rows.Next() {
		var key int64
		var label string
		var blob []byte
		if err := rows.Scan(&key, &label, &blob); err != nil {
			return nil, err
		}
		vec, err := DecodeVector(blob)
		if err != nil {
			return nil, err
		}
		if dim >= 0 && len(vec) != dim {
			return nil, fmt.Errorf("dataset: item %d has dimension %d, want %d", ds.Len(), len(vec), dim)
		}
		dim = len(vec)
		ds.Append(label, vec)
		ds.Keys = append(ds.Keys, key)
	}
	return ds, rows.Err()
}

// LoadTexts reads every row with content, ordered by id.
func (s *Store) LoadTexts(ctx context.Context) (*Dataset[string], error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, label, content FROM `+s.table+` WHERE content IS NOT NULL ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ds := &Dataset[string]{Name: s.table}
	for rows.Next() {
		var key int64
		var label, content string
		if err := rows.Scan(&key, &label, &content); err != nil {
			return nil, err
		}
		ds.Append(label, content)
		ds.Keys = append(ds.Keys, key)
	}
	return ds, rows.Err()
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}
