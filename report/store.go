package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/viant/outlier/detect"
)

// Run is a stored report.
type Run struct {
	ID        string
	Dataset   string
	CreatedAt time.Time
	Report    *detect.Report
}

// Store records reports in a SQLite table.
type Store struct {
	db    *sql.DB
	table string
	now   func() time.Time
}

// NewStore creates a Store over table, creating the table when missing.
func NewStore(ctx context.Context, db *sql.DB, table string) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("report: db is nil")
	}
	if table == "" {
		table = DefaultRunsTable
	}
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("report: invalid table name %q", table)
	}
	for _, ddl := range []string{RunsTableDDL(table), RunsIndexDDL(table)} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return nil, fmt.Errorf("report: failed to create %s: %w", table, err)
		}
	}
	return &Store{db: db, table: table, now: time.Now}, nil
}

// Save records r for dataset and returns the generated run id.
func (s *Store) Save(ctx context.Context, dataset string, r *detect.Report) (string, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("report: failed to encode: %w", err)
	}
	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, `INSERT INTO `+s.table+`(run_id, dataset, algorithm, data_size, verified, calculations, running_time, payload, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, dataset, r.Algorithm, r.DataSize, r.VerifiedCount, r.Calculations, r.RunningTimeSeconds, string(payload), s.now().UTC())
	if err != nil {
		return "", fmt.Errorf("report: failed to save run: %w", err)
	}
	return id, nil
}

// Runs returns the runs recorded for dataset, oldest first.
func (s *Store) Runs(ctx context.Context, dataset string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_id, dataset, created_at, payload FROM `+s.table+` WHERE dataset = ? ORDER BY created_at, rowid`, dataset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		var payload string
		if err := rows.Scan(&run.ID, &run.Dataset, &run.CreatedAt, &payload); err != nil {
			return nil, err
		}
		run.Report = &detect.Report{}
		if err := json.Unmarshal([]byte(payload), run.Report); err != nil {
			return nil, fmt.Errorf("report: corrupt payload for run %s: %w", run.ID, err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
