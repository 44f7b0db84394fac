package sqlscan

import (
	"database/sql"
	"fmt"
	"strings"

	"modernc.org/sqlite/vtab"

	"github.com/viant/outlier/detect"
)

// ModuleName is the name used in CREATE VIRTUAL TABLE ... USING.
const ModuleName = "outlier_scan"

const idxMatch = 1

// Module creates outlier_scan tables.
type Module struct {
	db   *sql.DB
	opts []detect.Option
}

// Table is one outlier_scan table.
type Table struct {
	db   *sql.DB
	name string
	scan scanOptions
	opts []detect.Option
}

type row struct {
	docID int64
	label string
	score float64
	rank  int
}

// Cursor iterates the rows of a single scan.
type Cursor struct {
	table   *Table
	dataset string
	rows    []row
	pos     int
}

// Register registers the outlier_scan module. Items are read through db; opts
// configure every detection run (logger, metrics, workers).
func Register(db *sql.DB, opts ...detect.Option) error {
	if err := vtab.RegisterModule(db, ModuleName, &Module{db: db, opts: opts}); err != nil {
		if !strings.Contains(err.Error(), "already registered") {
			return err
		}
	}
	return nil
}

// Create declares the table schema and parses the module arguments.
func (m *Module) Create(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.connect(ctx, args)
}

// Connect attaches to an existing table; args mirror Create's.
func (m *Module) Connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.connect(ctx, args)
}

func (m *Module) connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("outlier_scan: expects at least 3 args, got %d", len(args))
	}
	scan, err := parseScanOptions(args[3:])
	if err != nil {
		return nil, err
	}
	if err := ctx.Declare(fmt.Sprintf("CREATE TABLE %s(dataset TEXT, doc_id INTEGER, label TEXT, score REAL, rank INTEGER)", args[2])); err != nil {
		return nil, err
	}
	return &Table{db: m.db, name: args[2], scan: scan, opts: scan.detectOptions(m.opts)}, nil
}

// BestIndex pushes down MATCH on the dataset column.
func (t *Table) BestIndex(info *vtab.IndexInfo) error {
	for i := range info.Constraints {
		c := &info.Constraints[i]
		if !c.Usable {
			continue
		}
		if c.Column == 0 && c.Op == vtab.OpMATCH {
			c.ArgIndex = 0
			c.Omit = true
			info.IdxNum = idxMatch
			break
		}
	}
	return nil
}

func (t *Table) Open() (vtab.Cursor, error) { return &Cursor{table: t}, nil }
func (t *Table) Disconnect() error          { return nil }
func (t *Table) Destroy() error             { return nil }

// Filter runs a detection over the table named by the MATCH argument, bounded
// by the table's timeout argument. Without a MATCH constraint the scan is
// empty.
func (c *Cursor) Filter(idxNum int, idxStr string, vals []vtab.Value) error {
	c.rows, c.pos, c.dataset = nil, 0, ""
	if idxNum != idxMatch || len(vals) == 0 || vals[0] == nil {
		return nil
	}
	name, ok := vals[0].(string)
	if !ok {
		return fmt.Errorf("outlier_scan: MATCH expects an items table name as TEXT")
	}
	ctx, cancel := c.table.scan.scanContext()
	defer cancel()
	rows, err := c.table.scanTable(ctx, name)
	if err != nil {
		return err
	}
	c.dataset, c.rows = name, rows
	return nil
}

func (c *Cursor) Next() error {
	if c.pos < len(c.rows) {
		c.pos++
	}
	return nil
}

func (c *Cursor) Eof() bool { return c.pos >= len(c.rows) }

func (c *Cursor) Column(col int) (vtab.Value, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return nil, fmt.Errorf("outlier_scan: Column out of range")
	}
	r := c.rows[c.pos]
	switch col {
	case 0:
		return c.dataset, nil
	case 1:
		return r.docID, nil
	case 2:
		return r.label, nil
	case 3:
		return r.score, nil
	case 4:
		return int64(r.rank), nil
	}
	return nil, nil
}

func (c *Cursor) Rowid() (int64, error) { return int64(c.pos + 1), nil }

func (c *Cursor) Close() error {
	c.rows, c.pos = nil, 0
	return nil
}
