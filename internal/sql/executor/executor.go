package executor

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/arenadb/internal/engine"
	"github.com/tuannm99/arenadb/internal/heap"
	"github.com/tuannm99/arenadb/internal/metrics"
	"github.com/tuannm99/arenadb/internal/record"
	"github.com/tuannm99/arenadb/internal/sql/parser"
)

// executorDB is a small seam for unit-testing Executor without a real DB.
type executorDB interface {
	CreateTable(name record.TableName) error
	Insert(rec record.Record) error
	Select(name record.TableName) ([]record.Record, error)
	Stats(name record.TableName) (heap.Stats, error)
	Tables() []engine.TableInfo
}

var _ executorDB = (*engine.Database)(nil)

// Executor executes parsed statements against a Database.
// Like the Database it wraps, it is not safe for concurrent use.
type Executor struct {
	DB executorDB

	metrics *metrics.Metrics
}

type Option func(*Executor)

// WithMetrics records command outcomes and table stats into m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Executor) { e.metrics = m }
}

func NewExecutor(db *engine.Database, opts ...Option) *Executor {
	return newExecutor(db, opts...)
}

func newExecutor(db executorDB, opts ...Option) *Executor {
	ex := &Executor{DB: db}
	for _, opt := range opts {
		opt(ex)
	}
	return ex
}

// ExecLine is the top-level entry: one line of text -> Result.
func (e *Executor) ExecLine(line string) (*Result, error) {
	stmt, err := parser.Parse(line)
	if err != nil {
		e.metrics.RecordCommand("parse", err)
		return nil, err
	}
	return e.Exec(stmt)
}

// Exec runs a parsed statement.
func (e *Executor) Exec(stmt parser.Statement) (*Result, error) {
	res, err := e.exec(stmt)
	e.metrics.RecordCommand(commandName(stmt), err)
	if err != nil {
		slog.Debug("executor: command failed", "command", commandName(stmt), "err", err)
		return nil, err
	}
	return res, nil
}

func (e *Executor) exec(stmt parser.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *parser.ExitStmt:
		return &Result{Exit: true}, nil
	case *parser.TablesStmt:
		return e.execTables(), nil
	case *parser.CreateTableStmt:
		return e.execCreateTable(s)
	case *parser.InsertStmt:
		return e.execInsert(s)
	case *parser.SelectStmt:
		return e.execSelect(s)
	case *parser.UnknownStmt:
		return &Result{Message: fmt.Sprintf("Unknown command: %s", s.Text)}, nil
	default:
		return nil, fmt.Errorf("executor: unsupported statement type %T", stmt)
	}
}

func (e *Executor) execCreateTable(s *parser.CreateTableStmt) (*Result, error) {
	if err := e.DB.CreateTable(s.Table); err != nil {
		return nil, err
	}
	e.publishStats(s.Table)
	return &Result{Message: fmt.Sprintf("Table %s successfully created", s.Table)}, nil
}

func (e *Executor) execInsert(s *parser.InsertStmt) (*Result, error) {
	if s.Record == nil {
		return nil, fmt.Errorf("executor: insert without a record")
	}
	table := s.Record.Table()
	if err := e.DB.Insert(s.Record); err != nil {
		return nil, err
	}

	e.metrics.RecordInsert(table.String())
	e.publishStats(table)
	return &Result{
		Message:      fmt.Sprintf("%s successfully inserted", table),
		AffectedRows: 1,
	}, nil
}

func (e *Executor) execSelect(s *parser.SelectStmt) (*Result, error) {
	recs, err := e.DB.Select(s.Table)
	if err != nil {
		return nil, err
	}

	res := &Result{Records: recs, Rows: make([]string, 0, len(recs))}
	for _, rec := range recs {
		res.Rows = append(res.Rows, rec.String())
	}
	res.AffectedRows = int64(len(recs))
	return res, nil
}

func (e *Executor) execTables() *Result {
	infos := e.DB.Tables()
	res := &Result{Rows: make([]string, 0, len(infos))}
	for _, ti := range infos {
		res.Rows = append(res.Rows, fmt.Sprintf("%s (%d rows, %d/%d bytes)",
			ti.Name, ti.Stats.Rows, ti.Stats.BytesUsed, ti.Stats.Capacity))
	}
	if len(infos) == 0 {
		res.Message = "No tables"
	}
	return res
}

func (e *Executor) publishStats(table record.TableName) {
	if e.metrics == nil {
		return
	}
	st, err := e.DB.Stats(table)
	if err != nil {
		slog.Warn("executor: stats unavailable", "table", table.String(), "err", err)
		return
	}
	e.metrics.UpdateTableStats(table.String(), st.Rows, st.BytesUsed)
}

func commandName(stmt parser.Statement) string {
	switch stmt.(type) {
	case *parser.ExitStmt:
		return "exit"
	case *parser.TablesStmt:
		return "tables"
	case *parser.CreateTableStmt:
		return "create"
	case *parser.InsertStmt:
		return "insert"
	case *parser.SelectStmt:
		return "select"
	case *parser.UnknownStmt:
		return "unknown"
	default:
		return "other"
	}
}
