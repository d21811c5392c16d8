package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/tuannm99/arenadb/internal/heap"
	"github.com/tuannm99/arenadb/internal/record"
)

var (
	ErrTableExists   = errors.New("engine: table already exists")
	ErrTableNotExist = errors.New("engine: table does not exist")
	ErrShapeMismatch = errors.New("engine: record does not match table")
)

type DatabaseOperation interface {
	CreateTable(name record.TableName) error
	Insert(rec record.Record) error
	Select(name record.TableName) ([]record.Record, error)
	Tables() []TableInfo
}

var _ DatabaseOperation = (*Database)(nil)

// TableInfo describes one registered table.
type TableInfo struct {
	Name  record.TableName
	Stats heap.Stats
}

// table is a heap.Table with its record shape erased.
type table interface {
	insert(rec record.Record) error
	selectAll() ([]record.Record, error)
	stats() heap.Stats
}

type typedTable[T record.Record] struct {
	t *heap.Table[T]
}

func (tt typedTable[T]) insert(rec record.Record) error {
	row, ok := rec.(T)
	if !ok {
		return fmt.Errorf("%w: %T into %s", ErrShapeMismatch, rec, tt.t.Name)
	}
	return tt.t.Insert(row)
}

func (tt typedTable[T]) selectAll() ([]record.Record, error) {
	rows, err := tt.t.Select()
	if err != nil {
		return nil, err
	}
	out := make([]record.Record, len(rows))
	for i := range rows {
		out[i] = rows[i]
	}
	return out, nil
}

func (tt typedTable[T]) stats() heap.Stats { return tt.t.Stats() }

// newTable picks the record shape for a table once, at creation time.
func newTable(name record.TableName, capacity int) (table, error) {
	switch name {
	case record.TableUser:
		return typedTable[record.User]{heap.NewTable(name.String(), capacity, record.DecodeUser)}, nil
	case record.TableCar:
		return typedTable[record.Car]{heap.NewTable(name.String(), capacity, record.DecodeCar)}, nil
	default:
		return nil, &record.UnknownTableError{Name: name.String()}
	}
}

// Database owns every table. It is not safe for concurrent use;
// callers serialize commands.
type Database struct {
	tables   map[record.TableName]table
	capacity int
}

type Option func(*Database)

// WithTableCapacity sets the arena size, in bytes, of tables created afterwards.
func WithTableCapacity(n int) Option {
	return func(db *Database) {
		if n > 0 {
			db.capacity = n
		}
	}
}

// NewDatabase creates an empty database. No table exists until CreateTable.
func NewDatabase(opts ...Option) *Database {
	db := &Database{
		tables:   make(map[record.TableName]table),
		capacity: heap.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

func (db *Database) CreateTable(name record.TableName) error {
	if _, exists := db.tables[name]; exists {
		return fmt.Errorf("%w: %s", ErrTableExists, name)
	}

	tbl, err := newTable(name, db.capacity)
	if err != nil {
		return err
	}
	db.tables[name] = tbl

	slog.Debug("engine: table created", "table", name.String(), "capacity", db.capacity)
	return nil
}

// Insert routes rec to the table named by its shape.
func (db *Database) Insert(rec record.Record) error {
	name := rec.Table()
	tbl, exists := db.tables[name]
	if !exists {
		return fmt.Errorf("%w: %s", ErrTableNotExist, name)
	}
	return tbl.insert(rec)
}

// Select returns every row of a table in insert order.
func (db *Database) Select(name record.TableName) ([]record.Record, error) {
	tbl, exists := db.tables[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTableNotExist, name)
	}
	return tbl.selectAll()
}

// Stats returns the bookkeeping of a single table.
func (db *Database) Stats(name record.TableName) (heap.Stats, error) {
	tbl, exists := db.tables[name]
	if !exists {
		return heap.Stats{}, fmt.Errorf("%w: %s", ErrTableNotExist, name)
	}
	return tbl.stats(), nil
}

// Tables lists registered tables ordered by TableName.
func (db *Database) Tables() []TableInfo {
	out := make([]TableInfo, 0, len(db.tables))
	for name, tbl := range db.tables {
		out = append(out, TableInfo{Name: name, Stats: tbl.stats()})
	}
	slices.SortFunc(out, func(a, b TableInfo) int { return int(a.Name) - int(b.Name) })
	return out
}

func (db *Database) TableCapacity() int { return db.capacity }
