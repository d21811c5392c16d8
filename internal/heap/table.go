package heap

import (
	"fmt"
	"log/slog"

	"github.com/tuannm99/arenadb/internal/alias/bx"
)

// DefaultCapacity is the arena size of a table when none is configured.
const DefaultCapacity = 1 << 20 // 1 MiB

// Row is anything that knows its own byte layout.
type Row interface {
	Serialize(w *bx.Writer) error
}

// Decoder reads one T back from a read cursor.
type Decoder[T any] func(r *bx.Reader) (T, error)

// Stats is a read-only snapshot of a table's bookkeeping.
type Stats struct {
	Rows      int
	BytesUsed int
	Capacity  int
}

// Table is an append-only arena holding rows of exactly one shape T.
// Rows are packed back to back from offset 0, in insert order.
type Table[T Row] struct {
	Name string

	buf    []byte
	offset int // next free byte
	rows   int
	decode Decoder[T]
}

func NewTable[T Row](name string, capacity int, decode Decoder[T]) *Table[T] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Table[T]{
		Name:   name,
		buf:    make([]byte, capacity),
		decode: decode,
	}
}

// Insert appends row at the write offset.
// On failure the offset and row count are left untouched.
func (t *Table[T]) Insert(row T) error {
	w := bx.NewWriter(t.buf[t.offset:])
	if err := row.Serialize(w); err != nil {
		return fmt.Errorf("heap: insert into %s: %w", t.Name, err)
	}

	t.offset += w.Pos()
	t.rows++

	slog.Debug("heap: row appended",
		"table", t.Name,
		"bytes", w.Pos(),
		"offset", t.offset,
		"rows", t.rows,
	)
	return nil
}

// Scan decodes every row from offset 0 in insert order and hands it to fn.
// It stops at the first decode error or the first error returned by fn.
func (t *Table[T]) Scan(fn func(i int, row T) error) error {
	r := bx.NewReader(t.buf[:t.offset])
	for i := 0; i < t.rows; i++ {
		row, err := t.decode(r)
		if err != nil {
			return fmt.Errorf("heap: read %s row %d: %w", t.Name, i, err)
		}
		if err := fn(i, row); err != nil {
			return err
		}
	}
	return nil
}

// Select returns all rows. A decode failure returns no rows at all.
func (t *Table[T]) Select() ([]T, error) {
	out := make([]T, 0, t.rows)
	err := t.Scan(func(_ int, row T) error {
		out = append(out, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Table[T]) RowCount() int { return t.rows }
func (t *Table[T]) Offset() int   { return t.offset }
func (t *Table[T]) Capacity() int { return len(t.buf) }

func (t *Table[T]) Stats() Stats {
	return Stats{Rows: t.rows, BytesUsed: t.offset, Capacity: len(t.buf)}
}
