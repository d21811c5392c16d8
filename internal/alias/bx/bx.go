// stand for bytes helper
package bx

import (
	"encoding/binary"
	"errors"
)

var LE = binary.LittleEndian

var (
	ErrBufferFull = errors.New("bx: buffer full")
	ErrShortRead  = errors.New("bx: short read")
)

// --- LE: read ---
func U64(b []byte) uint64 { return LE.Uint64(b) }
func I64(b []byte) int64  { return int64(U64(b)) }

// --- LE: write ---
func PutU64(b []byte, v uint64) { LE.PutUint64(b, v) }
func PutI64(b []byte, v int64)  { PutU64(b, uint64(v)) }

// Writer is a write cursor over a fixed byte region.
// A write that does not fit fails with ErrBufferFull and writes nothing.
type Writer struct {
	buf []byte
	pos int
}

func NewWriter(region []byte) *Writer {
	return &Writer{buf: region}
}

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int { return w.pos }

func (w *Writer) Remaining() int { return len(w.buf) - w.pos }

func (w *Writer) reserve(n int) ([]byte, error) {
	if n > w.Remaining() {
		return nil, ErrBufferFull
	}
	b := w.buf[w.pos : w.pos+n]
	w.pos += n
	return b, nil
}

func (w *Writer) WriteU8(v uint8) error {
	b, err := w.reserve(1)
	if err != nil {
		return err
	}
	b[0] = v
	return nil
}

func (w *Writer) WriteI64(v int64) error {
	b, err := w.reserve(8)
	if err != nil {
		return err
	}
	PutI64(b, v)
	return nil
}

func (w *Writer) WriteBytes(p []byte) error {
	b, err := w.reserve(len(p))
	if err != nil {
		return err
	}
	copy(b, p)
	return nil
}

// Reader is a read cursor over a byte region.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(region []byte) *Reader {
	return &Reader{buf: region}
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int { return r.pos }

func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) take(n int) ([]byte, error) {
	if n > r.Remaining() {
		return nil, ErrShortRead
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadI64() (int64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return I64(b), nil
}

// ReadBytes returns a copy of the next n bytes so callers never alias the region.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	b, err := r.take(n)
	if err != nil {
		return nil, err
	}
	cp := make([]byte, n)
	copy(cp, b)
	return cp, nil
}
