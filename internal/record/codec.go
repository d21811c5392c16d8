package record

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/tuannm99/arenadb/internal/alias/bx"
)

// ---- Errors ----
var (
	ErrMalformedBuffer = errors.New("record: malformed buffer")
	ErrBufferFull      = errors.New("record: buffer full")
	ErrInvalidText     = errors.New("record: text is not valid utf-8")
	ErrTextTooLong     = errors.New("record: text exceeds 255 bytes")
)

// MaxTextLen is the largest text length representable by the u8 prefix.
const MaxTextLen = math.MaxUint8

// ---- primitives ----
// INT64: 8 bytes LE, two's complement
// TEXT:  u8 length + raw UTF-8 bytes

func writeInt64(w *bx.Writer, v int64) error {
	return writeErr(w.WriteI64(v))
}

func readInt64(r *bx.Reader) (int64, error) {
	v, err := r.ReadI64()
	if err != nil {
		return 0, readErr(err)
	}
	return v, nil
}

func writeText(w *bx.Writer, s string) error {
	if len(s) > MaxTextLen {
		return fmt.Errorf("%w: %d bytes", ErrTextTooLong, len(s))
	}
	if !utf8.ValidString(s) {
		return ErrInvalidText
	}
	// prefix and payload must land together
	if w.Remaining() < 1+len(s) {
		return ErrBufferFull
	}
	if err := w.WriteU8(uint8(len(s))); err != nil {
		return writeErr(err)
	}
	return writeErr(w.WriteBytes([]byte(s)))
}

func readText(r *bx.Reader) (string, error) {
	n, err := r.ReadU8()
	if err != nil {
		return "", readErr(err)
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", readErr(err)
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidText
	}
	return string(b), nil
}

func writeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, bx.ErrBufferFull) {
		return fmt.Errorf("%w: %w", ErrBufferFull, err)
	}
	return err
}

func readErr(err error) error {
	if errors.Is(err, bx.ErrShortRead) {
		return fmt.Errorf("%w: %w", ErrMalformedBuffer, err)
	}
	return err
}
