package arenawire

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Frame layout: [u32 BE payload length][JSON payload].
const (
	headerSize = 4
	// MaxFrameSize caps a payload; a select over a full default arena fits easily.
	MaxFrameSize = 8 << 20
)

var (
	ErrEmptyFrame    = errors.New("arenawire: empty frame")
	ErrFrameTooLarge = errors.New("arenawire: frame too large")
	ErrBadPayload    = errors.New("arenawire: bad payload")
)

// ReadFrame reads one frame from r and decodes its payload into v.
func ReadFrame(r io.Reader, v any) error {
	payload, err := readPayload(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	return nil
}

// Decode reads one frame of type T.
func Decode[T any](r io.Reader) (T, error) {
	var v T
	err := ReadFrame(r, &v)
	return v, err
}

func readPayload(r io.Reader) ([]byte, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}

	switch n := binary.BigEndian.Uint32(hdr[:]); {
	case n == 0:
		return nil, ErrEmptyFrame
	case n > MaxFrameSize:
		return nil, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, n, MaxFrameSize)
	default:
		payload := make([]byte, n)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, err
		}
		return payload, nil
	}
}

// WriteFrame encodes v and writes it as a single frame with one Write call.
func WriteFrame(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, len(payload), MaxFrameSize)
	}

	frame := make([]byte, 0, headerSize+len(payload))
	frame = binary.BigEndian.AppendUint32(frame, uint32(len(payload)))
	frame = append(frame, payload...)

	_, err = w.Write(frame)
	return err
}
