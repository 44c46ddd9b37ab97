// Package catbuffer holds the primitives of the fixed-layout little-endian
// binary format used for Symbol transactions: bounded cursors for reading
// and writing, and schemas built from fields that describe a layout once for
// both directions.
package catbuffer

import (
	"encoding/binary"

	"github.com/rs/zerolog"

	"github.com/alexdcox/symbol-go/fault"
)

var log = zerolog.Nop()

// SetLogger replaces the package logger, which is silent by default.
func SetLogger(l zerolog.Logger) {
	log = l
}

// Reader is a cursor over a byte slice. Every read is bounds checked and
// fails with a *fault.DecodeError naming the field and absolute offset.
type Reader struct {
	buf  []byte
	off  int
	base int
}

func NewReader(b []byte) *Reader {
	return &Reader{buf: b}
}

// Offset returns the absolute offset of the next byte, counted from the
// start of the outermost reader.
func (r *Reader) Offset() int {
	return r.base + r.off
}

func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) take(what string, n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, fault.Short(what, r.Offset(), n, r.Remaining())
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// PeekBytes returns the next n bytes without consuming them.
func (r *Reader) PeekBytes(what string, n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, fault.Short(what, r.Offset(), n, r.Remaining())
	}
	return r.buf[r.off : r.off+n], nil
}

func (r *Reader) Uint8(what string) (uint8, error) {
	b, err := r.take(what, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Uint16(what string) (uint16, error) {
	b, err := r.take(what, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) Int16(what string) (int16, error) {
	v, err := r.Uint16(what)
	return int16(v), err
}

func (r *Reader) Uint32(what string) (uint32, error) {
	b, err := r.take(what, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) Uint64(what string) (uint64, error) {
	b, err := r.take(what, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Bytes returns a copy of the next n bytes, or nil when n is zero.
func (r *Reader) Bytes(what string, n int) ([]byte, error) {
	b, err := r.take(what, n)
	if err != nil || n == 0 {
		return nil, err
	}
	return append([]byte{}, b...), nil
}

// Fill reads exactly len(dst) bytes into dst.
func (r *Reader) Fill(what string, dst []byte) error {
	b, err := r.take(what, len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

// Zeros consumes n bytes that must all be zero.
func (r *Reader) Zeros(what string, n int) error {
	start := r.Offset()
	b, err := r.take(what, n)
	if err != nil {
		return err
	}
	for i, v := range b {
		if v != 0 {
			return fault.Malformed(what, start+i, "expected zero byte, got 0x%02x", v)
		}
	}
	return nil
}

// Sub carves the next n bytes off into a reader of their own. The parent
// skips past them whether or not the sub reader is drained.
func (r *Reader) Sub(what string, n int) (*Reader, error) {
	base := r.Offset()
	b, err := r.take(what, n)
	if err != nil {
		return nil, err
	}
	return &Reader{buf: b, base: base}, nil
}

// Done fails unless every byte has been consumed.
func (r *Reader) Done(what string) error {
	if r.Remaining() != 0 {
		return fault.Malformed(what, r.Offset(), "%d unexpected trailing bytes", r.Remaining())
	}
	return nil
}

// PaddingSize returns how many bytes bring size up to a multiple of
// alignment.
func PaddingSize(size, alignment int) int {
	if alignment <= 1 {
		return 0
	}
	return (alignment - size%alignment) % alignment
}
