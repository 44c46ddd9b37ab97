package catbuffer

import (
	"encoding/binary"

	"github.com/alexdcox/symbol-go/fault"
)

// Writer appends little-endian values to a growing buffer.
type Writer struct {
	buf []byte
}

func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

func (w *Writer) Len() int {
	return len(w.buf)
}

// Bytes returns a copy of everything written so far.
func (w *Writer) Bytes() []byte {
	return append([]byte{}, w.buf...)
}

func (w *Writer) Uint8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) Uint16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) Int16(v int16) {
	w.Uint16(uint16(v))
}

func (w *Writer) Uint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) Uint64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *Writer) Write(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *Writer) Zeros(n int) {
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, 0)
	}
}

// PatchUint32 overwrites four already written bytes at offset.
func (w *Writer) PatchUint32(offset int, v uint32) error {
	if offset < 0 || offset+4 > len(w.buf) {
		return fault.InvalidArgument("patch at %d outside of %d written bytes", offset, len(w.buf))
	}
	binary.LittleEndian.PutUint32(w.buf[offset:], v)
	return nil
}
