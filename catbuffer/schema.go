package catbuffer

import (
	"math"

	"github.com/alexdcox/symbol-go/fault"
)

// Field is one entry of a layout, bound to the Go value it reads into and
// writes from.
type Field interface {
	Name() string
	// Size is the encoded size of the bound value as it is now.
	Size() int
	Encode(w *Writer) error
	Decode(r *Reader) error
}

// Schema is an ordered layout. Fields are written and read strictly in
// order.
type Schema []Field

func (s Schema) Size() (n int) {
	for _, f := range s {
		n += f.Size()
	}
	return
}

func (s Schema) Encode(w *Writer) error {
	for _, f := range s {
		if err := f.Encode(w); err != nil {
			return err
		}
	}
	return nil
}

func (s Schema) Decode(r *Reader) error {
	for _, f := range s {
		if err := f.Decode(r); err != nil {
			return err
		}
	}
	return nil
}

// Marshal encodes s into a fresh buffer.
func Marshal(s Schema) ([]byte, error) {
	w := NewWriter(s.Size())
	if err := s.Encode(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Unmarshal decodes b with s and fails if any byte is left over.
func Unmarshal(s Schema, b []byte) error {
	r := NewReader(b)
	if err := s.Decode(r); err != nil {
		return err
	}
	return r.Done("schema")
}

type field struct {
	name   string
	size   func() int
	encode func(w *Writer) error
	decode func(r *Reader) error
}

func (f *field) Name() string           { return f.name }
func (f *field) Size() int              { return f.size() }
func (f *field) Encode(w *Writer) error { return f.encode(w) }
func (f *field) Decode(r *Reader) error { return f.decode(r) }

func fixed(n int) func() int {
	return func() int { return n }
}

func Uint8(name string, v *uint8) Field {
	return &field{
		name:   name,
		size:   fixed(1),
		encode: func(w *Writer) error { w.Uint8(*v); return nil },
		decode: func(r *Reader) (err error) { *v, err = r.Uint8(name); return },
	}
}

func Uint16(name string, v *uint16) Field {
	return &field{
		name:   name,
		size:   fixed(2),
		encode: func(w *Writer) error { w.Uint16(*v); return nil },
		decode: func(r *Reader) (err error) { *v, err = r.Uint16(name); return },
	}
}

func Int16(name string, v *int16) Field {
	return &field{
		name:   name,
		size:   fixed(2),
		encode: func(w *Writer) error { w.Int16(*v); return nil },
		decode: func(r *Reader) (err error) { *v, err = r.Int16(name); return },
	}
}

func Uint32(name string, v *uint32) Field {
	return &field{
		name:   name,
		size:   fixed(4),
		encode: func(w *Writer) error { w.Uint32(*v); return nil },
		decode: func(r *Reader) (err error) { *v, err = r.Uint32(name); return },
	}
}

func Uint64(name string, v *uint64) Field {
	return &field{
		name:   name,
		size:   fixed(8),
		encode: func(w *Writer) error { w.Uint64(*v); return nil },
		decode: func(r *Reader) (err error) { *v, err = r.Uint64(name); return },
	}
}

// Array binds a fixed size byte array, passed as a slice of it.
func Array(name string, b []byte) Field {
	return &field{
		name:   name,
		size:   fixed(len(b)),
		encode: func(w *Writer) error { w.Write(b); return nil },
		decode: func(r *Reader) error { return r.Fill(name, b) },
	}
}

// Reserved is n bytes written as zero and rejected when they are not.
func Reserved(name string, n int) Field {
	return &field{
		name:   name,
		size:   fixed(n),
		encode: func(w *Writer) error { w.Zeros(n); return nil },
		decode: func(r *Reader) error { return r.Zeros(name, n) },
	}
}

func Enum8[T ~uint8](name string, v *T, lookup *Lookup[T]) Field {
	return &field{
		name: name,
		size: fixed(1),
		encode: func(w *Writer) error {
			if _, err := lookup.Resolve(*v); err != nil {
				return err
			}
			w.Uint8(uint8(*v))
			return nil
		},
		decode: func(r *Reader) error {
			raw, err := r.Uint8(name)
			if err != nil {
				return err
			}
			*v, err = lookup.Resolve(T(raw))
			return err
		},
	}
}

func Enum16[T ~uint16](name string, v *T, lookup *Lookup[T]) Field {
	return &field{
		name: name,
		size: fixed(2),
		encode: func(w *Writer) error {
			if _, err := lookup.Resolve(*v); err != nil {
				return err
			}
			w.Uint16(uint16(*v))
			return nil
		},
		decode: func(r *Reader) error {
			raw, err := r.Uint16(name)
			if err != nil {
				return err
			}
			*v, err = lookup.Resolve(T(raw))
			return err
		},
	}
}

// Count ties a length field to the variable part that follows it later in
// the same schema. When encoding the length is taken from the bound value;
// when decoding the field stores what it read for the variable part to use.
type Count struct {
	value  int
	length func() int
}

// Value is the most recently decoded count.
func (c *Count) Value() int {
	return c.value
}

func (c *Count) current(name string) int {
	if c.length == nil {
		panic("catbuffer: count " + name + " is not bound to any field")
	}
	return c.length()
}

func (c *Count) bind(length func() int) {
	if c.length != nil {
		panic("catbuffer: count bound twice")
	}
	c.length = length
}

func countField(name string, c *Count, width int, limit uint64) Field {
	return &field{
		name: name,
		size: fixed(width),
		encode: func(w *Writer) error {
			n := c.current(name)
			if uint64(n) > limit {
				return fault.InvalidArgument("%s is %d, at most %d fits", name, n, limit)
			}
			switch width {
			case 1:
				w.Uint8(uint8(n))
			case 2:
				w.Uint16(uint16(n))
			default:
				w.Uint32(uint32(n))
			}
			return nil
		},
		decode: func(r *Reader) error {
			var n uint64
			switch width {
			case 1:
				v, err := r.Uint8(name)
				if err != nil {
					return err
				}
				n = uint64(v)
			case 2:
				v, err := r.Uint16(name)
				if err != nil {
					return err
				}
				n = uint64(v)
			default:
				v, err := r.Uint32(name)
				if err != nil {
					return err
				}
				n = uint64(v)
			}
			c.value = int(n)
			return nil
		},
	}
}

func CountUint8(name string, c *Count) Field {
	return countField(name, c, 1, math.MaxUint8)
}

func CountUint16(name string, c *Count) Field {
	return countField(name, c, 2, math.MaxUint16)
}

func CountUint32(name string, c *Count) Field {
	return countField(name, c, 4, math.MaxUint32)
}

// SizedBytes is a byte string whose length is held by c.
func SizedBytes(name string, c *Count, b *[]byte) Field {
	c.bind(func() int { return len(*b) })
	return &field{
		name:   name,
		size:   func() int { return len(*b) },
		encode: func(w *Writer) error { w.Write(*b); return nil },
		decode: func(r *Reader) (err error) {
			*b, err = r.Bytes(name, c.value)
			return
		},
	}
}

// Codec encodes and decodes one element of a record array.
type Codec[T any] struct {
	Size   func(v T) int
	Encode func(w *Writer, v T) error
	Decode func(r *Reader) (T, error)
}

// RecordCodec builds a Codec from a schema over a single record.
func RecordCodec[T any](schema func(v *T) Schema) Codec[T] {
	return Codec[T]{
		Size: func(v T) int { return schema(&v).Size() },
		Encode: func(w *Writer, v T) error {
			return schema(&v).Encode(w)
		},
		Decode: func(r *Reader) (v T, err error) {
			err = schema(&v).Decode(r)
			return
		},
	}
}

func encodeAll[T any](w *Writer, items []T, codec Codec[T], alignment int) error {
	for _, item := range items {
		start := w.Len()
		if err := codec.Encode(w, item); err != nil {
			return err
		}
		w.Zeros(PaddingSize(w.Len()-start, alignment))
	}
	return nil
}

func sizeAll[T any](items []T, codec Codec[T], alignment int) (n int) {
	for _, item := range items {
		size := codec.Size(item)
		n += size + PaddingSize(size, alignment)
	}
	return
}

// Records is an array whose element count is held by c.
func Records[T any](name string, c *Count, items *[]T, codec Codec[T]) Field {
	c.bind(func() int { return len(*items) })
	return &field{
		name: name,
		size: func() int { return sizeAll(*items, codec, 1) },
		encode: func(w *Writer) error {
			return encodeAll(w, *items, codec, 1)
		},
		decode: func(r *Reader) error {
			var out []T
			for i := 0; i < c.value; i++ {
				v, err := codec.Decode(r)
				if err != nil {
					return err
				}
				out = append(out, v)
			}
			*items = out
			return nil
		},
	}
}

// SizedRecords is an array whose total size in bytes, padding included, is
// held by c. Every element is followed by zero padding up to alignment.
func SizedRecords[T any](name string, c *Count, items *[]T, codec Codec[T], alignment int) Field {
	c.bind(func() int { return sizeAll(*items, codec, alignment) })
	return &field{
		name: name,
		size: func() int { return sizeAll(*items, codec, alignment) },
		encode: func(w *Writer) error {
			return encodeAll(w, *items, codec, alignment)
		},
		decode: func(r *Reader) error {
			sub, err := r.Sub(name, c.value)
			if err != nil {
				return err
			}
			var out []T
			for sub.Remaining() > 0 {
				start := sub.Offset()
				v, err := codec.Decode(sub)
				if err != nil {
					return err
				}
				if err = sub.Zeros(name+" padding", PaddingSize(sub.Offset()-start, alignment)); err != nil {
					return err
				}
				out = append(out, v)
			}
			log.Trace().Str("field", name).Int("records", len(out)).Int("bytes", c.value).Msg("decoded sized records")
			*items = out
			return nil
		},
	}
}

// TrailingRecords is an array that runs to the end of the reader.
func TrailingRecords[T any](name string, items *[]T, codec Codec[T]) Field {
	return &field{
		name: name,
		size: func() int { return sizeAll(*items, codec, 1) },
		encode: func(w *Writer) error {
			return encodeAll(w, *items, codec, 1)
		},
		decode: func(r *Reader) error {
			var out []T
			for r.Remaining() > 0 {
				v, err := codec.Decode(r)
				if err != nil {
					return err
				}
				out = append(out, v)
			}
			*items = out
			return nil
		},
	}
}
