package catbuffer

import (
	"github.com/alexdcox/symbol-go/fault"
)

type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Lookup is the closed set of raw values an enumeration accepts. Raw values
// outside the set are errors; there is never a default variant.
type Lookup[T Unsigned] struct {
	name  string
	valid map[T]struct{}
	order []T
}

func NewLookup[T Unsigned](name string, values ...T) *Lookup[T] {
	l := &Lookup[T]{name: name, valid: make(map[T]struct{}, len(values))}
	for _, v := range values {
		if _, dup := l.valid[v]; dup {
			panic("catbuffer: duplicate value in enum " + name)
		}
		l.valid[v] = struct{}{}
		l.order = append(l.order, v)
	}
	return l
}

func (l *Lookup[T]) Name() string {
	return l.name
}

// Resolve returns raw unchanged when it names a variant.
func (l *Lookup[T]) Resolve(raw T) (T, error) {
	if _, ok := l.valid[raw]; !ok {
		return raw, fault.UnknownEnumValue(l.name, uint64(raw))
	}
	return raw, nil
}

// Values lists the variants in declaration order.
func (l *Lookup[T]) Values() []T {
	return append([]T{}, l.order...)
}
