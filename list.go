package ssz

import "reflect"

// List is the List[T,Nmax] collection wrapper (§4.4): a variable-length,
// Nmax-bounded sequence of elements of a single SSZ type T, carried as a
// runtime value rather than a generic length parameter since Go has no
// const generics to pin Nmax into the type itself.
type List[T any] struct {
	Items []T
	Nmax  int
}

// NewList returns an empty List bounded by nmax.
func NewList[T any](nmax int) *List[T] {
	return &List[T]{Nmax: nmax}
}

// Append adds an element, rejecting growth past Nmax.
func (l *List[T]) Append(v T) error {
	if len(l.Items) >= l.Nmax {
		return newSerializeError(ErrListTooLong, l.typeName(), l.Nmax, len(l.Items)+1)
	}
	l.Items = append(l.Items, v)
	return nil
}

// Len returns the current element count.
func (l *List[T]) Len() int { return len(l.Items) }

func (l *List[T]) typeName() string {
	var zero T
	return "List[" + reflect.TypeOf(zero).String() + "]"
}

func (l *List[T]) ctx() tagContext { return tagContext{maxes: []int{l.Nmax}} }

func (l *List[T]) isVariable() bool        { return true }
func (l *List[T]) fixedWidth() (int, bool) { return 0, false }

func (l *List[T]) limit() uint64 {
	var zero T
	if width, ok := fixedSizeOfType(reflect.TypeOf(zero), tagContext{}); ok {
		return calculateLimit(uint64(l.Nmax), uint64(width))
	}
	return uint64(l.Nmax)
}

func (l *List[T]) appendTo(dst []byte) ([]byte, error) {
	if len(l.Items) > l.Nmax {
		return dst, newSerializeError(ErrListTooLong, l.typeName(), l.Nmax, len(l.Items))
	}
	enc, err := encodeValue(reflect.ValueOf(l.Items), l.ctx())
	if err != nil {
		return dst, err
	}
	return append(dst, enc...), nil
}

func (l *List[T]) populateFrom(buf []byte) error {
	var zero T
	decoded, err := decodeValue(buf, reflect.SliceOf(reflect.TypeOf(zero)), l.ctx())
	if err != nil {
		return err
	}
	items := make([]T, decoded.Len())
	reflect.Copy(reflect.ValueOf(items), decoded)
	l.Items = items
	return nil
}

func (l *List[T]) root(d Digest) ([32]byte, error) {
	return hashValue(d, reflect.ValueOf(l.Items), l.ctx())
}
