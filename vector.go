package ssz

import "reflect"

// Vector is the Vector[T,N] collection wrapper (§4.4): a fixed-length
// sequence of exactly N elements of a single SSZ type T. N lives on the
// value, not the type (Go has no const generics to pin it into the type
// the way Nmax is pinned into List's declaration site), so Vector is
// meant for top-level or standalone use; as a container field its
// static width can't be classified from a zero value — use a tagged
// `[N]T` array field for that instead.
type Vector[T any] struct {
	Items []T
	N     int
}

// NewVector returns a zero-valued Vector of length n.
func NewVector[T any](n int) *Vector[T] {
	return &Vector[T]{Items: make([]T, n), N: n}
}

func (v *Vector[T]) typeName() string {
	var zero T
	return "Vector[" + reflect.TypeOf(zero).String() + "]"
}

func (v *Vector[T]) ctx() tagContext { return tagContext{sizes: []int{v.N}} }

func (v *Vector[T]) isVariable() bool {
	_, ok := v.fixedWidth()
	return !ok
}

func (v *Vector[T]) fixedWidth() (int, bool) {
	var zero T
	width, ok := fixedSizeOfType(reflect.TypeOf(zero), tagContext{})
	if !ok {
		return 0, false
	}
	return width * v.N, true
}

func (v *Vector[T]) limit() uint64 {
	var zero T
	width, ok := fixedSizeOfType(reflect.TypeOf(zero), tagContext{})
	if !ok {
		return uint64(v.N)
	}
	return calculateLimit(uint64(v.N), uint64(width))
}

func (v *Vector[T]) appendTo(dst []byte) ([]byte, error) {
	if len(v.Items) != v.N {
		return dst, newSerializeError(ErrListTooLong, v.typeName(), v.N, len(v.Items))
	}
	enc, err := encodeValue(reflect.ValueOf(v.Items), v.ctx())
	if err != nil {
		return dst, err
	}
	return append(dst, enc...), nil
}

func (v *Vector[T]) populateFrom(buf []byte) error {
	var zero T
	decoded, err := decodeValue(buf, reflect.SliceOf(reflect.TypeOf(zero)), v.ctx())
	if err != nil {
		return err
	}
	if decoded.Len() != v.N {
		return newDeserializeError(ErrInvalidLength, v.typeName(), len(buf))
	}
	items := make([]T, decoded.Len())
	reflect.Copy(reflect.ValueOf(items), decoded)
	v.Items = items
	return nil
}

func (v *Vector[T]) root(d Digest) ([32]byte, error) {
	return hashValue(d, reflect.ValueOf(v.Items), v.ctx())
}
