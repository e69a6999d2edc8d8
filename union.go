package ssz

import (
	"reflect"

	"github.com/pkg/errors"
)

// Union is the Union{T0,...,Tk} sum-type kind (§3): one selector byte
// followed by the selected variant's encoding. Variants are declared as
// a slice of reflect.Type at construction, since Go's type system has no
// way to express a closed, heterogeneous list of alternatives the way a
// schema descriptor does in a dynamically typed implementation.
type Union struct {
	Variants []reflect.Type
	Selector uint8
	Value    interface{}
}

// NewUnion declares a Union over the given variant types, in the order
// their selector bytes are assigned (variant i <-> selector i).
func NewUnion(variants ...reflect.Type) *Union {
	return &Union{Variants: variants}
}

// Set assigns the selected variant's value, validating it against the
// declared type for selector.
func (u *Union) Set(selector uint8, value interface{}) error {
	if err := u.validSelector(selector); err != nil {
		return err
	}
	if reflect.TypeOf(value) != u.Variants[selector] {
		return errors.Errorf("ssz: union value type %T does not match variant %d (%s)", value, selector, u.Variants[selector])
	}
	u.Selector = selector
	u.Value = value
	return nil
}

// validSelector enforces the original implementation's bound: a
// selector must be < 128 in addition to indexing a declared variant, so
// the top bit of the selector byte stays reserved.
func (u *Union) validSelector(selector uint8) error {
	if int(selector) >= len(u.Variants) {
		return newSerializeError(ErrInvalidUnionSelector, "Union", len(u.Variants)-1, int(selector))
	}
	if selector >= 128 {
		return newSerializeError(ErrInvalidUnionSelector, "Union", 127, int(selector))
	}
	return nil
}

func (u *Union) isVariable() bool        { return true }
func (u *Union) fixedWidth() (int, bool) { return 0, false }
func (u *Union) limit() uint64           { return 1 }

func (u *Union) appendTo(dst []byte) ([]byte, error) {
	if err := u.validSelector(u.Selector); err != nil {
		return dst, err
	}
	enc, err := encodeValue(reflect.ValueOf(u.Value), tagContext{})
	if err != nil {
		return dst, err
	}
	out := append(dst, u.Selector)
	return append(out, enc...), nil
}

func (u *Union) populateFrom(buf []byte) error {
	if len(buf) == 0 {
		return newDeserializeError(ErrInvalidByteLength, "Union", 0)
	}
	selector := buf[0]
	if int(selector) >= len(u.Variants) || selector >= 128 {
		return newDeserializeError(ErrInvalidSelector, "Union", 0)
	}
	decoded, err := decodeValue(buf[1:], u.Variants[selector], tagContext{})
	if err != nil {
		return err
	}
	u.Selector = selector
	u.Value = decoded.Interface()
	return nil
}

func (u *Union) root(d Digest) ([32]byte, error) {
	if err := u.validSelector(u.Selector); err != nil {
		return [32]byte{}, err
	}
	inner, err := hashValue(d, reflect.ValueOf(u.Value), tagContext{})
	if err != nil {
		return [32]byte{}, err
	}
	return mixInSelector(d, inner, u.Selector), nil
}
