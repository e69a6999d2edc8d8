package ssz

import "reflect"

// Option is the Option[T] sum-type kind (§3): a tag byte (0 absent, 1
// present) followed by T's encoding when present.
type Option[T any] struct {
	Present bool
	Value   T
}

// Some returns a present Option.
func Some[T any](v T) Option[T] { return Option[T]{Present: true, Value: v} }

// None returns an absent Option.
func None[T any]() Option[T] { return Option[T]{} }

func (o *Option[T]) isVariable() bool        { return true }
func (o *Option[T]) fixedWidth() (int, bool) { return 0, false }
func (o *Option[T]) limit() uint64           { return 1 }

func (o *Option[T]) appendTo(dst []byte) ([]byte, error) {
	if !o.Present {
		return append(dst, 0x00), nil
	}
	enc, err := encodeValue(reflect.ValueOf(o.Value), tagContext{})
	if err != nil {
		return dst, err
	}
	out := append(dst, 0x01)
	return append(out, enc...), nil
}

func (o *Option[T]) populateFrom(buf []byte) error {
	if len(buf) == 0 {
		return newDeserializeError(ErrInvalidByteLength, "Option", 0)
	}
	switch buf[0] {
	case 0x00:
		if len(buf) != 1 {
			return newDeserializeError(ErrInvalidByteLength, "Option", 1)
		}
		o.Present = false
		var zero T
		o.Value = zero
		return nil
	case 0x01:
		var zero T
		decoded, err := decodeValue(buf[1:], reflect.TypeOf(zero), tagContext{})
		if err != nil {
			return err
		}
		o.Present = true
		o.Value = decoded.Interface().(T)
		return nil
	default:
		return newDeserializeError(ErrInvalidSelector, "Option", 0)
	}
}

func (o *Option[T]) root(d Digest) ([32]byte, error) {
	if !o.Present {
		return mixInSelector(d, [32]byte{}, 0), nil
	}
	inner, err := hashValue(d, reflect.ValueOf(o.Value), tagContext{})
	if err != nil {
		return [32]byte{}, err
	}
	return mixInSelector(d, inner, 1), nil
}
