package ssz

import "reflect"

const bytesPerChunk = 32

// BytesPerLengthOffset is the fixed width of an SSZ offset table entry.
const BytesPerLengthOffset = 4

// sszValue is the capability surface the collection wrappers (BitList,
// BitVector, List, Vector) and the sum-type kinds (Option, Union)
// implement so the core codec can dispatch to them directly instead of
// through reflection over their internal fields (§9 design note: a small,
// stable set of capability interfaces is as acceptable as a tagged
// variant switch — the collection wrappers are where that choice matters,
// since their internals don't look like the value they represent).
type sszValue interface {
	// isVariable reports the type's variable? flag (§3).
	isVariable() bool
	// fixedWidth reports fixed_part_width; ok is false when the type is
	// variable-size.
	fixedWidth() (width int, ok bool)
	// limit reports the Merkleization chunk_limit (§4.3).
	limit() uint64
	// appendTo serializes the value onto dst and returns the extended
	// slice.
	appendTo(dst []byte) ([]byte, error)
	// populateFrom decodes the value from buf, consuming all of it.
	populateFrom(buf []byte) error
	// root computes the value's hash-tree-root, including any mix-in.
	root(d Digest) ([32]byte, error)
}

var sszValueType = reflect.TypeOf((*sszValue)(nil)).Elem()

// asSSZValue returns the sszValue view of v, if v (or a pointer to v) is
// addressable and implements the capability interface.
func asSSZValue(v reflect.Value) (sszValue, bool) {
	if v.CanAddr() {
		if sv, ok := v.Addr().Interface().(sszValue); ok {
			return sv, true
		}
	}
	if v.CanInterface() {
		if sv, ok := v.Interface().(sszValue); ok {
			return sv, true
		}
	}
	return nil, false
}
