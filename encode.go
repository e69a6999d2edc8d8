package ssz

import (
	"encoding/binary"
	"reflect"

	"github.com/pkg/errors"
)

// Marshal encodes value into canonical SSZ bytes (§4.1). Encoding a
// well-typed, in-range value never fails; Marshal returns a
// *SerializeError only on caller misuse such as a List exceeding its
// declared Nmax.
func Marshal(value interface{}) ([]byte, error) {
	if value == nil {
		return nil, errors.New("ssz: nil input")
	}
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Pointer {
		// Collection wrappers and sum types dispatch through pointer
		// receivers; give a plain value an addressable home so that
		// capability dispatch (asSSZValue) still finds them.
		addr := reflect.New(v.Type())
		addr.Elem().Set(v)
		v = addr
	}
	return encodeValue(v, tagContext{})
}

// AppendMarshal appends value's canonical SSZ encoding onto dst and
// returns the extended slice, the streaming-sink variant of Marshal (§6).
func AppendMarshal(dst []byte, value interface{}) ([]byte, error) {
	enc, err := Marshal(value)
	if err != nil {
		return dst, err
	}
	return append(dst, enc...), nil
}

func encodeValue(v reflect.Value, ctx tagContext) ([]byte, error) {
	if !v.IsValid() {
		return nil, errors.New("ssz: invalid value")
	}

	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v = reflect.New(v.Type().Elem()).Elem()
			break
		}
		v = v.Elem()
	}

	if sv, ok := asSSZValue(v); ok {
		return sv.appendTo(nil)
	}

	switch t := v.Interface().(type) {
	case Uint128:
		b := t.Bytes()
		return b[:], nil
	case Uint256:
		b := t.Bytes()
		return b[:], nil
	}

	switch v.Kind() {
	case reflect.Bool:
		return encodeBool(v.Bool()), nil
	case reflect.Uint8:
		return []byte{byte(v.Uint())}, nil
	case reflect.Uint16:
		return encodeUint16(uint16(v.Uint())), nil
	case reflect.Uint32:
		return encodeUint32(uint32(v.Uint())), nil
	case reflect.Uint64:
		return encodeUint64(v.Uint()), nil
	case reflect.Array:
		return encodeArray(v, ctx)
	case reflect.Slice:
		return encodeSlice(v, ctx)
	case reflect.Struct:
		return encodeStruct(v)
	default:
		return nil, errors.Errorf("ssz: unsupported kind %s", v.Kind())
	}
}

func encodeStruct(v reflect.Value) ([]byte, error) {
	fields, err := collectFields(v)
	if err != nil {
		return nil, err
	}

	fixedLen := 0
	for _, f := range fields {
		ctx := parseTagContext(f.tag)
		if size, ok := fixedSizeOfType(f.value.Type(), ctx); ok {
			fixedLen += size
		} else {
			fixedLen += BytesPerLengthOffset
		}
	}

	fixed := make([]byte, 0, fixedLen)
	variable := make([][]byte, 0)
	offset := fixedLen

	for _, f := range fields {
		ctx := parseTagContext(f.tag)
		if _, ok := fixedSizeOfType(f.value.Type(), ctx); ok {
			enc, err := encodeValue(f.value, ctx)
			if err != nil {
				return nil, wrapSerializeField(err, f.name)
			}
			fixed = append(fixed, enc...)
			continue
		}
		fixed = append(fixed, encodeUint32(uint32(offset))...)
		enc, err := encodeValue(f.value, ctx)
		if err != nil {
			return nil, wrapSerializeField(err, f.name)
		}
		variable = append(variable, enc)
		offset += len(enc)
	}

	out := make([]byte, 0, offset)
	out = append(out, fixed...)
	for _, part := range variable {
		out = append(out, part...)
	}
	return out, nil
}

func encodeArray(v reflect.Value, ctx tagContext) ([]byte, error) {
	elemType := v.Type().Elem()
	if elemType.Kind() == reflect.Uint8 {
		buf := make([]byte, v.Len())
		for i := 0; i < v.Len(); i++ {
			buf[i] = byte(v.Index(i).Uint())
		}
		return buf, nil
	}

	elemCtx := ctx.shift()
	if _, ok := fixedSizeOfType(elemType, elemCtx); ok {
		out := make([]byte, 0)
		for i := 0; i < v.Len(); i++ {
			enc, err := encodeValue(v.Index(i), elemCtx)
			if err != nil {
				return nil, errors.Wrapf(err, "element %d", i)
			}
			out = append(out, enc...)
		}
		return out, nil
	}

	// Vector of variable-size T: offset table + payloads, same discipline
	// as a container's variable fields (§4.1).
	n := v.Len()
	offset := BytesPerLengthOffset * n
	fixed := make([]byte, 0, offset)
	variable := make([][]byte, 0, n)
	for i := 0; i < n; i++ {
		fixed = append(fixed, encodeUint32(uint32(offset))...)
		enc, err := encodeValue(v.Index(i), elemCtx)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		variable = append(variable, enc)
		offset += len(enc)
	}
	out := make([]byte, 0, offset)
	out = append(out, fixed...)
	for _, part := range variable {
		out = append(out, part...)
	}
	return out, nil
}

func encodeSlice(v reflect.Value, ctx tagContext) ([]byte, error) {
	if ctx.isBitlist {
		return encodeBitlistBytes(v, ctx)
	}

	elemCtx := ctx.shift()
	size, hasSize := ctx.size()
	maxLen, hasMax := ctx.max()

	length := v.Len()
	if hasSize && length != size {
		return nil, newSerializeError(ErrListTooLong, v.Type().String(), size, length)
	}
	if !hasSize && hasMax && length > maxLen {
		return nil, newSerializeError(ErrListTooLong, v.Type().String(), maxLen, length)
	}

	if elemFixedSize, ok := fixedSizeOfType(v.Type().Elem(), elemCtx); ok {
		out := make([]byte, 0, length*elemFixedSize)
		for i := 0; i < length; i++ {
			enc, err := encodeValue(v.Index(i), elemCtx)
			if err != nil {
				return nil, errors.Wrapf(err, "element %d", i)
			}
			out = append(out, enc...)
		}
		return out, nil
	}

	offset := BytesPerLengthOffset * length
	fixed := make([]byte, 0, offset)
	variable := make([][]byte, 0, length)
	for i := 0; i < length; i++ {
		fixed = append(fixed, encodeUint32(uint32(offset))...)
		enc, err := encodeValue(v.Index(i), elemCtx)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		variable = append(variable, enc)
		offset += len(enc)
	}
	out := make([]byte, 0, offset)
	out = append(out, fixed...)
	for _, part := range variable {
		out = append(out, part...)
	}
	return out, nil
}

// encodeBitlistBytes encodes a raw []byte field tagged `ssz:"bitlist"` as
// described by its bit content (the teacher's AggregationBits shape): the
// bytes already carry their own sentinel bit, so encoding is identity
// modulo the Nmax bound check.
func encodeBitlistBytes(v reflect.Value, ctx tagContext) ([]byte, error) {
	if v.Kind() != reflect.Slice || v.Type().Elem().Kind() != reflect.Uint8 {
		return nil, errors.New("ssz: bitlist field must be []byte")
	}
	raw := make([]byte, v.Len())
	reflect.Copy(reflect.ValueOf(raw), v)
	maxBits, _ := ctx.max()
	if err := validateBitlistBytes(raw, maxBits); err != nil {
		return nil, err
	}
	return raw, nil
}

func wrapSerializeField(err error, field string) error {
	if se, ok := err.(*SerializeError); ok {
		cp := *se
		cp.Field = field
		return &cp
	}
	return errors.Wrapf(err, "field %s", field)
}

func encodeBool(val bool) []byte {
	if val {
		return []byte{1}
	}
	return []byte{0}
}

func encodeUint16(val uint16) []byte {
	out := make([]byte, 2)
	binary.LittleEndian.PutUint16(out, val)
	return out
}

func encodeUint32(val uint32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, val)
	return out
}

func encodeUint64(val uint64) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, val)
	return out
}
