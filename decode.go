package ssz

import (
	"encoding/binary"
	"reflect"

	"github.com/pkg/errors"
)

// Unmarshal decodes canonical SSZ bytes into out, which must be a
// non-nil pointer (§4.2). Every offset-table and length invariant is
// checked; a malformed frame returns a *DeserializeError.
func Unmarshal(data []byte, out interface{}) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return errors.New("ssz: Unmarshal requires a non-nil pointer")
	}
	if sv, ok := asSSZValue(v.Elem()); ok && v.Elem().Kind() == reflect.Struct {
		// Decode into the caller's own wrapper so its N / Nmax / variant
		// list are honoured.
		return sv.populateFrom(data)
	}
	decoded, err := decodeValue(data, v.Elem().Type(), tagContext{})
	if err != nil {
		return err
	}
	v.Elem().Set(decoded)
	return nil
}

func decodeValue(buf []byte, t reflect.Type, ctx tagContext) (reflect.Value, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Implements(sszValueType) || reflect.PointerTo(t).Implements(sszValueType) {
		zero := reflect.New(t)
		if sv, ok := asSSZValue(zero.Elem()); ok {
			if err := sv.populateFrom(buf); err != nil {
				return reflect.Value{}, err
			}
			return zero.Elem(), nil
		}
	}

	switch t {
	case reflect.TypeOf(Uint128{}):
		if len(buf) != 16 {
			return reflect.Value{}, newDeserializeError(ErrInvalidByteLength, "uint128", 0)
		}
		return reflect.ValueOf(Uint128FromBytes(buf)), nil
	case reflect.TypeOf(Uint256{}):
		if len(buf) != 32 {
			return reflect.Value{}, newDeserializeError(ErrInvalidByteLength, "uint256", 0)
		}
		return reflect.ValueOf(Uint256FromBytes(buf)), nil
	}

	switch t.Kind() {
	case reflect.Bool:
		return decodeBool(buf)
	case reflect.Uint8:
		if len(buf) != 1 {
			return reflect.Value{}, newDeserializeError(ErrInvalidByteLength, "uint8", 0)
		}
		return reflect.ValueOf(buf[0]).Convert(t), nil
	case reflect.Uint16:
		if len(buf) != 2 {
			return reflect.Value{}, newDeserializeError(ErrInvalidByteLength, "uint16", 0)
		}
		return reflect.ValueOf(binary.LittleEndian.Uint16(buf)).Convert(t), nil
	case reflect.Uint32:
		if len(buf) != 4 {
			return reflect.Value{}, newDeserializeError(ErrInvalidByteLength, "uint32", 0)
		}
		return reflect.ValueOf(binary.LittleEndian.Uint32(buf)).Convert(t), nil
	case reflect.Uint64:
		if len(buf) != 8 {
			return reflect.Value{}, newDeserializeError(ErrInvalidByteLength, "uint64", 0)
		}
		return reflect.ValueOf(binary.LittleEndian.Uint64(buf)).Convert(t), nil
	case reflect.Array:
		return decodeArray(buf, t, ctx)
	case reflect.Slice:
		return decodeSlice(buf, t, ctx)
	case reflect.Struct:
		return decodeStruct(buf, t)
	default:
		return reflect.Value{}, errors.Errorf("ssz: unsupported kind %s", t.Kind())
	}
}

func decodeBool(buf []byte) (reflect.Value, error) {
	if len(buf) != 1 {
		return reflect.Value{}, newDeserializeError(ErrInvalidByteLength, "bool", 0)
	}
	switch buf[0] {
	case 0:
		return reflect.ValueOf(false), nil
	case 1:
		return reflect.ValueOf(true), nil
	default:
		return reflect.Value{}, newDeserializeError(ErrInvalidBool, "bool", 0)
	}
}

func decodeStruct(buf []byte, t reflect.Type) (reflect.Value, error) {
	fields, err := collectFieldTypes(t)
	if err != nil {
		return reflect.Value{}, err
	}

	out := reflect.New(t).Elem()

	type fixedSpan struct {
		idx        int
		ctx        tagContext
		start, end int
		variable   bool
	}
	spans := make([]fixedSpan, len(fields))

	fixedLen := 0
	for i, f := range fields {
		ctx := parseTagContext(f.tag)
		if size, ok := fixedSizeOfType(f.typ, ctx); ok {
			spans[i] = fixedSpan{idx: i, ctx: ctx, start: fixedLen, end: fixedLen + size}
			fixedLen += size
		} else {
			spans[i] = fixedSpan{idx: i, ctx: ctx, start: fixedLen, end: fixedLen + BytesPerLengthOffset, variable: true}
			fixedLen += BytesPerLengthOffset
		}
	}
	if len(buf) < fixedLen {
		return reflect.Value{}, newDeserializeError(ErrInvalidByteLength, t.String(), len(buf))
	}

	hasVariable := false
	for _, sp := range spans {
		if sp.variable {
			hasVariable = true
			break
		}
	}
	if !hasVariable && len(buf) != fixedLen {
		return reflect.Value{}, newDeserializeError(ErrInvalidByteLength, t.String(), len(buf))
	}

	offsets := make([]int, 0, len(fields))
	varFieldIdx := make([]int, 0, len(fields))
	for _, sp := range spans {
		if !sp.variable {
			continue
		}
		off := int(binary.LittleEndian.Uint32(buf[sp.start:sp.end]))
		if off < fixedLen || off > len(buf) {
			return reflect.Value{}, newDeserializeError(ErrOffsetOutOfBounds, t.String(), sp.start).withField(fields[sp.idx].name)
		}
		offsets = append(offsets, off)
		varFieldIdx = append(varFieldIdx, sp.idx)
	}
	if len(offsets) > 0 && offsets[0] != fixedLen {
		return reflect.Value{}, newDeserializeError(ErrOffsetOutOfBounds, t.String(), spans[varFieldIdx[0]].start).withField(fields[varFieldIdx[0]].name)
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return reflect.Value{}, newDeserializeError(ErrOffsetsNotMonotonic, t.String(), spans[varFieldIdx[i]].start).withField(fields[varFieldIdx[i]].name)
		}
	}

	varPos := 0
	for _, sp := range spans {
		f := fields[sp.idx]
		if !sp.variable {
			val, err := decodeValue(buf[sp.start:sp.end], f.typ, sp.ctx)
			if err != nil {
				return reflect.Value{}, wrapDeserializeField(err, f.name)
			}
			out.Field(sp.idx).Set(val)
			continue
		}
		start := offsets[varPos]
		end := len(buf)
		if varPos+1 < len(offsets) {
			end = offsets[varPos+1]
		}
		varPos++
		val, err := decodeValue(buf[start:end], f.typ, sp.ctx)
		if err != nil {
			return reflect.Value{}, wrapDeserializeField(err, f.name)
		}
		out.Field(sp.idx).Set(val)
	}
	return out, nil
}

func decodeArray(buf []byte, t reflect.Type, ctx tagContext) (reflect.Value, error) {
	elemType := t.Elem()
	n := t.Len()

	if elemType.Kind() == reflect.Uint8 {
		if len(buf) != n {
			return reflect.Value{}, newDeserializeError(ErrInvalidByteLength, t.String(), len(buf))
		}
		out := reflect.New(t).Elem()
		reflect.Copy(out, reflect.ValueOf(buf))
		return out, nil
	}

	elemCtx := ctx.shift()
	out := reflect.New(t).Elem()

	if elemSize, ok := fixedSizeOfType(elemType, elemCtx); ok {
		if len(buf) != elemSize*n {
			return reflect.Value{}, newDeserializeError(ErrInvalidByteLength, t.String(), len(buf))
		}
		for i := 0; i < n; i++ {
			val, err := decodeValue(buf[i*elemSize:(i+1)*elemSize], elemType, elemCtx)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(val)
		}
		return out, nil
	}

	offsets, bounds, err := parseOffsetTable(buf, n, t.String())
	if err != nil {
		return reflect.Value{}, err
	}
	for i := 0; i < n; i++ {
		val, err := decodeValue(buf[offsets[i]:bounds[i]], elemType, elemCtx)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(i).Set(val)
	}
	return out, nil
}

func decodeSlice(buf []byte, t reflect.Type, ctx tagContext) (reflect.Value, error) {
	if ctx.isBitlist {
		maxBits, _ := ctx.max()
		if err := validateBitlistBytes(buf, maxBits); err != nil {
			return reflect.Value{}, err
		}
		out := reflect.MakeSlice(t, len(buf), len(buf))
		reflect.Copy(out, reflect.ValueOf(buf))
		return out, nil
	}

	elemType := t.Elem()
	elemCtx := ctx.shift()
	size, hasSize := ctx.size()
	maxLen, hasMax := ctx.max()

	if elemSize, ok := fixedSizeOfType(elemType, elemCtx); ok {
		if elemSize == 0 {
			return reflect.MakeSlice(t, 0, 0), nil
		}
		if len(buf)%elemSize != 0 {
			return reflect.Value{}, newDeserializeError(ErrInvalidByteLength, t.String(), len(buf))
		}
		n := len(buf) / elemSize
		if hasSize && n != size {
			return reflect.Value{}, newDeserializeError(ErrInvalidLength, t.String(), len(buf))
		}
		if !hasSize && hasMax && n > maxLen {
			return reflect.Value{}, newDeserializeError(ErrMaxLengthExceeded, t.String(), len(buf))
		}
		out := reflect.MakeSlice(t, n, n)
		for i := 0; i < n; i++ {
			val, err := decodeValue(buf[i*elemSize:(i+1)*elemSize], elemType, elemCtx)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Index(i).Set(val)
		}
		return out, nil
	}

	if len(buf) == 0 {
		return reflect.MakeSlice(t, 0, 0), nil
	}

	n, offsets, bounds, err := parseVariableOffsetTable(buf, t.String())
	if err != nil {
		return reflect.Value{}, err
	}
	if hasSize && n != size {
		return reflect.Value{}, newDeserializeError(ErrInvalidLength, t.String(), len(buf))
	}
	if !hasSize && hasMax && n > maxLen {
		return reflect.Value{}, newDeserializeError(ErrMaxLengthExceeded, t.String(), len(buf))
	}
	out := reflect.MakeSlice(t, n, n)
	for i := 0; i < n; i++ {
		val, err := decodeValue(buf[offsets[i]:bounds[i]], elemType, elemCtx)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(i).Set(val)
	}
	return out, nil
}

// parseOffsetTable parses a fixed-count (n) offset table for a Vector of
// variable-size T: n 4-byte offsets followed by n payloads.
func parseOffsetTable(buf []byte, n int, typeName string) (offsets, bounds []int, err error) {
	headLen := BytesPerLengthOffset * n
	if len(buf) < headLen {
		return nil, nil, newDeserializeError(ErrInvalidByteLength, typeName, len(buf))
	}
	offsets = make([]int, n)
	for i := 0; i < n; i++ {
		off := int(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
		if off < headLen || off > len(buf) {
			return nil, nil, newDeserializeError(ErrOffsetOutOfBounds, typeName, i*4)
		}
		if i > 0 && off < offsets[i-1] {
			return nil, nil, newDeserializeError(ErrOffsetsNotMonotonic, typeName, i*4)
		}
		offsets[i] = off
	}
	if n > 0 && offsets[0] != headLen {
		return nil, nil, newDeserializeError(ErrOffsetOutOfBounds, typeName, 0)
	}
	bounds = make([]int, n)
	for i := 0; i < n; i++ {
		if i+1 < n {
			bounds[i] = offsets[i+1]
		} else {
			bounds[i] = len(buf)
		}
	}
	return offsets, bounds, nil
}

// parseVariableOffsetTable parses a List's offset table, whose element
// count isn't known upfront: the first offset's value tells us how many
// 4-byte entries precede it.
func parseVariableOffsetTable(buf []byte, typeName string) (n int, offsets, bounds []int, err error) {
	if len(buf) < BytesPerLengthOffset {
		return 0, nil, nil, newDeserializeError(ErrInvalidByteLength, typeName, len(buf))
	}
	first := int(binary.LittleEndian.Uint32(buf[0:4]))
	if first < BytesPerLengthOffset || first > len(buf) || first%BytesPerLengthOffset != 0 {
		return 0, nil, nil, newDeserializeError(ErrOffsetOutOfBounds, typeName, 0)
	}
	n = first / BytesPerLengthOffset
	offsets, bounds, err = parseOffsetTable(buf, n, typeName)
	if err != nil {
		return 0, nil, nil, err
	}
	return n, offsets, bounds, nil
}

func wrapDeserializeField(err error, field string) error {
	if de, ok := err.(*DeserializeError); ok {
		return de.withField(field)
	}
	return errors.Wrapf(err, "field %s", field)
}
