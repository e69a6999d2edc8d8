package ssz

import (
	"reflect"

	"github.com/pkg/errors"
)

// HashTreeRoot computes value's SSZ hash tree root (§4.3) using the
// default digest.
func HashTreeRoot(value interface{}) ([32]byte, error) {
	return HashTreeRootWithDigest(DefaultDigest, value)
}

// HashTreeRootWithDigest is HashTreeRoot parameterized over the digest
// primitive.
func HashTreeRootWithDigest(d Digest, value interface{}) ([32]byte, error) {
	if value == nil {
		return [32]byte{}, errors.New("ssz: nil input")
	}
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Pointer {
		addr := reflect.New(v.Type())
		addr.Elem().Set(v)
		v = addr
	}
	return hashValue(d, v, tagContext{})
}

func hashValue(d Digest, v reflect.Value, ctx tagContext) ([32]byte, error) {
	if !v.IsValid() {
		return [32]byte{}, errors.New("ssz: invalid value")
	}

	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v = reflect.New(v.Type().Elem()).Elem()
			break
		}
		v = v.Elem()
	}

	if sv, ok := asSSZValue(v); ok {
		return sv.root(d)
	}

	switch t := v.Interface().(type) {
	case Uint128:
		b := t.Bytes()
		return merkleizeFixedBytes(d, b[:])
	case Uint256:
		b := t.Bytes()
		return merkleizeFixedBytes(d, b[:])
	}

	switch v.Kind() {
	case reflect.Bool:
		return hashBool(v.Bool()), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		enc, err := encodeValue(v, ctx)
		if err != nil {
			return [32]byte{}, err
		}
		return merkleizeFixedBytes(d, enc)
	case reflect.Array:
		return hashArray(d, v, ctx)
	case reflect.Slice:
		return hashSlice(d, v, ctx)
	case reflect.Struct:
		return hashStruct(d, v)
	default:
		return [32]byte{}, errors.Errorf("ssz: unsupported kind %s", v.Kind())
	}
}

func hashBool(val bool) [32]byte {
	var out [32]byte
	if val {
		out[0] = 1
	}
	return out
}

// merkleizeFixedBytes hashes a basic value's little-endian encoding as a
// single zero-padded chunk (uint8..uint256 all merkleize this way).
func merkleizeFixedBytes(d Digest, enc []byte) ([32]byte, error) {
	var chunk [32]byte
	copy(chunk[:], enc)
	return chunk, nil
}

func hashStruct(d Digest, v reflect.Value) ([32]byte, error) {
	fields, err := collectFields(v)
	if err != nil {
		return [32]byte{}, err
	}
	roots := make([][32]byte, 0, len(fields))
	for _, f := range fields {
		ctx := parseTagContext(f.tag)
		root, err := hashValue(d, f.value, ctx)
		if err != nil {
			return [32]byte{}, errors.Wrapf(err, "field %s", f.name)
		}
		roots = append(roots, root)
	}
	return merkleizeRoots(d, roots, uint64(len(roots)))
}

func hashArray(d Digest, v reflect.Value, ctx tagContext) ([32]byte, error) {
	elemType := v.Type().Elem()
	elemCtx := ctx.shift()
	length := v.Len()

	if elemType.Kind() == reflect.Uint8 {
		buf := make([]byte, length)
		for i := 0; i < length; i++ {
			buf[i] = byte(v.Index(i).Uint())
		}
		chunks := chunkify(buf)
		return merkleizeChunks(d, chunks, calculateLimit(uint64(length), 1))
	}

	if elemSize, ok := fixedSizeOfType(elemType, elemCtx); ok {
		data := make([]byte, 0, elemSize*length)
		for i := 0; i < length; i++ {
			enc, err := encodeValue(v.Index(i), elemCtx)
			if err != nil {
				return [32]byte{}, err
			}
			data = append(data, enc...)
		}
		chunks := chunkify(data)
		return merkleizeChunks(d, chunks, calculateLimit(uint64(length), uint64(elemSize)))
	}

	roots := make([][32]byte, 0, length)
	for i := 0; i < length; i++ {
		root, err := hashValue(d, v.Index(i), elemCtx)
		if err != nil {
			return [32]byte{}, errors.Wrapf(err, "element %d", i)
		}
		roots = append(roots, root)
	}
	return merkleizeRoots(d, roots, uint64(length))
}

func hashSlice(d Digest, v reflect.Value, ctx tagContext) ([32]byte, error) {
	if ctx.isBitlist {
		return hashBitlistBytes(d, v, ctx)
	}

	elemType := v.Type().Elem()
	elemCtx := ctx.shift()
	length := v.Len()
	size, hasSize := ctx.size()
	maxLen, hasMax := ctx.max()

	if hasSize && length != size {
		return [32]byte{}, newSerializeError(ErrListTooLong, v.Type().String(), size, length)
	}
	if !hasSize && hasMax && length > maxLen {
		return [32]byte{}, newSerializeError(ErrListTooLong, v.Type().String(), maxLen, length)
	}

	if elemSize, ok := fixedSizeOfType(elemType, elemCtx); ok {
		data := make([]byte, 0, elemSize*length)
		for i := 0; i < length; i++ {
			enc, err := encodeValue(v.Index(i), elemCtx)
			if err != nil {
				return [32]byte{}, err
			}
			data = append(data, enc...)
		}
		chunks := chunkify(data)
		if hasSize {
			root, err := merkleizeChunks(d, chunks, calculateLimit(uint64(size), uint64(elemSize)))
			return root, err
		}
		limit := uint64(length)
		if hasMax {
			limit = uint64(maxLen)
		}
		root, err := merkleizeChunks(d, chunks, calculateLimit(limit, uint64(elemSize)))
		if err != nil {
			return [32]byte{}, err
		}
		return mixInLength(d, root, uint64(length)), nil
	}

	roots := make([][32]byte, 0, length)
	for i := 0; i < length; i++ {
		root, err := hashValue(d, v.Index(i), elemCtx)
		if err != nil {
			return [32]byte{}, errors.Wrapf(err, "element %d", i)
		}
		roots = append(roots, root)
	}
	if hasSize {
		return merkleizeRoots(d, roots, uint64(size))
	}
	limit := uint64(length)
	if hasMax {
		limit = uint64(maxLen)
	}
	root, err := merkleizeRoots(d, roots, limit)
	if err != nil {
		return [32]byte{}, err
	}
	return mixInLength(d, root, uint64(length)), nil
}

// hashBitlistBytes hashes a raw []byte field tagged `ssz:"bitlist"`.
func hashBitlistBytes(d Digest, v reflect.Value, ctx tagContext) ([32]byte, error) {
	raw := make([]byte, v.Len())
	reflect.Copy(reflect.ValueOf(raw), v)
	maxBits, _ := ctx.max()
	if err := validateBitlistBytes(raw, maxBits); err != nil {
		return [32]byte{}, err
	}
	content, length, err := parseBitlistBytes(raw)
	if err != nil {
		return [32]byte{}, err
	}
	chunks := chunkify(content)
	root, err := merkleizeChunks(d, chunks, bitlistChunkLimit(maxBits))
	if err != nil {
		return [32]byte{}, err
	}
	return mixInLength(d, root, length), nil
}
