package ssz

import (
	"math/bits"
	"reflect"
)

// fixedSizeOfType implements the type classifier's variable?/fixed_part_width
// attributes (§3): it returns the fixed byte width of t under ctx, and
// whether t is fixed-size at all. A type's variable? flag is the negation
// of ok.
func fixedSizeOfType(t reflect.Type, ctx tagContext) (width int, ok bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Implements(sszValueType) || reflect.PointerTo(t).Implements(sszValueType) {
		zero := reflect.New(t).Elem()
		if sv, ok := asSSZValue(zero); ok {
			return sv.fixedWidth()
		}
	}

	if t == reflect.TypeOf(Uint256{}) {
		return 32, true
	}

	switch t.Kind() {
	case reflect.Bool, reflect.Uint8:
		return 1, true
	case reflect.Uint16:
		return 2, true
	case reflect.Uint32:
		return 4, true
	case reflect.Uint64:
		return 8, true
	case reflect.Array:
		elemCtx := ctx.shift()
		elemSize, ok := fixedSizeOfType(t.Elem(), elemCtx)
		if !ok {
			return 0, false
		}
		return elemSize * t.Len(), true
	case reflect.Slice:
		if ctx.isBitlist {
			return 0, false
		}
		size, hasSize := ctx.size()
		if !hasSize {
			return 0, false
		}
		elemCtx := ctx.shift()
		elemSize, ok := fixedSizeOfType(t.Elem(), elemCtx)
		if !ok {
			return 0, false
		}
		return elemSize * size, true
	case reflect.Struct:
		fields, err := collectFieldTypes(t)
		if err != nil {
			return 0, false
		}
		total := 0
		for _, f := range fields {
			size, ok := fixedSizeOfType(f.typ, parseTagContext(f.tag))
			if !ok {
				return 0, false
			}
			total += size
		}
		return total, true
	default:
		return 0, false
	}
}

// calculateLimit computes the Merkleization chunk_limit for a packed
// basic vector/list of maxItems elements of elemSize bytes each (§4.3).
func calculateLimit(maxItems, elemSize uint64) uint64 {
	limit := (maxItems*elemSize + bytesPerChunk - 1) / bytesPerChunk
	if limit != 0 {
		return limit
	}
	if maxItems == 0 {
		return 1
	}
	return maxItems
}

// bitlistChunkLimit computes chunk_limit for a BitList[Nmax]: ceil(Nmax/256).
func bitlistChunkLimit(maxBits int) uint64 {
	if maxBits <= 0 {
		return 1
	}
	return uint64((maxBits + 255) / 256)
}

func nextPowerOfTwo(n uint64) uint64 {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len64(n-1)
}
