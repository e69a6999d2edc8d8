package ssz

import "fmt"

// SerializeCode enumerates the caller-side violations that Marshal can
// report. Encoding a well-typed, in-range value never fails.
type SerializeCode string

const (
	ErrListTooLong           SerializeCode = "list_too_long"
	ErrBitListTooLong        SerializeCode = "bitlist_too_long"
	ErrInvalidUnionSelector  SerializeCode = "invalid_union_selector"
)

// SerializeError reports a caller-side encoding violation.
type SerializeError struct {
	Code  SerializeCode
	Type  string
	Field string
	Want  int
	Got   int
	cause error
}

func (e *SerializeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("ssz: %s: %s.%s (want<=%d got=%d)", e.Code, e.Type, e.Field, e.Want, e.Got)
	}
	return fmt.Sprintf("ssz: %s: %s (want<=%d got=%d)", e.Code, e.Type, e.Want, e.Got)
}

func (e *SerializeError) Unwrap() error { return e.cause }

// DeserializeCode enumerates the input-validation failures Unmarshal can
// report, per the codec's decode contract.
type DeserializeCode string

const (
	ErrInvalidByteLength       DeserializeCode = "invalid_byte_length"
	ErrOffsetOutOfBounds       DeserializeCode = "offset_out_of_bounds"
	ErrOffsetsNotMonotonic     DeserializeCode = "offsets_not_monotonic"
	ErrInvalidBool             DeserializeCode = "invalid_bool"
	ErrInvalidBitlistTerminator DeserializeCode = "invalid_bitlist_terminator"
	ErrInvalidSelector         DeserializeCode = "invalid_selector"
	ErrMaxLengthExceeded       DeserializeCode = "max_length_exceeded"
	ErrInvalidLength           DeserializeCode = "invalid_length"
)

// DeserializeError reports an input-validation failure while decoding.
// Offset is the byte position within the frame being decoded where the
// violation was detected, when known.
type DeserializeError struct {
	Code   DeserializeCode
	Type   string
	Field  string
	Offset int
	cause  error
}

func (e *DeserializeError) Error() string {
	loc := e.Type
	if e.Field != "" {
		loc = fmt.Sprintf("%s.%s", e.Type, e.Field)
	}
	if e.Offset >= 0 {
		return fmt.Sprintf("ssz: %s: %s at byte %d", e.Code, loc, e.Offset)
	}
	return fmt.Sprintf("ssz: %s: %s", e.Code, loc)
}

func (e *DeserializeError) Unwrap() error { return e.cause }

func newSerializeError(code SerializeCode, typ string, want, got int) *SerializeError {
	return &SerializeError{Code: code, Type: typ, Want: want, Got: got}
}

func newDeserializeError(code DeserializeCode, typ string, offset int) *DeserializeError {
	return &DeserializeError{Code: code, Type: typ, Offset: offset}
}

func (e *DeserializeError) withField(field string) *DeserializeError {
	cp := *e
	cp.Field = field
	return &cp
}
