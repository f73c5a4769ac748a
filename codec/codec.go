// Package codec implements a small algebra of composable bidirectional
// codecs: values that describe, in one expression, both how to encode a
// structured value into a bits.Bits sequence and how to decode a bits.Bits
// sequence back into that value. A codec is constructed once and reused
// indefinitely; it carries no mutable state, so two decodes of the same
// input with the same codec always agree.
//
// Primitive codecs read and write bits.Bits directly; structural
// combinators build larger codecs out of smaller ones without inspecting
// payload semantics, the way Then dispatches on an already-decoded value to
// pick the next codec to run.
package codec

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bitcodec/bitcodec/bits"
)

// Codec is a pair of total functions operating on a single payload type T:
// encode turns a T into a bits.Bits sequence, decode turns a bits.Bits
// sequence into a T and the unconsumed tail. Codec values are referentially
// transparent and safe to share across goroutines.
type Codec[T any] struct {
	encode func(T) (bits.Bits, error)
	decode func(bits.Bits) (T, bits.Bits, error)
}

// EncodeError reports a failed encode. Value is the offending input, echoed
// to aid debugging.
type EncodeError[T any] struct {
	Msg   string
	Value T
}

func (e *EncodeError[T]) Error() string {
	return e.Msg
}

// DecodeError reports a failed decode. Remaining is the bits.Bits value at
// the point decoding gave up (the original input for most primitive and
// predicate failures, or a sub-codec's remainder for composite failures).
type DecodeError struct {
	Msg       string
	Remaining bits.Bits
}

func (e *DecodeError) Error() string {
	return e.Msg
}

// raw constructs a Codec from already-safe functions: built-in primitives
// and combinators that never invoke caller-supplied code. No panic recovery
// wrapper is installed, matching the performance note in the design: the
// safety net is reserved for the boundary where user functions actually
// run (see Create, Convert, Then, Ensure, Refute).
func raw[T any](encode func(T) (bits.Bits, error), decode func(bits.Bits) (T, bits.Bits, error)) Codec[T] {
	return Codec[T]{encode: encode, decode: decode}
}

// Create wraps a pair of caller-supplied encode/decode functions into a
// Codec, catching any panic raised by either function and reflecting it as
// an Err result instead of letting it unwind past the library boundary.
// Use Create to build a custom primitive codec; prefer Convert or Then when
// the custom logic is just a reshaping of an existing codec.
func Create[T any](encode func(T) (bits.Bits, error), decode func(bits.Bits) (T, bits.Bits, error)) Codec[T] {
	return raw(
		func(v T) (b bits.Bits, err error) {
			defer func() {
				if r := recover(); r != nil {
					b = bits.Bits{}
					err = &EncodeError[T]{Msg: fmt.Sprintf("Failed to encode: %v", r), Value: v}
				}
			}()
			return encode(v)
		},
		func(b bits.Bits) (v T, rem bits.Bits, err error) {
			defer func() {
				if r := recover(); r != nil {
					var zero T
					v = zero
					rem = b
					err = &DecodeError{Msg: fmt.Sprintf("Failed to decode: %v", r), Remaining: b}
				}
			}()
			return decode(b)
		},
	)
}

// Encode runs c's encode function against v.
func Encode[T any](v T, c Codec[T]) (bits.Bits, error) {
	b, err := c.encode(v)
	if err != nil {
		return bits.Bits{}, errors.WithStack(err)
	}
	return b, nil
}

// Decode runs c's decode function against b, returning the decoded value
// and the unconsumed tail.
func Decode[T any](b bits.Bits, c Codec[T]) (T, bits.Bits, error) {
	v, rem, err := c.decode(b)
	if err != nil {
		return v, rem, errors.WithStack(err)
	}
	return v, rem, nil
}

// safeCall recovers a panic raised by a caller-supplied function and turns
// it into an error, the way Create does for full codecs. Convert and Then
// use it around the user callbacks they accept; Ensure and Refute are built
// on Then.
func safeCall[A, B any](f func(A) (B, error), a A) (b B, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero B
			b = zero
			err = fmt.Errorf("%v", r)
		}
	}()
	return f(a)
}
