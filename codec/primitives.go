package codec

import (
	"fmt"
	"reflect"

	"github.com/bitcodec/bitcodec/bits"
)

// BitsN is the terminal primitive for a fixed-width, opaque chunk of bits:
// encode requires the input to have exactly k bits, decode takes the
// leading k bits of the input.
func BitsN(k int) Codec[bits.Bits] {
	return raw(
		func(v bits.Bits) (bits.Bits, error) {
			if v.Len() != k {
				return bits.Bits{}, &EncodeError[bits.Bits]{
					Msg:   fmt.Sprintf("codec.BitsN(%d): expected %d bits, got %d", k, k, v.Len()),
					Value: v,
				}
			}
			return v, nil
		},
		func(b bits.Bits) (bits.Bits, bits.Bits, error) {
			prefix, suffix, err := b.Split(k)
			if err != nil {
				return bits.Bits{}, b, &DecodeError{
					Msg:       fmt.Sprintf("codec.BitsN(%d): %v", k, err),
					Remaining: b,
				}
			}
			return prefix, suffix, nil
		},
	)
}

// Bit is BitsN(1).
func Bit() Codec[bits.Bits] {
	return BitsN(1)
}

// BytesN is BitsN(8*k).
func BytesN(k int) Codec[bits.Bits] {
	return BitsN(8 * k)
}

// Byte is BytesN(1).
func Byte() Codec[bits.Bits] {
	return BytesN(1)
}

// Uint is the k-bit unsigned big-endian integer codec. It rejects values
// that do not fit in k bits.
func Uint(k int) Codec[uint64] {
	return raw(
		func(v uint64) (bits.Bits, error) {
			b, err := bits.FromUint(v, k)
			if err != nil {
				return bits.Bits{}, &EncodeError[uint64]{Msg: err.Error(), Value: v}
			}
			return b, nil
		},
		func(b bits.Bits) (uint64, bits.Bits, error) {
			prefix, suffix, err := b.Split(k)
			if err != nil {
				return 0, b, &DecodeError{Msg: fmt.Sprintf("codec.Uint(%d): %v", k, err), Remaining: b}
			}
			v, err := prefix.ToUint(k)
			if err != nil {
				return 0, b, &DecodeError{Msg: err.Error(), Remaining: b}
			}
			return v, suffix, nil
		},
	)
}

// Int is the k-bit two's complement signed integer codec. It rejects values
// outside the signed k-bit range.
func Int(k int) Codec[int64] {
	return raw(
		func(v int64) (bits.Bits, error) {
			b, err := bits.FromInt(v, k)
			if err != nil {
				return bits.Bits{}, &EncodeError[int64]{Msg: err.Error(), Value: v}
			}
			return b, nil
		},
		func(b bits.Bits) (int64, bits.Bits, error) {
			prefix, suffix, err := b.Split(k)
			if err != nil {
				return 0, b, &DecodeError{Msg: fmt.Sprintf("codec.Int(%d): %v", k, err), Remaining: b}
			}
			v, err := prefix.ToInt(k)
			if err != nil {
				return 0, b, &DecodeError{Msg: err.Error(), Remaining: b}
			}
			return v, suffix, nil
		},
	)
}

// Bool is the one-bit boolean codec: true encodes as <1>, false as <0>.
func Bool() Codec[bool] {
	return raw(
		func(v bool) (bits.Bits, error) {
			n := uint64(0)
			if v {
				n = 1
			}
			return bits.FromUint(n, 1)
		},
		func(b bits.Bits) (bool, bits.Bits, error) {
			prefix, suffix, err := b.Split(1)
			if err != nil {
				return false, b, &DecodeError{Msg: fmt.Sprintf("codec.Bool: %v", err), Remaining: b}
			}
			v, err := prefix.ToUint(1)
			if err != nil {
				return false, b, &DecodeError{Msg: err.Error(), Remaining: b}
			}
			return v == 1, suffix, nil
		},
	)
}

// Constant accepts only v on encode, emitting the fixed pattern pat; on
// decode it requires the leading len(pat) bits to equal pat exactly,
// yielding v. On any failure the remainder is the original input, never
// the offending value.
func Constant[T any](v T, pat bits.Bits) Codec[T] {
	return raw(
		func(x T) (bits.Bits, error) {
			if !reflect.DeepEqual(x, v) {
				return bits.Bits{}, &EncodeError[T]{Msg: "codec.Constant: value does not match", Value: x}
			}
			return pat, nil
		},
		func(b bits.Bits) (T, bits.Bits, error) {
			var zero T
			prefix, suffix, err := b.Split(pat.Len())
			if err != nil {
				return zero, b, &DecodeError{Msg: fmt.Sprintf("codec.Constant: %v", err), Remaining: b}
			}
			if !prefix.Equal(pat) {
				return zero, b, &DecodeError{Msg: fmt.Sprintf("codec.Constant: expected %v, got %v", pat, prefix), Remaining: b}
			}
			return v, suffix, nil
		},
	)
}

// Value accepts only v on encode, emitting no bits; decode always succeeds
// with v and consumes no bits.
func Value[T any](v T) Codec[T] {
	return raw(
		func(x T) (bits.Bits, error) {
			if !reflect.DeepEqual(x, v) {
				return bits.Bits{}, &EncodeError[T]{Msg: "codec.Value: value does not match", Value: x}
			}
			return bits.Empty(), nil
		},
		func(b bits.Bits) (T, bits.Bits, error) {
			return v, b, nil
		},
	)
}

// Empty is value([]T{}), the terminal codec used by Sequence.
func Empty[T any]() Codec[[]T] {
	return Value([]T{})
}

// Unit is the library's null/unit sentinel value.
type Unit struct{}

// Nothing is value(Unit{}): it accepts only Unit{}, emits no bits, and
// always decodes to Unit{}.
func Nothing() Codec[Unit] {
	return Value(Unit{})
}

// Fail builds a codec that always fails. If decMsg is omitted, encMsg is
// used for both directions.
func Fail[T any](encMsg string, decMsg ...string) Codec[T] {
	dm := encMsg
	if len(decMsg) > 0 {
		dm = decMsg[0]
	}
	return raw(
		func(v T) (bits.Bits, error) {
			return bits.Bits{}, &EncodeError[T]{Msg: encMsg, Value: v}
		},
		func(b bits.Bits) (T, bits.Bits, error) {
			var zero T
			return zero, b, &DecodeError{Msg: dm, Remaining: b}
		},
	)
}

// BitsRemaining never fails. On encode it ignores its argument and emits no
// bits; on decode it yields true if the input is non-empty, false
// otherwise, consuming no bits either way. It is the lookahead flag behind
// List.
func BitsRemaining() Codec[bool] {
	return raw(
		func(bool) (bits.Bits, error) {
			return bits.Empty(), nil
		},
		func(b bits.Bits) (bool, bits.Bits, error) {
			return b.Len() > 0, b, nil
		},
	)
}
