package codec

import (
	"github.com/bitcodec/bitcodec/bits"
)

// Unary is the unary-coded non-negative integer codec: a value x is
// represented by x zero bits followed by a one bit.
//
// Examples of unary coded binary on the left and decoded decimal on the
// right:
//
//	1       => 0
//	01      => 1
//	001     => 2
//	0001    => 3
//	00001   => 4
func Unary() Codec[uint64] {
	return raw(
		func(x uint64) (bits.Bits, error) {
			out := bits.Empty()
			for i := uint64(0); i < x; i++ {
				out = out.Concat(bits.Zeros(1))
			}
			one, err := bits.FromUint(1, 1)
			if err != nil {
				return bits.Bits{}, err
			}
			return out.Concat(one), nil
		},
		func(b bits.Bits) (uint64, bits.Bits, error) {
			var x uint64
			rem := b
			for {
				bit, suffix, err := rem.Split(1)
				if err != nil {
					return 0, b, &DecodeError{Msg: "codec.Unary: " + err.Error(), Remaining: b}
				}
				v, err := bit.ToUint(1)
				if err != nil {
					return 0, b, &DecodeError{Msg: err.Error(), Remaining: b}
				}
				rem = suffix
				if v == 1 {
					return x, rem, nil
				}
				x++
			}
		},
	)
}
