package codec

import (
	"fmt"

	"github.com/bitcodec/bitcodec/bits"
)

// Pad appends k zero bits after c's encoded output, and on decode requires
// the k bits following c's consumption to be all zero, discarding them.
// This resolves the open question in the design notes in favor of a strict
// check (interpretation (b)): the alternative of prepending zero bits to
// the decode input would silently change the arithmetic value decoded, and
// so is rejected.
func Pad[T any](c Codec[T], k int) Codec[T] {
	return raw(
		func(v T) (bits.Bits, error) {
			b, err := c.encode(v)
			if err != nil {
				return bits.Bits{}, err
			}
			return b.Concat(bits.Zeros(k)), nil
		},
		func(b bits.Bits) (T, bits.Bits, error) {
			v, rem, err := c.decode(b)
			if err != nil {
				return v, rem, err
			}
			padBits, rem2, err := rem.Split(k)
			if err != nil {
				var zero T
				return zero, rem, &DecodeError{Msg: fmt.Sprintf("codec.Pad: %v", err), Remaining: rem}
			}
			if !padBits.IsZero() {
				var zero T
				return zero, rem, &DecodeError{Msg: "codec.Pad: padding bits are not zero", Remaining: rem}
			}
			return v, rem2, nil
		},
	)
}
