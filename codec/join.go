package codec

import (
	"fmt"

	"github.com/bitcodec/bitcodec/bits"
	"github.com/bitcodec/bitcodec/internal/debug"
)

// Join converts a codec that yields a list of Bits into one that yields a
// single concatenated Bits value. Decoding concatenates every element of
// the list in order; encoding splits the whole buffer back into
// groupSize-bit groups, failing if its length is not a multiple of
// groupSize.
func Join(listC Codec[[]bits.Bits], groupSize int) Codec[bits.Bits] {
	return Convert(listC,
		func(groups []bits.Bits) (bits.Bits, error) {
			whole := bits.Empty()
			for _, g := range groups {
				whole = whole.Concat(g)
			}
			return whole, nil
		},
		func(whole bits.Bits) ([]bits.Bits, error) {
			if groupSize <= 0 {
				return nil, fmt.Errorf("codec.Join: group size must be positive, got %d", groupSize)
			}
			if whole.Len()%groupSize != 0 {
				return nil, fmt.Errorf("codec.Join: length %d is not a multiple of group size %d", whole.Len(), groupSize)
			}
			var groups []bits.Bits
			rem := whole
			for rem.Len() > 0 {
				g, r, err := rem.Split(groupSize)
				if err != nil {
					return nil, err
				}
				groups = append(groups, g)
				rem = r
			}
			debug.Printf("codec.Join: split %d bits into %d groups of %d", whole.Len(), len(groups), groupSize)
			return groups, nil
		},
	)
}
