package codec

import (
	"fmt"

	"github.com/bitcodec/bitcodec/bits"
)

// Mapping is a dictionary-based Convert: it requires m to be injective and
// precomputes the inverse once, at construction time, rather than on every
// call. Decode fails if the decoded key is absent from m; encode fails if
// the value is absent from m's codomain.
func Mapping[K comparable, V comparable](c Codec[K], m map[K]V) Codec[V] {
	inv := make(map[V]K, len(m))
	for k, v := range m {
		if prior, exists := inv[v]; exists {
			panic(fmt.Sprintf("codec.Mapping: not injective; keys %v and %v both map to %v", prior, k, v))
		}
		inv[v] = k
	}
	return raw(
		func(v V) (b bits.Bits, err error) {
			k, ok := inv[v]
			if !ok {
				var zero bits.Bits
				return zero, &EncodeError[V]{Msg: fmt.Sprintf("codec.Mapping: value %v not in codomain", v), Value: v}
			}
			return c.encode(k)
		},
		func(b bits.Bits) (V, bits.Bits, error) {
			var zero V
			k, rem, err := c.decode(b)
			if err != nil {
				return zero, rem, err
			}
			v, ok := m[k]
			if !ok {
				return zero, rem, &DecodeError{Msg: fmt.Sprintf("codec.Mapping: key %v not in mapping", k), Remaining: rem}
			}
			return v, rem, nil
		},
	)
}
