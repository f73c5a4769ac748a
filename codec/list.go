package codec

import (
	"fmt"

	"github.com/bitcodec/bitcodec/bits"
	"github.com/bitcodec/bitcodec/internal/debug"
)

// Cons decomposes a non-empty list codec into a head element and a tail
// list: combine(headC, tailC) converted to and from a list value. Decoding
// always yields at least the head element, and fails if headC or tailC
// fails; encoding an empty list fails at the converter.
func Cons[T any](headC Codec[T], tailC Codec[[]T]) Codec[[]T] {
	pair := Combine(headC, tailC)
	return Convert(pair,
		func(p Pair[T, []T]) ([]T, error) {
			out := make([]T, 0, len(p.Second)+1)
			out = append(out, p.First)
			out = append(out, p.Second...)
			return out, nil
		},
		func(lst []T) (Pair[T, []T], error) {
			var zero Pair[T, []T]
			if len(lst) == 0 {
				return zero, fmt.Errorf("codec.Cons: cannot encode an empty list")
			}
			return Pair[T, []T]{First: lst[0], Second: lst[1:]}, nil
		},
	)
}

// Append decomposes a list codec into a leading list and a trailing
// element, the dual of Cons on the right end.
func Append[T any](listC Codec[[]T], elemC Codec[T]) Codec[[]T] {
	pair := Combine(listC, elemC)
	return Convert(pair,
		func(p Pair[[]T, T]) ([]T, error) {
			out := make([]T, 0, len(p.First)+1)
			out = append(out, p.First...)
			out = append(out, p.Second)
			return out, nil
		},
		func(lst []T) (Pair[[]T, T], error) {
			var zero Pair[[]T, T]
			if len(lst) == 0 {
				return zero, fmt.Errorf("codec.Append: cannot encode an empty list")
			}
			n := len(lst)
			return Pair[[]T, T]{First: lst[:n-1], Second: lst[n-1]}, nil
		},
	)
}

// Sequence folds cs right-to-left with Cons, terminated by Empty, yielding
// a codec for a list of exactly len(cs) elements.
func Sequence[T any](cs []Codec[T]) Codec[[]T] {
	acc := Empty[T]()
	for i := len(cs) - 1; i >= 0; i-- {
		acc = Cons(cs[i], acc)
	}
	return acc
}

// ListOf is Sequence(replicate(n, c)): exactly n elements of c.
func ListOf[T any](n int, c Codec[T]) Codec[[]T] {
	if n == 0 {
		return Empty[T]()
	}
	cs := make([]Codec[T], n)
	for i := range cs {
		cs[i] = c
	}
	return Sequence(cs)
}

// not inverts a boolean codec: used to build TakeUntil from TakeWhile.
func not(c Codec[bool]) Codec[bool] {
	return Convert(c,
		func(v bool) (bool, error) { return !v, nil },
		func(v bool) (bool, error) { return !v, nil },
	)
}

// TakeWhile repeatedly decodes boolC; a true flag is followed by one
// elemC-decoded element and the loop continues, a false flag ends the list.
// A true flag read from an already empty input also ends the list, so a
// constant-true flag decodes elements until the input is exhausted.
// Encode emits, for every element, a true flag then the element, and
// finally a false flag. The loop is iterative, not recursive, so it does
// not exhaust the call stack on long lists.
func TakeWhile[T any](boolC Codec[bool], elemC Codec[T]) Codec[[]T] {
	return raw(
		func(lst []T) (bits.Bits, error) {
			out := bits.Empty()
			for _, el := range lst {
				flagBits, err := boolC.encode(true)
				if err != nil {
					return bits.Bits{}, err
				}
				elBits, err := elemC.encode(el)
				if err != nil {
					return bits.Bits{}, err
				}
				out = out.Concat(flagBits).Concat(elBits)
			}
			stopBits, err := boolC.encode(false)
			if err != nil {
				return bits.Bits{}, err
			}
			return out.Concat(stopBits), nil
		},
		func(b bits.Bits) ([]T, bits.Bits, error) {
			var result []T
			rem := b
			for {
				flag, r1, err := boolC.decode(rem)
				if err != nil {
					return nil, rem, err
				}
				if flag && rem.Len() == 0 {
					break
				}
				rem = r1
				if !flag {
					break
				}
				el, r2, err := elemC.decode(rem)
				if err != nil {
					return nil, rem, err
				}
				rem = r2
				result = append(result, el)
				debug.Printf("codec.TakeWhile: accepted element %d", len(result))
			}
			return result, rem, nil
		},
	)
}

// TakeUntil is TakeWhile with the flag codec's sense inverted: it keeps
// reading elements until boolC reports true.
func TakeUntil[T any](boolC Codec[bool], elemC Codec[T]) Codec[[]T] {
	return TakeWhile(not(boolC), elemC)
}

// List is TakeWhile(BitsRemaining(), c): it greedily decodes elements until
// the input is exhausted.
func List[T any](c Codec[T]) Codec[[]T] {
	return TakeWhile(BitsRemaining(), c)
}

// NonEmptyList is Cons(c, List(c)): at least one element, followed by zero
// or more.
func NonEmptyList[T any](c Codec[T]) Codec[[]T] {
	return Cons(c, List(c))
}

// LengthPrefixed reads a count with lenC, then exactly that many elements
// with elemC; it is Then(lenC, n -> ListOf(n, elemC), list -> length(list)).
func LengthPrefixed[T any](lenC Codec[uint64], elemC Codec[T]) Codec[[]T] {
	return Then[uint64, []T](lenC,
		func(n uint64) Codec[[]T] { return ListOf(int(n), elemC) },
		func(lst []T) (uint64, error) { return uint64(len(lst)), nil },
	)
}

// MapList lifts a pair of element-level conversions to list level: it is
// Convert(c, elementwise f, elementwise g).
func MapList[A, B any](c Codec[[]A], f func(A) (B, error), g func(B) (A, error)) Codec[[]B] {
	return Convert(c,
		func(lst []A) ([]B, error) {
			out := make([]B, len(lst))
			for i, v := range lst {
				w, err := f(v)
				if err != nil {
					return nil, err
				}
				out[i] = w
			}
			return out, nil
		},
		func(lst []B) ([]A, error) {
			out := make([]A, len(lst))
			for i, v := range lst {
				w, err := g(v)
				if err != nil {
					return nil, err
				}
				out[i] = w
			}
			return out, nil
		},
	)
}

// Reverse is Convert(c, reverse, reverse): reversing a list is its own
// inverse.
func Reverse[T any](c Codec[[]T]) Codec[[]T] {
	return Convert(c,
		func(lst []T) ([]T, error) { return reversed(lst), nil },
		func(lst []T) ([]T, error) { return reversed(lst), nil },
	)
}

func reversed[T any](lst []T) []T {
	out := make([]T, len(lst))
	for i, v := range lst {
		out[len(lst)-1-i] = v
	}
	return out
}
