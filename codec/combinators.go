package codec

import (
	"fmt"

	"github.com/bitcodec/bitcodec/bits"
	"github.com/bitcodec/bitcodec/internal/debug"
)

// Pair holds the payload of Combine: the result of pairing codec c1's value
// with codec c2's value.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Combine encodes a pair by encoding each half in order and concatenating;
// it decodes by decoding c1 then c2 over the remainder. The first sub-codec
// to fail short-circuits the other.
func Combine[A, B any](c1 Codec[A], c2 Codec[B]) Codec[Pair[A, B]] {
	return raw(
		func(p Pair[A, B]) (bits.Bits, error) {
			b1, err := c1.encode(p.First)
			if err != nil {
				return bits.Bits{}, err
			}
			b2, err := c2.encode(p.Second)
			if err != nil {
				return bits.Bits{}, err
			}
			return b1.Concat(b2), nil
		},
		func(b bits.Bits) (Pair[A, B], bits.Bits, error) {
			var zero Pair[A, B]
			a, rem, err := c1.decode(b)
			if err != nil {
				return zero, rem, err
			}
			bb, rem2, err := c2.decode(rem)
			if err != nil {
				return zero, rem2, err
			}
			return Pair[A, B]{First: a, Second: bb}, rem2, nil
		},
	)
}

// Fallback tries c1 first, in both directions; if it fails, it tries c2.
// The remainder on success comes from whichever side won; on total
// failure, c2's error is reported.
func Fallback[T any](c1, c2 Codec[T]) Codec[T] {
	return raw(
		func(v T) (bits.Bits, error) {
			b, err := c1.encode(v)
			if err == nil {
				return b, nil
			}
			return c2.encode(v)
		},
		func(b bits.Bits) (T, bits.Bits, error) {
			v, rem, err := c1.decode(b)
			if err == nil {
				return v, rem, nil
			}
			return c2.decode(b)
		},
	)
}

// Choice folds Fallback right-to-left over cs, terminated by a codec that
// always fails. Choice([]) behaves as Fail; Choice([c]) behaves as c.
func Choice[T any](cs []Codec[T]) Codec[T] {
	result := Fail[T]("codec.Choice: none of the choices worked")
	for i := len(cs) - 1; i >= 0; i-- {
		result = Fallback(cs[i], result)
	}
	return result
}

// Optional wraps c so decode failure yields an absent value instead of an
// error.
type Optional[T any] struct {
	Valid bool
	Value T
}

// OptionalOf is fallback(c, nothing): on decode, if c fails, the result is
// an absent Optional rather than an error.
func OptionalOf[T any](c Codec[T]) Codec[Optional[T]] {
	wrapped := Convert(c,
		func(v T) (Optional[T], error) { return Optional[T]{Valid: true, Value: v}, nil },
		func(o Optional[T]) (T, error) {
			var zero T
			if !o.Valid {
				return zero, fmt.Errorf("codec.OptionalOf: cannot encode an absent value through the wrapped codec")
			}
			return o.Value, nil
		},
	)
	return Fallback(wrapped, Value(Optional[T]{}))
}

// Peek encodes as empty bits regardless of its argument, and decodes by
// running c's decode but returning the original input as the remainder, so
// no bits are actually consumed. It is used to look ahead without
// committing.
func Peek[T any](c Codec[T]) Codec[T] {
	return raw(
		func(T) (bits.Bits, error) {
			return bits.Empty(), nil
		},
		func(b bits.Bits) (T, bits.Bits, error) {
			v, _, err := c.decode(b)
			if err != nil {
				var zero T
				return zero, b, err
			}
			return v, b, nil
		},
	)
}

// Convert maps codec c's payload type A to B through a pair of caller
// functions. to and from must be mutual inverses on the domain the caller
// actually uses; the library enforces nothing beyond catching panics they
// raise.
func Convert[A, B any](c Codec[A], to func(A) (B, error), from func(B) (A, error)) Codec[B] {
	return raw(
		func(v B) (bits.Bits, error) {
			a, err := safeCall(from, v)
			if err != nil {
				return bits.Bits{}, &EncodeError[B]{Msg: fmt.Sprintf("codec.Convert: %v", err), Value: v}
			}
			return c.encode(a)
		},
		func(b bits.Bits) (B, bits.Bits, error) {
			var zero B
			a, rem, err := c.decode(b)
			if err != nil {
				return zero, rem, err
			}
			v, err := safeCall(to, a)
			if err != nil {
				return zero, rem, &DecodeError{Msg: fmt.Sprintf("codec.Convert: %v", err), Remaining: rem}
			}
			return v, rem, nil
		},
	)
}

// Then is the monadic bind of the algebra: decode c to get a, then decode
// the remainder with whatever codec next(a) produces. Encoding a final
// value v first recovers the prefix value back(v), encodes it with c, then
// encodes v with next(back(v)) and concatenates the two outputs. back(v)
// must recover a value that, when re-encoded, reproduces the bits c would
// have produced during decode, or the round-trip law breaks for the
// resulting codec. Then underlies length-prefixed and tag-dispatched
// formats.
func Then[A, B any](c Codec[A], next func(A) Codec[B], back func(B) (A, error)) Codec[B] {
	return raw(
		func(v B) (bits.Bits, error) {
			a, err := safeCall(back, v)
			if err != nil {
				return bits.Bits{}, &EncodeError[B]{Msg: fmt.Sprintf("codec.Then: %v", err), Value: v}
			}
			b1, err := c.encode(a)
			if err != nil {
				return bits.Bits{}, err
			}
			nc, err := safeCallCodec(next, a)
			if err != nil {
				return bits.Bits{}, &EncodeError[B]{Msg: fmt.Sprintf("codec.Then: %v", err), Value: v}
			}
			b2, err := nc.encode(v)
			if err != nil {
				return bits.Bits{}, err
			}
			debug.Printf("codec.Then: encoded prefix %v, suffix %v", b1, b2)
			return b1.Concat(b2), nil
		},
		func(b bits.Bits) (B, bits.Bits, error) {
			var zero B
			a, rem, err := c.decode(b)
			if err != nil {
				return zero, rem, err
			}
			nc, err := safeCallCodec(next, a)
			if err != nil {
				return zero, rem, &DecodeError{Msg: fmt.Sprintf("codec.Then: %v", err), Remaining: rem}
			}
			debug.Printf("codec.Then: dispatched on %v, remainder %v", a, rem)
			return nc.decode(rem)
		},
	)
}

// safeCallCodec recovers a panic raised by a next-codec selector function,
// the way safeCall does for value-producing callbacks.
func safeCallCodec[A, B any](next func(A) Codec[B], a A) (c Codec[B], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return next(a), nil
}

// Ensure replaces c with a codec that, after decoding (or before encoding),
// requires pred to hold, failing with msg otherwise.
func Ensure[T any](c Codec[T], pred func(T) bool, msg string) Codec[T] {
	return Then(c,
		func(a T) Codec[T] {
			if pred(a) {
				return Value(a)
			}
			return Fail[T](msg)
		},
		func(v T) (T, error) { return v, nil },
	)
}

// Refute is Ensure with the predicate negated.
func Refute[T any](c Codec[T], pred func(T) bool, msg string) Codec[T] {
	return Ensure(c, func(v T) bool { return !pred(v) }, msg)
}

// Done wraps c so that decode only succeeds if no bits remain afterward.
// Encode is unchanged; Done only adds a decode-side guard.
func Done[T any](c Codec[T]) Codec[T] {
	return raw(
		func(v T) (bits.Bits, error) {
			return c.encode(v)
		},
		func(b bits.Bits) (T, bits.Bits, error) {
			v, rem, err := c.decode(b)
			if err != nil {
				return v, rem, err
			}
			if rem.Len() > 0 {
				var zero T
				return zero, rem, &DecodeError{Msg: "There was more to parse", Remaining: rem}
			}
			return v, rem, nil
		},
	)
}
