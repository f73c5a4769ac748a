// Package bits implements Bits, an immutable, bit-addressable buffer whose
// length need not be a multiple of eight. It is the serialized form shared
// by every codec in the codec package: encode produces a Bits value, decode
// consumes one.
//
// Internally a Bits value is a byte slice plus a starting bit offset (0-7)
// into its first byte and a bit length, so Split is a pointer-arithmetic
// operation and never repacks the underlying bytes. Concat, ToUint, ToInt,
// FromUint and FromInt go through github.com/icza/bitio, a bit-level
// reader/writer well suited to packing sub-byte fields.
package bits

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/icza/bitio"
	"github.com/mewkiz/pkg/errutil"

	"github.com/bitcodec/bitcodec/internal/twos"
)

// Bits is an immutable sequence of bits. The zero value is the empty
// sequence.
type Bits struct {
	data      []byte
	bitOffset int // 0-7; index of the first valid bit within data[0], MSB-first.
	length    int // number of valid bits starting at bitOffset.
}

// Empty is the zero-length Bits value.
func Empty() Bits {
	return Bits{}
}

// RangeError reports an out-of-range bit-width operation: a split past the
// end of the buffer, or a value that does not fit in the declared width.
type RangeError struct {
	Op  string
	Msg string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("bits.%s: %s", e.Op, e.Msg)
}

// Len returns the number of bits in b.
func (b Bits) Len() int {
	return b.length
}

// Split divides b into a prefix of length k and the remaining suffix. It
// fails only when k is negative or exceeds b.Len().
func (b Bits) Split(k int) (prefix, suffix Bits, err error) {
	if k < 0 {
		return Bits{}, Bits{}, &RangeError{Op: "Split", Msg: fmt.Sprintf("negative split point %d", k)}
	}
	if k > b.length {
		return Bits{}, Bits{}, &RangeError{Op: "Split", Msg: fmt.Sprintf("split point %d exceeds length %d", k, b.length)}
	}
	prefix = Bits{data: b.data, bitOffset: b.bitOffset, length: k}
	newOffset := b.bitOffset + k
	suffix = Bits{data: b.data[newOffset/8:], bitOffset: newOffset % 8, length: b.length - k}
	return prefix, suffix, nil
}

// Concat returns the bit sequence consisting of b followed by other.
func (b Bits) Concat(other Bits) Bits {
	if b.length == 0 {
		return other
	}
	if other.length == 0 {
		return b
	}
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	if err := copyBits(bw, b); err != nil {
		panic(errutil.Err(err))
	}
	if err := copyBits(bw, other); err != nil {
		panic(errutil.Err(err))
	}
	if err := bw.Close(); err != nil {
		panic(errutil.Err(err))
	}
	return Bits{data: buf.Bytes(), length: b.length + other.length}
}

// copyBits streams the bits of src, skipping its leading bit offset, into
// bw in chunks no larger than 32 bits at a time.
func copyBits(bw *bitio.Writer, src Bits) error {
	br := bitio.NewReader(bytes.NewReader(src.data))
	if src.bitOffset > 0 {
		if _, err := br.ReadBits(uint8(src.bitOffset)); err != nil {
			return err
		}
	}
	remaining := src.length
	for remaining > 0 {
		n := 32
		if remaining < n {
			n = remaining
		}
		v, err := br.ReadBits(uint8(n))
		if err != nil {
			return err
		}
		if err := bw.WriteBits(v, uint8(n)); err != nil {
			return err
		}
		remaining -= n
	}
	return nil
}

// ToUint interprets the leading k bits of b as an unsigned big-endian
// integer. It fails if k exceeds b.Len() or 64.
func (b Bits) ToUint(k int) (uint64, error) {
	if k < 0 {
		return 0, &RangeError{Op: "ToUint", Msg: fmt.Sprintf("negative width %d", k)}
	}
	if k > b.length {
		return 0, &RangeError{Op: "ToUint", Msg: fmt.Sprintf("width %d exceeds length %d", k, b.length)}
	}
	if k > 64 {
		return 0, &RangeError{Op: "ToUint", Msg: "width exceeds 64 bits"}
	}
	if k == 0 {
		return 0, nil
	}
	br := bitio.NewReader(bytes.NewReader(b.data))
	if b.bitOffset > 0 {
		if _, err := br.ReadBits(uint8(b.bitOffset)); err != nil {
			return 0, errutil.Err(err)
		}
	}
	v, err := br.ReadBits(uint8(k))
	if err != nil {
		return 0, errutil.Err(err)
	}
	return v, nil
}

// ToInt interprets the leading k bits of b as a two's complement big-endian
// signed integer.
func (b Bits) ToInt(k int) (int64, error) {
	x, err := b.ToUint(k)
	if err != nil {
		return 0, err
	}
	return twos.IntN(x, uint(k)), nil
}

// FromUint builds a k-bit Bits value holding the unsigned big-endian
// representation of n. It fails if n does not fit in k bits.
func FromUint(n uint64, k int) (Bits, error) {
	if k < 0 {
		return Bits{}, &RangeError{Op: "FromUint", Msg: fmt.Sprintf("negative width %d", k)}
	}
	if k > 64 {
		return Bits{}, &RangeError{Op: "FromUint", Msg: "width exceeds 64 bits"}
	}
	if k == 0 {
		if n != 0 {
			return Bits{}, &RangeError{Op: "FromUint", Msg: fmt.Sprintf("value %d does not fit in 0 bits", n)}
		}
		return Bits{}, nil
	}
	if k < 64 && n >= uint64(1)<<uint(k) {
		return Bits{}, &RangeError{Op: "FromUint", Msg: fmt.Sprintf("value %d does not fit in %d bits", n, k)}
	}
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	if err := bw.WriteBits(n, uint8(k)); err != nil {
		return Bits{}, errutil.Err(err)
	}
	if err := bw.Close(); err != nil {
		return Bits{}, errutil.Err(err)
	}
	return Bits{data: buf.Bytes(), length: k}, nil
}

// FromInt builds a k-bit Bits value holding the two's complement
// representation of n. It fails if n does not fit in a signed k-bit range.
func FromInt(n int64, k int) (Bits, error) {
	u, ok := twos.UintN(n, uint(k))
	if !ok {
		return Bits{}, &RangeError{Op: "FromInt", Msg: fmt.Sprintf("value %d does not fit in signed %d bits", n, k)}
	}
	return FromUint(u, k)
}

// Zeros returns a k-bit sequence of zero bits.
func Zeros(k int) Bits {
	if k < 0 {
		panic(&RangeError{Op: "Zeros", Msg: fmt.Sprintf("negative width %d", k)})
	}
	return Bits{data: make([]byte, (k+7)/8), length: k}
}

// IsZero reports whether every bit in b is zero.
func (b Bits) IsZero() bool {
	rem := b
	for rem.length > 0 {
		n := 64
		if rem.length < n {
			n = rem.length
		}
		prefix, suffix, err := rem.Split(n)
		if err != nil {
			panic(errutil.Err(err))
		}
		v, err := prefix.ToUint(n)
		if err != nil {
			panic(errutil.Err(err))
		}
		if v != 0 {
			return false
		}
		rem = suffix
	}
	return true
}

// Bytes returns b's contents as a byte-aligned slice, right-padding the
// final byte with zero bits if b.Len() is not a multiple of eight. Use Len
// to recover the exact bit count when that matters.
func (b Bits) Bytes() []byte {
	if b.length == 0 {
		return nil
	}
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	if err := copyBits(bw, b); err != nil {
		panic(errutil.Err(err))
	}
	pad := (8 - b.length%8) % 8
	if pad > 0 {
		if err := bw.WriteBits(0, uint8(pad)); err != nil {
			panic(errutil.Err(err))
		}
	}
	if err := bw.Close(); err != nil {
		panic(errutil.Err(err))
	}
	return buf.Bytes()
}

// FromBytes returns the Bits value consisting of all bits of data, in order,
// most significant bit first within each byte.
func FromBytes(data []byte) Bits {
	if len(data) == 0 {
		return Bits{}
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return Bits{data: cp, length: len(data) * 8}
}

// Equal reports whether b and other hold the same bits.
func (b Bits) Equal(other Bits) bool {
	return equal(b, other)
}

// equal reports whether a and b hold the same bits.
func equal(a, b Bits) bool {
	if a.length != b.length {
		return false
	}
	for a.length > 0 {
		n := 64
		if a.length < n {
			n = a.length
		}
		pa, sa, err := a.Split(n)
		if err != nil {
			panic(errutil.Err(err))
		}
		pb, sb, err := b.Split(n)
		if err != nil {
			panic(errutil.Err(err))
		}
		va, err := pa.ToUint(n)
		if err != nil {
			panic(errutil.Err(err))
		}
		vb, err := pb.ToUint(n)
		if err != nil {
			panic(errutil.Err(err))
		}
		if va != vb {
			return false
		}
		a, b = sa, sb
	}
	return true
}

// String renders b as a binary literal, e.g. <10110>, for debugging and
// test failure messages. It is not used on any encode/decode hot path.
func (b Bits) String() string {
	var sb strings.Builder
	sb.WriteByte('<')
	rem := b
	for rem.length > 0 {
		prefix, suffix, err := rem.Split(1)
		if err != nil {
			panic(errutil.Err(err))
		}
		v, err := prefix.ToUint(1)
		if err != nil {
			panic(errutil.Err(err))
		}
		if v == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
		rem = suffix
	}
	sb.WriteByte('>')
	return sb.String()
}
