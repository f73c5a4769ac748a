package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/JoshVarga/blast"

	"github.com/bitcodec/bitcodec/bits"
)

// Compressed wraps c so that encode runs c and then compresses the
// resulting bits, and decode decompresses its input before running c's
// decode. Compression runs through github.com/JoshVarga/blast, the one
// library in the retrieval pack that implements a symmetric compress
// (implode) / decompress (explode) pair; see DESIGN.md for why
// compress/flate was used nowhere else instead.
//
// Compressed requires c's encoded output to be byte-aligned (a multiple of
// 8 bits); pair it with Pad if the wrapped codec is not naturally so. The
// decompressed stream is handed to c.decode in full; any bits of it that c
// does not consume are discarded; compose with Done(c) if that matters to
// the caller.
func Compressed[T any](c Codec[T]) Codec[T] {
	return raw(
		func(v T) (bits.Bits, error) {
			b, err := c.encode(v)
			if err != nil {
				return bits.Bits{}, err
			}
			if b.Len()%8 != 0 {
				return bits.Bits{}, &EncodeError[T]{
					Msg:   fmt.Sprintf("codec.Compressed: encoded output is %d bits, not byte-aligned", b.Len()),
					Value: v,
				}
			}
			var out bytes.Buffer
			w := blast.NewWriter(&out, blast.Binary, blast.DictionarySize4096)
			if _, err := w.Write(b.Bytes()); err != nil {
				return bits.Bits{}, &EncodeError[T]{Msg: fmt.Sprintf("codec.Compressed: %v", err), Value: v}
			}
			if err := w.Close(); err != nil {
				return bits.Bits{}, &EncodeError[T]{Msg: fmt.Sprintf("codec.Compressed: %v", err), Value: v}
			}
			return bits.FromBytes(out.Bytes()), nil
		},
		func(b bits.Bits) (T, bits.Bits, error) {
			var zero T
			if b.Len()%8 != 0 {
				return zero, b, &DecodeError{
					Msg:       fmt.Sprintf("codec.Compressed: input is %d bits, not byte-aligned", b.Len()),
					Remaining: b,
				}
			}
			br := bytes.NewReader(b.Bytes())
			r, err := blast.NewReader(br)
			if err != nil {
				return zero, b, &DecodeError{Msg: fmt.Sprintf("codec.Compressed: %v", err), Remaining: b}
			}
			inflated, err := io.ReadAll(r)
			r.Close()
			if err != nil {
				return zero, b, &DecodeError{Msg: fmt.Sprintf("codec.Compressed: %v", err), Remaining: b}
			}
			trailing := make([]byte, br.Len())
			if _, err := io.ReadFull(br, trailing); err != nil {
				return zero, b, &DecodeError{Msg: fmt.Sprintf("codec.Compressed: %v", err), Remaining: b}
			}
			v, _, err := c.decode(bits.FromBytes(inflated))
			if err != nil {
				return zero, b, err
			}
			return v, bits.FromBytes(trailing), nil
		},
	)
}
