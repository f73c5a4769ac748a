package codec

import (
	"testing"

	"github.com/bitcodec/bitcodec/bits"
)

func TestJoinRoundTrip(t *testing.T) {
	c := Join(ListOf(3, BitsN(4)), 4)
	a, _ := bits.FromUint(0b0001, 4)
	b2, _ := bits.FromUint(0b0010, 4)
	c3, _ := bits.FromUint(0b0011, 4)
	want := a.Concat(b2).Concat(c3)

	encoded, err := Encode(want, c)
	if err != nil {
		t.Fatal(err)
	}
	if !encoded.Equal(want) {
		t.Errorf("encode = %v, want %v", encoded, want)
	}

	decoded, rem, err := Decode(encoded, c)
	if err != nil || rem.Len() != 0 {
		t.Fatal(err)
	}
	if !decoded.Equal(want) {
		t.Errorf("decode = %v, want %v", decoded, want)
	}
}

func TestJoinFailsOnNonDivisibleLength(t *testing.T) {
	c := Join(ListOf(1, BitsN(12)), 8)
	v, _ := bits.FromUint(0, 12)
	if _, err := Encode(v, c); err == nil {
		t.Error("encoding a buffer whose length is not a multiple of the group size should fail")
	}
}
