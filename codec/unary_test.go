package codec

import (
	"testing"

	"github.com/bitcodec/bitcodec/bits"
)

func TestUnaryRoundTrip(t *testing.T) {
	c := Unary()
	for _, v := range []uint64{0, 1, 2, 3, 4, 17} {
		b, err := Encode(v, c)
		if err != nil {
			t.Fatalf("Encode(%d): %v", v, err)
		}
		if b.Len() != int(v)+1 {
			t.Errorf("Encode(%d) length = %d, want %d", v, b.Len(), v+1)
		}
		got, rem, err := Decode(b, c)
		if err != nil || got != v || rem.Len() != 0 {
			t.Errorf("got %d rem %v err %v, want %d", got, rem, err, v)
		}
	}
}

func TestUnaryGolden(t *testing.T) {
	tests := []struct {
		v    uint64
		want string
	}{
		{0, "<1>"},
		{1, "<01>"},
		{2, "<001>"},
		{3, "<0001>"},
	}
	for _, test := range tests {
		b, err := Encode(test.v, Unary())
		if err != nil {
			t.Fatalf("Encode(%d): %v", test.v, err)
		}
		if got := b.String(); got != test.want {
			t.Errorf("Encode(%d) = %s, want %s", test.v, got, test.want)
		}
	}
}

func TestUnaryInsufficientBits(t *testing.T) {
	if _, _, err := Decode(bits.Zeros(3), Unary()); err == nil {
		t.Error("decoding all-zero bits with no terminating one should fail")
	}
}
