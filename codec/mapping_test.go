package codec

import (
	"testing"

	"github.com/bitcodec/bitcodec/bits"
)

type suit int

const (
	clubs suit = iota
	diamonds
	hearts
	spades
)

func TestMappingRoundTrip(t *testing.T) {
	c := Mapping(Uint(2), map[uint64]suit{
		0: clubs,
		1: diamonds,
		2: hearts,
		3: spades,
	})
	for _, want := range map[uint64]suit{0: clubs, 1: diamonds, 2: hearts, 3: spades} {
		b, err := Encode(want, c)
		if err != nil {
			t.Fatalf("Encode(%v): %v", want, err)
		}
		got, rem, err := Decode(b, c)
		if err != nil || got != want || rem.Len() != 0 {
			t.Errorf("got %v rem %v err %v, want %v", got, rem, err, want)
		}
	}
}

func TestMappingRejectsNotInjective(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("constructing a non-injective mapping should panic")
		}
	}()
	Mapping(Uint(2), map[uint64]suit{0: clubs, 1: clubs})
}

func TestMappingDecodeUnknownKey(t *testing.T) {
	c := Mapping(Uint(2), map[uint64]suit{0: clubs})
	b, _ := bits.FromUint(1, 2)
	if _, _, err := Decode(b, c); err == nil {
		t.Error("decoding a key absent from the mapping should fail")
	}
}
