package codec

import (
	"reflect"
	"testing"

	"github.com/bitcodec/bitcodec/bits"
)

func TestConsRoundTrip(t *testing.T) {
	c := Cons(Uint(8), List(Uint(8)))
	v := []uint64{1, 2, 3}
	b, err := Encode(v, c)
	if err != nil {
		t.Fatal(err)
	}
	got, rem, err := Decode(b, c)
	if err != nil || !reflect.DeepEqual(got, v) || rem.Len() != 0 {
		t.Errorf("got %v rem %v err %v, want %v", got, rem, err, v)
	}
}

func TestConsRejectsEmptyOnEncode(t *testing.T) {
	c := Cons(Uint(8), List(Uint(8)))
	if _, err := Encode([]uint64{}, c); err == nil {
		t.Error("encoding an empty list through cons should fail")
	}
}

func TestAppendRoundTrip(t *testing.T) {
	c := Append(ListOf(2, Uint(8)), Uint(8))
	v := []uint64{1, 2, 3}
	b, err := Encode(v, c)
	if err != nil {
		t.Fatal(err)
	}
	got, rem, err := Decode(b, c)
	if err != nil || !reflect.DeepEqual(got, v) || rem.Len() != 0 {
		t.Errorf("got %v rem %v err %v, want %v", got, rem, err, v)
	}
}

// Scenario 2 from the design notes' literal end-to-end examples.
func TestSequence(t *testing.T) {
	c := Sequence([]Codec[uint64]{Uint(8), Uint(8), Uint(8)})
	v := []uint64{16, 255, 171}
	b, err := Encode(v, c)
	if err != nil {
		t.Fatal(err)
	}
	want := bits.FromBytes([]byte{0x10, 0xFF, 0xAB})
	if !b.Equal(want) {
		t.Errorf("encode = %v, want %v", b, want)
	}
	got, rem, err := Decode(b, c)
	if err != nil || !reflect.DeepEqual(got, v) || rem.Len() != 0 {
		t.Errorf("got %v rem %v err %v, want %v", got, rem, err, v)
	}
}

func TestSequenceAgreesWithListOf(t *testing.T) {
	elem := Uint(8)
	seq := Sequence([]Codec[uint64]{elem, elem, elem})
	lst := ListOf(3, elem)
	v := []uint64{9, 8, 7}

	b1, err := Encode(v, seq)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := Encode(v, lst)
	if err != nil {
		t.Fatal(err)
	}
	if !b1.Equal(b2) {
		t.Errorf("sequence and list_of with identical elements should agree: %v != %v", b1, b2)
	}
}

func TestListOfZeroIsEmpty(t *testing.T) {
	c := ListOf[uint64](0, Uint(8))
	b, err := Encode([]uint64{}, c)
	if err != nil || b.Len() != 0 {
		t.Errorf("list_of(0, c) should encode as no bits, got %v err %v", b, err)
	}
	got, rem, err := Decode(bits.Zeros(8), c)
	if err != nil || len(got) != 0 || rem.Len() != 8 {
		t.Errorf("list_of(0, c) should decode to an empty list consuming nothing: got %v rem %v err %v", got, rem, err)
	}
}

// Scenario 5 from the design notes' literal end-to-end examples.
func TestTakeWhile(t *testing.T) {
	c := TakeWhile(Bool(), Uint(8))
	// <1, 7, 1, 8, 0> packed as bits: flag(1) value(7 as 8 bits) flag(1) value(8 as 8 bits) flag(0)
	flagTrue, _ := bits.FromUint(1, 1)
	seven, _ := bits.FromUint(7, 8)
	eight, _ := bits.FromUint(8, 8)
	flagFalse, _ := bits.FromUint(0, 1)
	in := flagTrue.Concat(seven).Concat(flagTrue).Concat(eight).Concat(flagFalse)

	got, rem, err := Decode(in, c)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []uint64{7, 8}) {
		t.Errorf("got %v, want [7 8]", got)
	}
	if rem.Len() != 0 {
		t.Errorf("remainder should be empty, got %v", rem)
	}

	// The inverse must reproduce the original bit sequence exactly.
	out, err := Encode(got, c)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Equal(in) {
		t.Errorf("re-encoding should reproduce the original bits; got %v, want %v", out, in)
	}
}

func TestTakeWhileConstTrueLaws(t *testing.T) {
	alwaysTrue := Value(true)
	c := TakeWhile(alwaysTrue, Uint(8))
	got, _, err := Decode(bits.Empty(), c)
	if err != nil || len(got) != 0 {
		t.Errorf("take_while(const_true, c) on empty input should yield []: got %v err %v", got, err)
	}
}

func TestListGreedyDecode(t *testing.T) {
	c := List(Byte())
	in := bits.FromBytes([]byte{1, 2, 3, 4, 5})
	got, rem, err := Decode(in, c)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 || rem.Len() != 0 {
		t.Errorf("list(byte()) should consume all input, got %d elements rem %v", len(got), rem)
	}
}

func TestNonEmptyList(t *testing.T) {
	c := NonEmptyList(Byte())
	if _, err := Encode([]bits.Bits{}, c); err == nil {
		t.Error("non_empty_list should reject an empty list on encode")
	}
	in := bits.FromBytes([]byte{7})
	got, rem, err := Decode(in, c)
	if err != nil || len(got) != 1 || rem.Len() != 0 {
		t.Errorf("got %v rem %v err %v", got, rem, err)
	}
}

// Scenario 3 from the design notes' literal end-to-end examples.
func TestLengthPrefixed(t *testing.T) {
	c := LengthPrefixed(Uint(8), Uint(8))
	in := bits.FromBytes([]byte{4, 1, 2, 3, 4})
	got, rem, err := Decode(in, c)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []uint64{1, 2, 3, 4}) || rem.Len() != 0 {
		t.Errorf("got %v rem %v err %v, want [1 2 3 4]", got, rem, err)
	}
	b, err := Encode(got, c)
	if err != nil {
		t.Fatal(err)
	}
	if !b.Equal(in) {
		t.Errorf("re-encode = %v, want %v", b, in)
	}
}

func TestMapList(t *testing.T) {
	c := MapList(List(Uint(8)),
		func(v uint64) (string, error) { return string(rune('a' + v)), nil },
		func(s string) (uint64, error) { return uint64(s[0] - 'a'), nil },
	)
	in := bits.FromBytes([]byte{0, 1, 2})
	got, rem, err := Decode(in, c)
	if err != nil || rem.Len() != 0 {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("got %v, want [a b c]", got)
	}
}

func TestReverse(t *testing.T) {
	c := Reverse(ListOf(3, Uint(8)))
	v := []uint64{1, 2, 3}
	b, err := Encode(v, c)
	if err != nil {
		t.Fatal(err)
	}
	want := bits.FromBytes([]byte{3, 2, 1})
	if !b.Equal(want) {
		t.Errorf("reverse should emit elements back to front: %v != %v", b, want)
	}
	got, _, err := Decode(b, c)
	if err != nil || !reflect.DeepEqual(got, v) {
		t.Errorf("got %v, want %v", got, v)
	}
}
