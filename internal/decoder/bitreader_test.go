package decoder

import "testing"

func TestBitsReadsMSBFirst(t *testing.T) {
	r := NewBitReader([]byte{0b10110010})
	v, err := r.Bits(4)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0b1011 {
		t.Fatalf("got %04b, want 1011", v)
	}
	v2, err := r.Bits(4)
	if err != nil {
		t.Fatal(err)
	}
	if v2 != 0b0010 {
		t.Fatalf("got %04b, want 0010", v2)
	}
}

func TestBitsSpansByteBoundary(t *testing.T) {
	r := NewBitReader([]byte{0xff, 0x00})
	v, err := r.Bits(12)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xff0 {
		t.Fatalf("got %x, want ff0", v)
	}
}

func TestPeekBitsDoesNotConsume(t *testing.T) {
	r := NewBitReader([]byte{0xab, 0xcd})
	peeked, err := r.PeekBits(8)
	if err != nil {
		t.Fatal(err)
	}
	if peeked != 0xab {
		t.Fatalf("peek got %x, want ab", peeked)
	}
	v, err := r.Bits(8)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xab {
		t.Fatalf("got %x, want ab (peek should not have consumed)", v)
	}
}

func TestBitsReturnsErrorPastEnd(t *testing.T) {
	r := NewBitReader([]byte{0x01})
	if _, err := r.Bits(24); err == nil {
		t.Fatal("expected error reading past end of data")
	}
}

func TestAlignDiscardsPartialByte(t *testing.T) {
	r := NewBitReader([]byte{0xff, 0xaa})
	if _, err := r.Bits(4); err != nil {
		t.Fatal(err)
	}
	r.Align()
	v, err := r.Bits(8)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xaa {
		t.Fatalf("got %x, want aa after align discards leftover bits of byte 0", v)
	}
}
