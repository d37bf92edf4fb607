package rawio

import (
	"bytes"
	"testing"
)

func TestPushOrderRestoresOnDefer(t *testing.T) {
	s := New(bytes.NewReader(make([]byte, 16)), 16, LittleEndian)

	func() {
		pop := s.PushOrder(BigEndian)
		defer pop()
		if s.Order() != BigEndian {
			t.Fatalf("expected BigEndian inside scope, got %v", s.Order())
		}
	}()

	if s.Order() != LittleEndian {
		t.Fatalf("expected order restored to LittleEndian, got %v", s.Order())
	}
}

func TestPushOrderRestoresOnErrorPath(t *testing.T) {
	s := New(bytes.NewReader(make([]byte, 16)), 16, LittleEndian)

	parse := func() (err error) {
		pop := s.PushOrder(BigEndian)
		defer pop()
		return ErrShortRead
	}

	if err := parse(); err == nil {
		t.Fatal("expected error")
	}
	if s.Order() != LittleEndian {
		t.Fatalf("order must be restored even on error exit, got %v", s.Order())
	}
}

func TestU16U32RoundTrip(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	s := New(bytes.NewReader(data), int64(len(data)), LittleEndian)
	v, err := s.U16()
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x0201 {
		t.Fatalf("little-endian u16: got %#x", v)
	}

	s2 := New(bytes.NewReader(data), int64(len(data)), BigEndian)
	v32, err := s2.U32()
	if err != nil {
		t.Fatal(err)
	}
	if v32 != 0x01020304 {
		t.Fatalf("big-endian u32: got %#x", v32)
	}
}

func TestShortReadInvokesCorruptCallback(t *testing.T) {
	s := New(bytes.NewReader([]byte{1, 2}), 2, LittleEndian)
	var gotOffset int64 = -1
	s.OnCorrupt(func(offset int64, detail string) { gotOffset = offset })

	buf := make([]byte, 8)
	_, err := s.ReadAt(buf, 0)
	if err == nil {
		t.Fatal("expected short read error")
	}
	if gotOffset != 0 {
		t.Fatalf("expected corrupt callback at offset 0, got %d", gotOffset)
	}
}
