package container

import (
	"bytes"
	"testing"

	"github.com/tacusci/rawforge/internal/rawio"
)

// buildTIFF assembles a minimal little-endian single-IFD TIFF with one
// ASCII "Model" tag, inline-stored where possible.
func buildTIFF(t *testing.T) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	buf.WriteString("II")
	buf.Write([]byte{42, 0})
	buf.Write([]byte{8, 0, 0, 0}) // IFD0 at offset 8

	// IFD0: 1 entry (Model, ASCII, "AB\x00", 3 bytes so it fits inline
	// per the TIFF "count x sizeof(type) <= 4" rule), then next-IFD
	// offset 0. A longer model name below exercises the offset path.
	buf.Write([]byte{2, 0}) // entry count

	entry := make([]byte, 12)
	le16 := func(b []byte, v uint16) { b[0] = byte(v); b[1] = byte(v >> 8) }
	le32 := func(b []byte, v uint32) {
		b[0] = byte(v)
		b[1] = byte(v >> 8)
		b[2] = byte(v >> 16)
		b[3] = byte(v >> 24)
	}
	le16(entry[0:2], uint16(TagModel))
	le16(entry[2:4], uint16(TypeASCII))
	le32(entry[4:8], 3) // "AB\x00" stored inline
	copy(entry[8:12], []byte("AB\x00\x00"))
	buf.Write(entry)

	makeOffset := uint32(8 + 2 + 2*12 + 4)
	entry2 := make([]byte, 12)
	le16(entry2[0:2], uint16(TagMake))
	le16(entry2[2:4], uint16(TypeASCII))
	le32(entry2[4:8], 6) // "Nikon\x00", too long to be inline
	le32(entry2[8:12], makeOffset)
	buf.Write(entry2)

	buf.Write([]byte{0, 0, 0, 0}) // next IFD offset
	buf.WriteString("Nikon\x00")
	for buf.Len() < 1100 {
		buf.WriteByte(0) // pad past the 1024-byte minimum-size guard
	}
	return buf.Bytes()
}

func TestReadTreeParsesModelTag(t *testing.T) {
	data := buildTIFF(t)
	s := rawio.New(bytes.NewReader(data), int64(len(data)), rawio.LittleEndian)

	tree, hdr, err := ReadTree(s)
	if err != nil {
		t.Fatalf("ReadTree: %v", err)
	}
	if hdr.Order != rawio.LittleEndian {
		t.Fatalf("expected little endian header")
	}
	if len(tree.IFDs) != 1 {
		t.Fatalf("expected 1 IFD, got %d", len(tree.IFDs))
	}
	e, ok := tree.IFDs[0].Get(TagModel)
	if !ok {
		t.Fatal("expected Model tag present")
	}
	model, err := ASCIIValue(s, e)
	if err != nil {
		t.Fatal(err)
	}
	if model != "AB" {
		t.Fatalf("expected model %q, got %q", "AB", model)
	}

	// Endianness discipline: after parsing, the stream order equals
	// the file's magic-indicated order.
	if s.Order() != rawio.LittleEndian {
		t.Fatalf("stream order leaked: got %v", s.Order())
	}
}

func TestSniffFamilies(t *testing.T) {
	cases := []struct {
		magic []byte
		want  Family
	}{
		{[]byte("II*\x00abcdefgh"), FamilyTIFF},
		{[]byte("MM\x00*abcdefgh"), FamilyTIFF},
		{[]byte("IIII\x00\x00\x00\x00abcd"), FamilyPhaseOne},
		{[]byte("\x00\x00\x00\x18ftypcrx "), FamilyBMFF},
		{[]byte("RIFFabcdWAVEfoo"), FamilyRIFF},
		{[]byte("FOVb\x00\x00\x00\x00abcdefgh"), FamilyX3F},
	}
	for _, c := range cases {
		if got := Sniff(c.magic); got != c.want {
			t.Errorf("Sniff(%q) = %v, want %v", c.magic, got, c.want)
		}
	}
}

func TestCIFFRecursionDepthIsStructuralError(t *testing.T) {
	data := make([]byte, 2048)
	s := rawio.New(bytes.NewReader(data), int64(len(data)), rawio.LittleEndian)
	_, err := ReadCIFFHeap(s, 0, 200)
	if !IsCIFFRecursionError(err) {
		t.Fatalf("expected CIFF recursion error, got %v", err)
	}
}

func TestMakerNoteRestoresByteOrderOnEveryExit(t *testing.T) {
	// Nikon-style maker note with its own TIFF header embedded, in the
	// opposite byte order from the outer file.
	buf := &bytes.Buffer{}
	buf.WriteString("Nikon\x00\x02\x10\x00\x00") // 10-byte signature+padding
	buf.WriteString("MM")
	buf.Write([]byte{0, 42})
	buf.Write([]byte{0, 0, 0, 8}) // inner IFD0 offset 8, relative to the embedded TIFF header
	buf.Write([]byte{0, 0})       // zero entries
	buf.Write([]byte{0, 0, 0, 0}) // next
	for buf.Len() < 64 {
		buf.WriteByte(0)
	}
	data := buf.Bytes()

	s := rawio.New(bytes.NewReader(data), int64(len(data)), rawio.LittleEndian)
	_, _, err := ParseMakerNote(s, 0, len(data))
	if err != nil {
		t.Fatalf("ParseMakerNote: %v", err)
	}
	if s.Order() != rawio.LittleEndian {
		t.Fatalf("maker-note parse leaked byte order: got %v", s.Order())
	}
}
