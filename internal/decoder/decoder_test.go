package decoder

import (
	"bytes"
	"testing"

	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/diag"
	"github.com/tacusci/rawforge/internal/rawio"
)

func newTestStream(data []byte) *rawio.Stream {
	return rawio.New(bytes.NewReader(data), int64(len(data)), rawio.BigEndian)
}

func TestDecodeUnknownVariantReturnsError(t *testing.T) {
	_, err := Decode(VariantUnknown, Request{})
	if err != ErrUnknownVariant {
		t.Fatalf("got %v, want ErrUnknownVariant", err)
	}
}

func TestDecodeUnpackedReadsSamplesInStreamOrder(t *testing.T) {
	// 2x2 image, big-endian 16-bit samples: 1, 2, 3, 4.
	data := []byte{0, 1, 0, 2, 0, 3, 0, 4}
	req := Request{
		Stream: newTestStream(data),
		Desc:   &camera.Descriptor{RawWidth: 2, RawHeight: 2, BitsPerSample: 16},
		Params: Params{DataOffset: 0},
		Diag:   diag.NewCounters(),
	}
	res, err := decodeUnpacked(req)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint16{1, 2, 3, 4}
	for i, w := range want {
		if got := res.Plane.Data[i]; got != w {
			t.Fatalf("sample %d: got %d, want %d", i, got, w)
		}
	}
}

func TestGolombRiceRoundTripsSmallValues(t *testing.T) {
	// encode mag=5 at k=2: quotient 1, remainder 1 -> unary "0" then
	// terminator "1" then 2-bit remainder "01"
	br := NewBitReader([]byte{0b01_01_0000})
	v, err := decodeGolombRice(br, 2)
	if err != nil {
		t.Fatal(err)
	}
	if v != 5 {
		t.Fatalf("got %d, want 5", v)
	}
}

func TestUnzigzagInterleavesSignedValues(t *testing.T) {
	cases := map[uint32]int32{0: 0, 1: -1, 2: 1, 3: -2, 4: 2}
	for in, want := range cases {
		if got := unzigzag(in); got != want {
			t.Fatalf("unzigzag(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestDecodeDiffRoundTripsThroughCanonTable(t *testing.T) {
	table := defaultCanonHuffTable()
	// category 0 gets the single code counted by bits={0,1,5,...}; find its
	// code by building the table and checking the canonical minCode.
	// Category 0 is assigned the first code of length matching
	// bits[0]; since bits[0]=0, category 0 actually falls in length 2
	// (bits[1]=1), code 0b00.
	br := NewBitReader([]byte{0b00_000000})
	diff, err := decodeDiff(br, table)
	if err != nil {
		t.Fatal(err)
	}
	if diff != 0 {
		t.Fatalf("got %d, want 0", diff)
	}
}

func TestPredictorModes(t *testing.T) {
	if v := predictor(1, 10, 20, 30); v != 10 {
		t.Fatalf("mode 1: got %d, want 10", v)
	}
	if v := predictor(4, 10, 20, 5); v != 25 {
		t.Fatalf("mode 4: got %d, want 25", v)
	}
	if v := predictor(0, 10, 20, 30); v != 0 {
		t.Fatalf("mode 0: got %d, want 0", v)
	}
}

func TestCheckSampleRangeMarksCorruptOnOverflow(t *testing.T) {
	counters := diag.NewCounters()
	checkSampleRange(counters, 0, 300, 8) // 300 > 255
	if counters.Corrupt == 0 {
		t.Fatal("expected corrupt counter to increment for out-of-range 8-bit sample")
	}
}

func TestDecodeLegacyStubReturnsBlankPlaneAndMarksCorrupt(t *testing.T) {
	counters := diag.NewCounters()
	req := Request{
		Desc: &camera.Descriptor{RawWidth: 4, RawHeight: 4},
		Diag: counters,
	}
	res, err := decodeLegacyStub(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.Plane == nil || len(res.Plane.Data) != 16 {
		t.Fatalf("expected a correctly-shaped blank plane")
	}
	if counters.Corrupt == 0 {
		t.Fatal("expected legacy stub to mark the data corrupt")
	}
}
