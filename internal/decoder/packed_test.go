package decoder

import (
	"testing"

	"github.com/tacusci/rawforge/internal/camera"
	"github.com/tacusci/rawforge/internal/diag"
)

// TestDecodePackedLE12MatchesScenarioTwo pins the little-endian 12-bit
// packed layout: two samples per three bytes, low byte of sample 0,
// then its high nibble packed with sample 1's low nibble, then sample
// 1's high byte.
func TestDecodePackedLE12MatchesScenarioTwo(t *testing.T) {
	data := []byte{0xFF, 0x0F, 0x00}
	req := Request{
		Stream: newTestStream(data),
		Desc:   &camera.Descriptor{RawWidth: 2, RawHeight: 1, BitsPerSample: 12},
		Params: Params{DataOffset: 0, LoadFlags: 12},
		Diag:   diag.NewCounters(),
	}
	res, err := decodePacked(req)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint16{0x0FFF, 0x0000}
	for i, w := range want {
		if got := res.Plane.At(i, 0, 0); got != w {
			t.Fatalf("sample %d: got %#x, want %#x", i, got, w)
		}
	}
}

// TestUnpackLE12RoundTripsAgainstPack encodes a row of 12-bit samples
// with packLE12 (the test-only inverse of unpackLE12) and checks the
// decoder recovers every value, covering both the even and the
// trailing-odd-sample cases.
func TestUnpackLE12RoundTripsAgainstPack(t *testing.T) {
	for _, count := range []int{2, 4, 5, 9} {
		samples := make([]uint16, count)
		for i := range samples {
			samples[i] = uint16((i*677 + 11) & 0xfff)
		}
		packed := packLE12(samples)
		got := unpackLE12(packed, count)
		for i, want := range samples {
			if got[i] != want {
				t.Fatalf("count=%d sample %d: got %#x, want %#x", count, i, got[i], want)
			}
		}
	}
}

// TestDecodePackedMSBFallsBackForOtherWidths confirms 14-bit packed
// rows still go through the MSB-first bit reader, unaffected by the
// 12-bit little-endian special case.
func TestDecodePackedMSBFallsBackForOtherWidths(t *testing.T) {
	// two 14-bit samples, MSB-first: 0x1FFF, 0x0001
	data := []byte{0x7F, 0xFC, 0x00, 0x10}
	req := Request{
		Stream: newTestStream(data),
		Desc:   &camera.Descriptor{RawWidth: 2, RawHeight: 1, BitsPerSample: 14},
		Params: Params{DataOffset: 0, LoadFlags: 14},
		Diag:   diag.NewCounters(),
	}
	res, err := decodePacked(req)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Plane.At(0, 0, 0); got != 0x1FFF {
		t.Fatalf("sample 0: got %#x, want 0x1fff", got)
	}
	if got := res.Plane.At(1, 0, 0); got != 0x0001 {
		t.Fatalf("sample 1: got %#x, want 0x0001", got)
	}
}

// packLE12 is the inverse of unpackLE12, used only to build round-trip
// fixtures for the test above.
func packLE12(samples []uint16) []byte {
	count := len(samples)
	out := make([]byte, (count*12+7)/8)
	for i := 0; i+1 < count; i += 2 {
		a, b := uint32(samples[i]), uint32(samples[i+1])
		combined := (a & 0xfff) | ((b & 0xfff) << 12)
		base := i / 2 * 3
		out[base] = byte(combined)
		out[base+1] = byte(combined >> 8)
		out[base+2] = byte(combined >> 16)
	}
	if count%2 == 1 {
		a := uint32(samples[count-1])
		base := (count - 1) / 2 * 3
		out[base] = byte(a)
		out[base+1] = byte(a >> 8)
	}
	return out
}
