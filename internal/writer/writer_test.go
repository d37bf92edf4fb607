package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tacusci/rawforge/internal/rawimage"
)

func testImage() *rawimage.Working {
	w := rawimage.NewWorking(2, 2)
	w.SetPixel(0, 0, [4]uint16{65535, 0, 0, 0})
	w.SetPixel(1, 0, [4]uint16{0, 65535, 0, 0})
	w.SetPixel(0, 1, [4]uint16{0, 0, 65535, 0})
	w.SetPixel(1, 1, [4]uint16{30000, 30000, 30000, 0})
	return w
}

func TestWritePNMColorHeaderAndSize(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNM(&buf, testImage(), false, 65535); err != nil {
		t.Fatalf("WritePNM: %v", err)
	}
	header := buf.String()
	if !strings.HasPrefix(header, "P6\n2 2\n65535\n") {
		t.Fatalf("unexpected header: %q", header[:min(len(header), 20)])
	}
	wantBodyLen := 2 * 2 * 3 * 2
	gotBodyLen := len(buf.Bytes()) - strings.Index(header, "65535\n") - len("65535\n")
	if gotBodyLen != wantBodyLen {
		t.Fatalf("got body length %d, want %d", gotBodyLen, wantBodyLen)
	}
}

func TestWritePNMMonochromeUsesP5(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNM(&buf, testImage(), true, 255); err != nil {
		t.Fatalf("WritePNM: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "P5\n2 2\n255\n") {
		t.Fatalf("unexpected header: %q", buf.String()[:min(buf.Len(), 20)])
	}
}

func TestWritePAMHeaderFields(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePAM(&buf, testImage(), 65535); err != nil {
		t.Fatalf("WritePAM: %v", err)
	}
	header := buf.String()
	if !strings.HasPrefix(header, "P7\nWIDTH 2\nHEIGHT 2\nDEPTH 3\nMAXVAL 65535\nTUPLTYPE RGB\nENDHDR\n") {
		t.Fatalf("unexpected PAM header: %q", header[:min(len(header), 60)])
	}
}

func TestWriteTIFFProducesNonEmptyOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTIFF(&buf, testImage()); err != nil {
		t.Fatalf("WriteTIFF: %v", err)
	}
	if buf.Len() < 8 {
		t.Fatalf("got %d bytes, want a real TIFF stream", buf.Len())
	}
	if buf.Bytes()[0] != 'I' && buf.Bytes()[0] != 'M' {
		t.Fatalf("missing TIFF byte-order marker, got %v", buf.Bytes()[0:4])
	}
}
