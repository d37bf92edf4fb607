package container

import (
	"github.com/tacusci/rawforge/internal/rawio"
)

// Family identifies which of the §4.A format families a file belongs
// to, selected by magic sniff before any tag is read.
type Family int

const (
	FamilyUnknown    Family = iota
	FamilyTIFF              // TIFF-like: DNG and every vendor built on IFDs
	FamilyCIFF              // legacy Canon
	FamilyBMFF              // ISO base-media container (CR3/crx, QuickTime raws)
	FamilyRIFF              // legacy Nikon video-wrapped raw
	FamilyFujiHeader        // FUJIFILM header wrapping an inner TIFF
	FamilyPhaseOne          // Phase One / Mamiya IIII/MMMM
	FamilyMRM               // Minolta MRM
	FamilyX3F               // Foveon X3F
	FamilyRawOnly           // identified by file size alone
)

// Sniff inspects the leading bytes of a file and returns the format
// family, the heuristic-identification fallback table being tried
// only once no signature matches (handled by the camera package).
func Sniff(first16 []byte) Family {
	if len(first16) < 4 {
		return FamilyUnknown
	}
	switch {
	case string(first16[0:4]) == "IIII" || string(first16[0:4]) == "MMMM":
		return FamilyPhaseOne
	case len(first16) >= 8 && string(first16[4:8]) == "ftyp":
		return FamilyBMFF
	case string(first16[0:4]) == "RIFF":
		return FamilyRIFF
	case string(first16[0:4]) == "MRM\x00" || string(first16[0:3]) == "MRM":
		return FamilyMRM
	case string(first16[0:4]) == "FOVb":
		return FamilyX3F
	case (first16[0] == 'I' && first16[1] == 'I' && first16[2] == 42 && first16[3] == 0) ||
		(first16[0] == 'M' && first16[1] == 'M' && first16[2] == 0 && first16[3] == 42):
		return FamilyTIFF
	case (first16[0] == 'I' && first16[1] == 'I') || (first16[0] == 'M' && first16[1] == 'M'):
		// Legacy Canon CIFF: same II/MM lead-in, different magic number.
		return FamilyCIFF
	default:
		return FamilyRawOnly
	}
}

// CIFFBlock is one self-describing block of a legacy Canon CIFF
// container, located from the trailing offset at the end of the file.
type CIFFBlock struct {
	Tag    uint16
	Offset uint32
	Length uint32
}

// ReadCIFFHeap walks a CIFF heap starting at heapOffset, bounding
// recursion at the depth the spec calls out (depth > 127 triggers a
// non-local exit to the per-file loop in the original; here it is a
// plain returned error).
func ReadCIFFHeap(s *rawio.Stream, heapOffset uint32, depth int) ([]CIFFBlock, error) {
	const maxDepth = 127
	if depth > maxDepth {
		return nil, errCIFFRecursion
	}
	countBuf, err := s.ReadAtN(2, int64(heapOffset))
	if err != nil {
		return nil, err
	}
	count := s.Order().Uint16(countBuf)
	blocks := make([]CIFFBlock, 0, count)
	pos := int64(heapOffset) + 2
	for i := uint16(0); i < count; i++ {
		entry, err := s.ReadAtN(10, pos)
		if err != nil {
			break
		}
		blocks = append(blocks, CIFFBlock{
			Tag:    s.Order().Uint16(entry[0:2]),
			Length: s.Order().Uint32(entry[2:6]),
			Offset: s.Order().Uint32(entry[6:10]),
		})
		pos += 10
	}
	return blocks, nil
}

var errCIFFRecursion = ciffRecursionError{}

type ciffRecursionError struct{}

func (ciffRecursionError) Error() string { return "container: CIFF heap recursion exceeded 127" }

// IsCIFFRecursionError reports whether err is the structural CIFF
// recursion-depth condition that must trigger a non-local exit to the
// per-file driver loop.
func IsCIFFRecursionError(err error) bool {
	_, ok := err.(ciffRecursionError)
	return ok
}

// BMFFBox is one ISO-base-media box (ftyp/moov/trak/mdia/stbl/...),
// used by Canon CR3 and QuickTime-wrapped raws.
type BMFFBox struct {
	Type       string
	Offset     int64
	Size       int64
	BodyOffset int64
}

// ReadBMFFBoxes walks the flat top-level box list of an ISO-BMFF
// container; recursing into a box's children is the caller's job,
// since only trak/mdia/stbl need it and the rest (mdat, the raw
// payload itself) should not be descended into.
func ReadBMFFBoxes(s *rawio.Stream, start, end int64) ([]BMFFBox, error) {
	var boxes []BMFFBox
	pos := start
	for pos < end {
		hdr, err := s.ReadAtN(8, pos)
		if err != nil {
			break
		}
		size := int64(s.Order().Uint32(hdr[0:4]))
		typ := string(hdr[4:8])
		body := pos + 8
		if size == 1 {
			// 64-bit extended size.
			ext, err := s.ReadAtN(8, body)
			if err != nil {
				break
			}
			size = int64(s.Order().Uint64(ext))
			body += 8
		}
		if size <= 0 {
			break
		}
		boxes = append(boxes, BMFFBox{Type: typ, Offset: pos, Size: size, BodyOffset: body})
		pos += size
	}
	return boxes, nil
}

// RIFFChunk is one legacy-Nikon-video RIFF/LIST chunk.
type RIFFChunk struct {
	ID     string
	Offset int64
	Size   int64
}

// ReadRIFFChunks walks a RIFF container's top-level chunk list.
func ReadRIFFChunks(s *rawio.Stream, start, end int64) ([]RIFFChunk, error) {
	var chunks []RIFFChunk
	pos := start
	for pos+8 <= end {
		hdr, err := s.ReadAtN(8, pos)
		if err != nil {
			break
		}
		id := string(hdr[0:4])
		size := int64(s.Order().Uint32(hdr[4:8]))
		chunks = append(chunks, RIFFChunk{ID: id, Offset: pos + 8, Size: size})
		pos += 8 + size
		if size%2 == 1 {
			pos++ // RIFF chunks are word-aligned
		}
	}
	return chunks, nil
}

// FujiHeader is the FUJIFILM wrapper header: offsets to an inner TIFF
// and, for multi-exposure files, a second shot.
type FujiHeader struct {
	InnerTIFFOffset  uint32
	InnerTIFFLength  uint32
	SecondShotOffset uint32
}

// ReadFujiHeader parses the fixed-layout FUJIFILM header that
// precedes the inner TIFF tree in Fuji raw files.
func ReadFujiHeader(s *rawio.Stream) (FujiHeader, error) {
	buf, err := s.ReadAtN(allFujiHeaderLen, 0)
	if err != nil {
		return FujiHeader{}, err
	}
	be := func(o int) uint32 {
		return uint32(buf[o])<<24 | uint32(buf[o+1])<<16 | uint32(buf[o+2])<<8 | uint32(buf[o+3])
	}
	return FujiHeader{
		InnerTIFFOffset:  be(84),
		InnerTIFFLength:  be(88),
		SecondShotOffset: be(100),
	}, nil
}

const allFujiHeaderLen = 148

// PhaseOneHeader is the Phase One/Mamiya IIII/MMMM container header:
// a tag-directory offset analogous to a TIFF IFD0 offset, but with a
// different magic and a flat tag list rather than nested IFDs.
type PhaseOneHeader struct {
	DirectoryOffset uint32
}

// ReadPhaseOneHeader parses the fixed 8-byte-aligned header.
func ReadPhaseOneHeader(s *rawio.Stream) (PhaseOneHeader, error) {
	off, err := s.U32At(4)
	if err != nil {
		return PhaseOneHeader{}, err
	}
	return PhaseOneHeader{DirectoryOffset: off}, nil
}
