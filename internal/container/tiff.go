package container

import (
	"errors"

	"github.com/tacusci/rawforge/internal/rawio"
)

// ErrBadHeader is returned when the leading 8 bytes do not look like a
// TIFF-family header (II/MM + magic 42, or a recognized DNG variant).
var ErrBadHeader = errors.New("container: unrecognized header")

// Header is the 8-byte TIFF header: byte-order magic, format magic
// number, and the offset of IFD0.
type Header struct {
	Order      rawio.Order
	Magic      uint16
	IFD0Offset uint32
}

// SniffOrder inspects the first two bytes ("II" or "MM") the way the
// teacher's getEdianOrder does, defaulting to big-endian when neither
// matches (the teacher's own fallback, kept for parity with files that
// have a damaged header but are otherwise readable).
func SniffOrder(first2 []byte) rawio.Order {
	if len(first2) >= 2 && first2[0] == 'I' && first2[1] == 'I' {
		return rawio.LittleEndian
	}
	return rawio.BigEndian
}

// ReadHeader parses the 8-byte TIFF header at the start of s.
func ReadHeader(s *rawio.Stream) (Header, error) {
	if s.Size() <= 1024 {
		return Header{}, errors.New("container: file too small to be a raw image")
	}
	buf, err := s.ReadAtN(8, 0)
	if err != nil {
		return Header{}, err
	}
	order := SniffOrder(buf[:2])
	pop := s.PushOrder(order)
	defer pop()

	magic, err := s.U16At(2)
	if err != nil {
		return Header{}, err
	}
	ifd0, err := s.U32At(4)
	if err != nil {
		return Header{}, err
	}
	return Header{Order: order, Magic: magic, IFD0Offset: ifd0}, nil
}

// ReadIFD parses one 12-byte-entry IFD at offset, following the
// teacher's readIFDBytes/parseIFDBytes shape: a uint16 entry count,
// then that many 12-byte entries, then (implicitly, read by the
// caller via Next) a uint32 offset to the next linked IFD.
func ReadIFD(s *rawio.Stream, offset uint32) (*IFD, error) {
	pos := int64(offset)
	countBuf, err := s.ReadAtN(2, pos)
	if err != nil {
		return nil, err
	}
	count := s.Order().Uint16(countBuf)
	pos += 2

	ifd := &IFD{}
	for i := uint16(0); i < count; i++ {
		entryBuf, err := s.ReadAtN(12, pos)
		if err != nil {
			return ifd, err
		}
		e := Entry{
			Tag:         Tag(s.Order().Uint16(entryBuf[0:2])),
			Type:        Type(s.Order().Uint16(entryBuf[2:4])),
			Count:       s.Order().Uint32(entryBuf[4:8]),
			ValueOffset: s.Order().Uint32(entryBuf[8:12]),
		}
		copy(e.raw[:], entryBuf[8:12])
		ifd.Add(e)
		if e.Tag == TagSubIFDs || e.Tag == 0x014a {
			ifd.SubIFDs = append(ifd.SubIFDs, decodeOffsetList(s, e)...)
		}
		pos += 12
	}
	if next, err := s.U32At(pos); err == nil {
		ifd.Next = next
	}
	return ifd, nil
}

// decodeOffsetList reads a SubIFDs-style entry (one or more uint32
// offsets) whether stored inline or out of line.
func decodeOffsetList(s *rawio.Stream, e Entry) []uint32 {
	if e.Count == 0 {
		return nil
	}
	if e.Inline() {
		return []uint32{e.ValueOffset}
	}
	out := make([]uint32, 0, e.Count)
	base := int64(e.ValueOffset)
	for i := uint32(0); i < e.Count; i++ {
		v, err := s.U32At(base + int64(i)*4)
		if err != nil {
			break
		}
		out = append(out, v)
	}
	return out
}

// ASCIIValue reads the string value of an ASCII entry, trimming the
// trailing NUL the TIFF spec requires.
func ASCIIValue(s *rawio.Stream, e Entry) (string, error) {
	buf, err := Bytes(s, e)
	if err != nil {
		return "", err
	}
	for len(buf) > 0 && buf[len(buf)-1] == 0 {
		buf = buf[:len(buf)-1]
	}
	return string(buf), nil
}

// Bytes materializes the raw bytes behind an entry, whether inline or
// out of line.
func Bytes(s *rawio.Stream, e Entry) ([]byte, error) {
	n := int(e.Count) * e.Type.Size()
	if e.Inline() {
		return e.raw[:min(n, 4)], nil
	}
	return s.ReadAtN(n, int64(e.ValueOffset))
}

// Uint32Value reads a single LONG/SHORT entry's numeric value.
func Uint32Value(s *rawio.Stream, e Entry) uint32 {
	switch e.Type {
	case TypeShort:
		return uint32(s.Order().Uint16(e.raw[0:2]))
	default:
		return e.ValueOffset
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// ReadTree walks a full TIFF-family tree starting from the header,
// generalizing the teacher's rawImage.Load (header -> IFD0 -> SubIFDs).
func ReadTree(s *rawio.Stream) (*Tree, Header, error) {
	hdr, err := ReadHeader(s)
	if err != nil {
		return nil, Header{}, err
	}
	pop := s.PushOrder(hdr.Order)
	defer pop()

	t := &Tree{Stream: s}
	err = Walk(t, hdr.IFD0Offset, func(offset uint32) (*IFD, error) {
		return ReadIFD(s, offset)
	})
	return t, hdr, err
}
