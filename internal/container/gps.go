package container

import "github.com/tacusci/rawforge/internal/rawio"

// GPSTag is a GPS sub-IFD tag, generalizing the teacher's
// gpsIFD-specific constants (GPSVersionID, GPSLatitude, ...).
type GPSTag uint16

const (
	GPSVersionID  GPSTag = 0x0000
	GPSLatitudeRf GPSTag = 0x0001
	GPSLatitude   GPSTag = 0x0002
	GPSLongitudeRf GPSTag = 0x0003
	GPSLongitude  GPSTag = 0x0004
	GPSTimeStamp  GPSTag = 0x0007
	GPSSatellites GPSTag = 0x0008
)

// GPSInfo mirrors the subset of the teacher's gpsIFD struct that the
// container parser itself is responsible for (EXIF sub-IFD fields
// beyond GPS are left to the camera package, which only needs
// make/model/orientation/ISO out of the EXIF tree).
type GPSInfo struct {
	VersionID  []byte
	Satellites string
}

// ParseGPSIFD reads the GPS sub-directory at offset, generalizing the
// teacher's parseGPSIFDBytes.
func ParseGPSIFD(s *rawio.Stream, offset uint32) (*GPSInfo, error) {
	ifd, err := ReadIFD(s, offset)
	if err != nil {
		return nil, err
	}
	info := &GPSInfo{}
	if e, ok := ifd.Get(Tag(GPSVersionID)); ok {
		b, _ := Bytes(s, e)
		info.VersionID = b
	}
	if e, ok := ifd.Get(Tag(GPSSatellites)); ok {
		str, _ := ASCIIValue(s, e)
		info.Satellites = str
	}
	return info, nil
}
