package camera

// sizeEntry fixes make/model/geometry/CFA/load flags purely from the
// exact byte length of a signature-less raw payload, grounded on the
// original's is_raw/raw-only identification path (several very old
// cameras, found in original_source/src/persistence/readers, write a
// bare sensor dump with no header at all).
type sizeEntry struct {
	size          int64
	make, model   string
	width, height int
	cfa           CFAPattern
	loadFlags     uint32
}

var fileSizeTable = []sizeEntry{
	{1652736, "AgfaPhoto", "DC-833m", 1320, 1030, CFABayer, 0},
	{4147200, "Sinar", "", 2048, 1350, CFABayer, 0},
	{6291456, "Kodak", "DC20", 1024, 1536, CFABayer, 0},
	{1581060, "Nikon", "E900", 1616, 1220, CFABayer, 0},
	{2465792, "Nikon", "E950", 1940, 1460, CFABayer, 0},
	{3178560, "Sony", "ILCA/no-header", 2080, 1540, CFABayer, 0},
	{18432000, "Canon", "PowerShot A5", 2592, 1944, CFABayer, 0},
}

// lookupFileSize consults the file-size table by exact payload
// length. This is the step 1 fallback invoked only when no vendor
// signature string was found in the container.
func lookupFileSize(payloadSize int64) (sizeEntry, bool) {
	for _, e := range fileSizeTable {
		if e.size == payloadSize {
			return e, true
		}
	}
	return sizeEntry{}, false
}
