package container

import "github.com/tacusci/rawforge/internal/rawio"

// Entry is one 12-byte IFD record: tag, type, element count, and
// either an inline value or a file offset to the value, per the
// "count × sizeof(type) fits in 4 bytes" inline-vs-offset rule.
type Entry struct {
	Tag         Tag
	Type        Type
	Count       uint32
	ValueOffset uint32
	raw         [4]byte
}

// Inline reports whether the entry's value was stored inline rather
// than at ValueOffset.
func (e Entry) Inline() bool {
	return int64(e.Count)*int64(e.Type.Size()) <= 4
}

// IFD is an ordered sequence of entries, keyed by tag for lookup.
// "Later entries for the same tag override earlier ones" per the
// ordering rule in the concurrency & resource model.
type IFD struct {
	Entries []Entry
	byTag   map[Tag]int
	Next    uint32 // offset of the next linked IFD, 0 if none
	SubIFDs []uint32
}

// Add appends an entry, applying the override-by-tag-order rule.
func (d *IFD) Add(e Entry) {
	if d.byTag == nil {
		d.byTag = make(map[Tag]int)
	}
	if i, ok := d.byTag[e.Tag]; ok {
		d.Entries[i] = e
		return
	}
	d.byTag[e.Tag] = len(d.Entries)
	d.Entries = append(d.Entries, e)
}

// Get looks up the most recent entry for tag, if any.
func (d *IFD) Get(tag Tag) (Entry, bool) {
	i, ok := d.byTag[tag]
	if !ok {
		return Entry{}, false
	}
	return d.Entries[i], true
}

// Tree is the logical tree of IFDs parsed from one file: the
// full-size raw IFD0, any chained IFDs, and the SubIFDs/EXIF/GPS/
// maker-note sub-directories hung off it.
type Tree struct {
	Stream *rawio.Stream
	IFDs   []*IFD
	Maker  *IFD // maker-note sub-directory, if recognized
}

// Walk appends every IFD on the Next chain from start, each followed by
// its direct SubIFDs, using read to materialize each one. SubIFDs are
// read one level deep: their own Next chains and nested SubIFDs are
// not followed.
func Walk(t *Tree, start uint32, read func(offset uint32) (*IFD, error)) error {
	offset := start
	seen := map[uint32]bool{}
	for offset != 0 {
		if seen[offset] {
			break // cyclic IFD chain guard
		}
		seen[offset] = true
		ifd, err := read(offset)
		if err != nil {
			return err
		}
		t.IFDs = append(t.IFDs, ifd)
		for _, sub := range ifd.SubIFDs {
			subIFD, err := read(sub)
			if err != nil {
				continue // unrecognized tags are skipped silently
			}
			t.IFDs = append(t.IFDs, subIFD)
		}
		offset = ifd.Next
	}
	return nil
}
