package codec

// Select returns the first decoder among candidates whose Probe
// reports true for data, so a caller holding an embedded-frame blob
// of unknown codec type (Canon CRX tiles can be either JPEG or
// JPEG-2000 depending on generation) doesn't need to hard-code which
// one applies.
func Select(data []byte, candidates ...Decoder) (Decoder, bool) {
	for _, c := range candidates {
		if c.Probe(data) {
			return c, true
		}
	}
	return nil, false
}
