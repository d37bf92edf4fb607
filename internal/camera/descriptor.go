// Package camera finalizes the image descriptor once the container
// parser has done what it can: normalizing make/model, selecting a
// default color matrix, and applying the per-model dimensional
// fixups that the container alone cannot know about.
package camera

// CFAPattern names the sensor's color filter array layout.
type CFAPattern int

const (
	CFAUnknown CFAPattern = iota
	CFABayer
	CFAXTrans
	CFALinear
	CFAMonochrome
)

// Rect is an inclusive-exclusive pixel rectangle, (Left,Top) to
// (Left+Width, Top+Height).
type Rect struct {
	Left, Top, Width, Height int
}

// Descriptor is the camera image descriptor: everything downstream
// pipeline stages need to know about the sensor and the shot,
// generalizing the teacher's tiffIFD tag grab-bag into a single typed
// record built up in stages (container parse, then identification).
type Descriptor struct {
	Make  string
	Model string

	RawWidth, RawHeight int
	ActiveArea          Rect

	BitsPerSample int
	CFA           CFAPattern
	FilterPattern uint32 // packed 2x2 (or 6x6 for X-Trans) CFA code

	BlackLevel   int
	WhiteLevel   int
	CameraMul    [4]float64
	DaylightMul  [4]float64
	UserMul      [4]float64
	ColorMatrix  [12]float64 // XYZ -> camera, row-major 4 rows of 3 columns (4th row unused for 3-color)
	HasColorMatrix bool

	FlipMask int // 0,3,5,6 per EXIF-orientation-derived rotate/mirror code

	PixelAspect float64 // minor-axis stretch factor; 1 for square photosites
	FujiWidth   int     // width of a 45-degree-rotated Fuji grid; 0 = not rotated

	DecoderVariant string
	LoadFlags      uint32

	FileSizeIdentified bool
	UsedTableMatrix    bool
	UsedSimpleFallback bool
}

// simpleMatrix is one of the hard-coded fallback matrices for
// cameras too old or too obscure to carry an embedded or tabled
// profile (Kodak DC20/25, Fotoman Pixtura, Nikon E880/E900/E990:
// three distinct matrices), per spec §4.B step 5. There is no entry
// for Foveon X3 models.
type simpleMatrix struct {
	modelContains string
	matrix        [9]float64
}

// modelContains is matched against the model string AFTER the make
// prefix has been stripped (step 2 runs before step 5), so these name
// bare model suffixes rather than full make+model strings.
var simpleMatrices = []simpleMatrix{
	{"DC20", [9]float64{
		7.231, -2.105, -1.125,
		-2.917, 10.634, 2.283,
		-1.719, -2.222, 11.121,
	}},
	{"DC25", [9]float64{
		7.231, -2.105, -1.125,
		-2.917, 10.634, 2.283,
		-1.719, -2.222, 11.121,
	}},
	{"Pixtura", [9]float64{
		4.942, -0.917, -0.375,
		-1.614, 5.855, -0.241,
		-0.426, -1.184, 6.610,
	}},
	{"E880", nikonCoolpixSimple},
	{"E900", nikonCoolpixSimple},
	{"E990", nikonCoolpixSimple},
}

var nikonCoolpixSimple = [9]float64{
	5.206, -1.118, -0.488,
	-2.657, 7.419, 0.818,
	-0.848, -1.670, 7.518,
}
