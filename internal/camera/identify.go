package camera

import "strings"

// canonicalMakes normalizes the raw EXIF/maker-note Make string to a
// fixed set of names, per step 2 of the identification algorithm;
// grounded on the upper-cased, suffix-stripped vendor string matching
// used throughout original_source's rawloaders dispatch.
var canonicalMakes = map[string]string{
	"NIKON CORPORATION":           "Nikon",
	"NIKON":                       "Nikon",
	"CANON":                       "Canon",
	"SONY":                        "Sony",
	"OLYMPUS CORPORATION":         "OLYMPUS",
	"OLYMPUS OPTICAL CO.,LTD":     "OLYMPUS",
	"OLYMPUS IMAGING CORP.":       "OLYMPUS",
	"FUJIFILM":                    "FUJIFILM",
	"FUJI PHOTO FILM CO., LTD.":   "FUJIFILM",
	"PENTAX CORPORATION":          "PENTAX",
	"RICOH IMAGING COMPANY, LTD.": "PENTAX",
	"PANASONIC":                   "Panasonic",
	"LEICA CAMERA AG":             "Leica",
	"SAMSUNG":                     "Samsung",
	"SAMSUNG TECHWIN":             "Samsung",
	"PHASE ONE A/S":                "Phase One",
	"EASTMAN KODAK COMPANY":        "Kodak",
	"MINOLTA CO., LTD.":            "Minolta",
	"KONICA MINOLTA":               "Minolta",
	"HASSELBLAD":                   "Hasselblad",
}

func normalizeMake(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if canon, ok := canonicalMakes[strings.ToUpper(trimmed)]; ok {
		return canon
	}
	return trimmed
}

// stripModelPrefix trims trailing padding from model and removes a
// leading copy of make (matched case-insensitively against both the
// raw and the normalized make string, since vendors embed the raw
// all-caps make as a model prefix), per step 2.
func stripModelPrefix(rawMake, normalizedMake, model string) string {
	model = strings.TrimRight(model, " \x00")
	model = strings.TrimSpace(model)
	for _, prefix := range []string{rawMake, normalizedMake} {
		if prefix == "" {
			continue
		}
		if len(model) > len(prefix) && strings.EqualFold(model[:len(prefix)], prefix) {
			model = strings.TrimSpace(model[len(prefix):])
			break
		}
	}
	return model
}

// dimFixup is a per-model dimensional correction (step 3): some
// cameras need a band of masked pixels cropped from their reported
// geometry, or an alternate width/height swapped in for a known
// multi-aspect-ratio sensor.
type dimFixup struct {
	modelContains string
	cropLeft      int
	cropTop       int
	width, height int // 0 means "leave as reported"
}

var dimFixups = []dimFixup{
	{"D100", 0, 0, 3008, 2000},
	{"D1X", 1, 0, 4032, 1324},
	{"E990", 0, 0, 0, 0},
}

func applyDimFixup(d *Descriptor) {
	for _, f := range dimFixups {
		if strings.Contains(d.Model, f.modelContains) {
			d.ActiveArea.Left += f.cropLeft
			d.ActiveArea.Top += f.cropTop
			if f.width != 0 {
				d.ActiveArea.Width = f.width
			}
			if f.height != 0 {
				d.ActiveArea.Height = f.height
			}
			return
		}
	}
}

// geometryFixup is a per-model record of the two properties step 3b
// needs that the container can never supply on its own: a sensor's
// non-square photosite ratio, and the post-rotation width of a Fuji
// Super CCD SR diagonal grid. Matched on the exact stripped model
// name (unlike dimFixups' substring match) since "D1" would otherwise
// also match "D100"/"D1X".
type geometryFixup struct {
	model       string
	pixelAspect float64
	fujiWidth   int
}

var geometryFixups = []geometryFixup{
	{"D1", 1.5, 0},
	{"S2Pro", 0, 2048},
	{"S3Pro", 0, 2064},
	{"S5Pro", 0, 2304},
}

// applyGeometryFixup is step 3b: set PixelAspect to 1 (square
// photosites, the common case) unless a table entry overrides it, and
// FujiWidth to 0 (no diagonal-sensor rotation needed) unless one does.
func applyGeometryFixup(d *Descriptor) {
	d.PixelAspect = 1
	for _, f := range geometryFixups {
		if d.Model == f.model {
			if f.pixelAspect != 0 {
				d.PixelAspect = f.pixelAspect
			}
			d.FujiWidth = f.fujiWidth
			return
		}
	}
}

// DNGValues carries the embedded color-characterization tags a DNG
// file may provide directly, bypassing the table lookup entirely.
type DNGValues struct {
	HasColorMatrix1 bool
	ColorMatrix1    [12]float64
	HasCameraCalibration1 bool
	CameraCalibration1    [12]float64
	HasAsShotNeutral bool
	AsShotNeutral    [4]float64
}

// Options controls identification-time overrides.
type Options struct {
	// UseCameraMatrix forces the in-file (DNG-embedded) matrix to be
	// used even when a table match also exists. It is set from
	// pipeline.Options.UseCameraMatrix; no command-line flag sets it.
	UseCameraMatrix bool
}

// Identify runs the five-step finalization algorithm over a
// partially-filled descriptor, given the raw payload size (for the
// signature-less fallback), any DNG-embedded values found by the
// container parser, and override options. It mutates d in place.
func Identify(d *Descriptor, payloadSize int64, dng *DNGValues, opts Options) {
	// Step 1: file-size fallback when no signature is present at all.
	if d.Make == "" && d.Model == "" {
		if e, ok := lookupFileSize(payloadSize); ok {
			d.Make = e.make
			d.Model = e.model
			d.ActiveArea.Width = e.width
			d.ActiveArea.Height = e.height
			d.CFA = e.cfa
			d.LoadFlags = e.loadFlags
			d.FileSizeIdentified = true
		}
	}

	// Step 2: normalize make, strip it from model.
	rawMake := d.Make
	d.Make = normalizeMake(d.Make)
	d.Model = stripModelPrefix(rawMake, d.Make, d.Model)

	// Step 3: per-model dimensional fixups.
	applyDimFixup(d)

	// Step 3b: per-model pixel-aspect / Fuji rotation geometry.
	applyGeometryFixup(d)

	// Step 4 + ordering rule: table match > DNG embedded values >
	// simple fallback > identity; with UseCameraMatrix set, DNG
	// embedded values come before the table match. Table and simple-fallback matching
	// key off "make model" the way the in-memory table is indexed,
	// not the model alone.
	lookupKey := strings.TrimSpace(d.Make + " " + d.Model)
	tableEntry, hasTable := lookupTable(lookupKey)
	hasDNG := dng != nil && dng.HasColorMatrix1

	useDNG := hasDNG && (!hasTable || opts.UseCameraMatrix)
	switch {
	case useDNG:
		d.ColorMatrix = dng.ColorMatrix1
		d.HasColorMatrix = true
		if dng.HasAsShotNeutral {
			d.CameraMul = dng.AsShotNeutral
		}
	case hasTable:
		d.ColorMatrix = tableEntry.matrix
		d.HasColorMatrix = true
		d.BlackLevel = tableEntry.black
		d.WhiteLevel = tableEntry.maximum
		d.UsedTableMatrix = true
	default:
		if sm, ok := lookupSimpleMatrix(d.Model); ok {
			for i := 0; i < 9; i++ {
				d.ColorMatrix[i] = sm[i]
			}
			d.HasColorMatrix = true
			d.UsedSimpleFallback = true
		}
		// else: identity, d.HasColorMatrix stays false.
	}
}

// lookupSimpleMatrix is step 5: the hard-coded simple matrices
// (Kodak DC20/25, Fotoman Pixtura, Nikon E880/E900/E990) for cameras
// predating any table entry; Foveon X3 models have none.
func lookupSimpleMatrix(model string) ([9]float64, bool) {
	for _, sm := range simpleMatrices {
		if strings.Contains(model, sm.modelContains) {
			return sm.matrix, true
		}
	}
	return [9]float64{}, false
}
