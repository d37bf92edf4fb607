// Package colorspace composes the camera-to-output color transform
// and builds the gamma/brightness pipeline that runs after it.
package colorspace

// OutputSpace selects the XYZ-to-output matrix used after the
// camera's native-to-XYZ matrix.
type OutputSpace int

const (
	OutputSRGB OutputSpace = iota
	OutputAdobe1998
	OutputWideGamut
	OutputProPhoto
	OutputXYZ
	OutputACES
)

// xyzToOutput holds each output space's XYZ(D65)->RGB matrix, row
// major, 3x3.
var xyzToOutput = map[OutputSpace][9]float64{
	OutputSRGB: {
		3.2404542, -1.5371385, -0.4985314,
		-0.9692660, 1.8760108, 0.0415560,
		0.0556434, -0.2040259, 1.0572252,
	},
	OutputAdobe1998: {
		2.0413690, -0.5649464, -0.3446944,
		-0.9692660, 1.8760108, 0.0415560,
		0.0134474, -0.1183897, 1.0154096,
	},
	OutputWideGamut: {
		1.4628067, -0.1840623, -0.2743606,
		-0.5217933, 1.4472381, 0.0677227,
		0.0349342, -0.0968930, 1.2884099,
	},
	OutputProPhoto: {
		1.3459433, -0.2556075, -0.0511118,
		-0.5445989, 1.5081673, 0.0205351,
		0.0000000, 0.0000000, 1.2118128,
	},
	OutputXYZ: {
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	},
	OutputACES: {
		1.0498110175, 0.0000000000, -0.0000974845,
		-0.4959030231, 1.3733130458, 0.0982400361,
		0.0000000000, 0.0000000000, 0.9912520182,
	},
}

// CameraToXYZ inverts a descriptor's stored XYZ-to-camera matrix (the
// first three rows of its ColorMatrix, stored as rows of 3 columns, the
// 4th row being unused for 3-color cameras) to get the native-to-XYZ
// matrix the rest of this package composes against.
func CameraToXYZ(colorMatrix [12]float64) [9]float64 {
	var xyzToCamera [9]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			xyzToCamera[r*3+c] = colorMatrix[r*3+c]
		}
	}
	return invert3x3(xyzToCamera)
}

func invert3x3(m [9]float64) [9]float64 {
	det := m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
	if det == 0 {
		return [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}
	}
	inv := 1 / det
	return [9]float64{
		(m[4]*m[8] - m[5]*m[7]) * inv,
		(m[2]*m[7] - m[1]*m[8]) * inv,
		(m[1]*m[5] - m[2]*m[4]) * inv,
		(m[5]*m[6] - m[3]*m[8]) * inv,
		(m[0]*m[8] - m[2]*m[6]) * inv,
		(m[2]*m[3] - m[0]*m[5]) * inv,
		(m[3]*m[7] - m[4]*m[6]) * inv,
		(m[1]*m[6] - m[0]*m[7]) * inv,
		(m[0]*m[4] - m[1]*m[3]) * inv,
	}
}

// ComposeMatrix multiplies the camera's 3x3 native-to-XYZ matrix
// (from CameraToXYZ) by the chosen XYZ-to-output matrix, yielding the
// single 3x3 native-to-output transform the pipeline applies per
// pixel.
func ComposeMatrix(cameraToXYZ [9]float64, space OutputSpace) [9]float64 {
	xyz := xyzToOutput[space]
	var out [9]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += xyz[r*3+k] * cameraToXYZ[k*3+c]
			}
			out[r*3+c] = sum
		}
	}
	return out
}

// ApplyMatrix transforms one R/G/B triple through a composed 3x3
// matrix.
func ApplyMatrix(m [9]float64, r, g, b float64) (float64, float64, float64) {
	return m[0]*r + m[1]*g + m[2]*b,
		m[3]*r + m[4]*g + m[5]*b,
		m[6]*r + m[7]*g + m[8]*b
}
