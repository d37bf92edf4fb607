// Package config defines the configuration record every rawforge
// command binds cobra flags and viper settings into, generalizing the
// single-letter option set spec §6 describes into named Go fields.
package config

// Options is the full per-run configuration surface. cmd/ binds each
// field to a cobra flag (and, transitively, a viper key for config
// file / environment override), and pipeline.Options is derived from
// it for the fields the A-H driver actually consults.
type Options struct {
	Verbose        bool
	WriteToStdout  bool
	ThumbnailOnly  bool
	IdentifyOnly   bool
	TimestampOnly  bool
	ReadFromStdin  bool

	UseAutoWB   bool
	UseCameraWB bool
	UserMul     [4]float64
	GreyBox     [4]int

	UserFlip      int
	UseFujiRotate bool
	HalfSize      bool

	OutputColorSpace int
	OutputBits       int
	OutputTIFF       bool
	FourColorRGB     bool
	CameraICCPath    string
	OutputICCPath    string

	Gamma         [2]float64
	Brightness    float64
	NoAutoBright  bool
	Highlight     int
	Threshold     float64
	MedPasses     int

	UserBlack           int
	UserSat             int
	BadPixelFile        string
	DarkFrame           string
	ChromaticAberration [2]float64
	ShotTimeUnix        int64
	ShotSelect          int
	MultiOut            bool
	DocumentMode        bool
	UserQual            int

	Paths []string
}

// Default returns the zero-value-safe option set: auto white balance,
// sRGB output, 16-bit depth, AHD-equivalent quality (see
// pipeline.DefaultOptions), no highlight clipping surprises.
func Default() Options {
	return Options{
		UseAutoWB:        true,
		OutputColorSpace: 0, // sRGB
		OutputBits:       16,
		Gamma:            [2]float64{1.0 / 2.4, 12.92},
		UserQual:         3, // AHD
		Highlight:        0, // clip
		UseFujiRotate:    true,
	}
}
