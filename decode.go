package gifdecoder

import "io"

// Frame is declared to round out the DecodedImage sum type (§6), but
// is never populated: animation assembly is a Non-goal, so Animation
// is always nil.
type Frame struct {
	Delay  uint16
	Raster *RasterBuffer
}

// DecodedImage is the Go realization of §6's `DecodedImage = Single |
// Animation` sum type: exactly one of the two fields is meaningful,
// and per this decoder's Non-goal, Animation is always nil — Decode
// only ever returns the Single variant.
type DecodedImage struct {
	Single    *RasterBuffer
	Animation []Frame
}

// Decode reads a complete GIF stream from r and returns the single
// composited raster described by §4.E's grammar walk. opts supplies
// the default color table (whose zeroth entry is also the fallback
// color for out-of-range palette indices) and whether comment
// extensions are validated as strict ASCII.
func Decode(r io.Reader, opts Options) (*DecodedImage, error) {
	return decodeStream(r, opts)
}
