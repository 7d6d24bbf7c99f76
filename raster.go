package gifdecoder

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// RGB is the only pixel shape the decoder produces: three 8-bit
// subpixel components. Add saturates to [0,255] rather than wrapping.
type RGB struct {
	R, G, B uint8
}

// Add returns the componentwise, saturating sum of p and q.
func (p RGB) Add(q RGB) RGB {
	return RGB{
		R: clampAdd(p.R, q.R),
		G: clampAdd(p.G, q.G),
		B: clampAdd(p.B, q.B),
	}
}

func clampAdd(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

// RGBA implements color.Color so RGB composes with the standard
// library image stack.
func (p RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(p.R) * 0x101
	g = uint32(p.G) * 0x101
	b = uint32(p.B) * 0x101
	a = 0xffff
	return
}

const rasterChannels = 3

// RasterBuffer is a zero-initialised, typed 2-D pixel canvas with a
// bounded (clipping) rectangular blit. It is the decode-side mirror
// of nicogif's image-to-byte-slice walk in getImagePixels: where that
// function reads an image.Image into a flat RGB slice, RasterBuffer
// is the flat RGB slice a decoder writes into and which can in turn
// be read back out as an image.Image.
type RasterBuffer struct {
	width, height uint32
	data          []uint8
}

// NewRasterBuffer allocates a zero-filled width*height*3 canvas.
func NewRasterBuffer(width, height uint32) *RasterBuffer {
	return &RasterBuffer{
		width:  width,
		height: height,
		data:   make([]uint8, int(width)*int(height)*rasterChannels),
	}
}

// NewRasterBufferFromSlice wraps an existing byte slice as backing
// storage for a width x height canvas. It realizes the corrected
// (non-inverted) from_container predicate from the design notes: ok
// is false exactly when data is too small to back the canvas, not
// when it is large enough.
func NewRasterBufferFromSlice(width, height uint32, data []byte) (*RasterBuffer, bool) {
	want := int(width) * int(height) * rasterChannels
	if len(data) < want {
		return nil, false
	}
	return &RasterBuffer{width: width, height: height, data: data[:want]}, true
}

// Width returns the canvas width in pixels.
func (rb *RasterBuffer) Width() uint32 { return rb.width }

// Height returns the canvas height in pixels.
func (rb *RasterBuffer) Height() uint32 { return rb.height }

func (rb *RasterBuffer) offset(x, y uint32) int {
	return int(y*rb.width+x) * rasterChannels
}

func (rb *RasterBuffer) inBounds(x, y uint32) bool {
	return x < rb.width && y < rb.height
}

// Get returns the pixel at (x,y). Out-of-range coordinates return the
// zero pixel; use GetChecked to distinguish that from an in-bounds
// black pixel.
func (rb *RasterBuffer) Get(x, y uint32) RGB {
	p, _ := rb.GetChecked(x, y)
	return p
}

// GetChecked returns the pixel at (x,y) and whether it was in bounds.
func (rb *RasterBuffer) GetChecked(x, y uint32) (RGB, bool) {
	if !rb.inBounds(x, y) {
		return RGB{}, false
	}
	i := rb.offset(x, y)
	return RGB{R: rb.data[i], G: rb.data[i+1], B: rb.data[i+2]}, true
}

// Put writes a single pixel. Out-of-range coordinates are silently
// dropped, consistent with PutRect's clipping behaviour.
func (rb *RasterBuffer) Put(x, y uint32, p RGB) {
	if !rb.inBounds(x, y) {
		return
	}
	i := rb.offset(x, y)
	rb.data[i], rb.data[i+1], rb.data[i+2] = p.R, p.G, p.B
}

// PutRect blits a w*h rectangle of pixels at (ox,oy), clipping to the
// intersection of the destination rectangle with the canvas. It
// validates only that len(pixels) >= w*h, matching the specification;
// pixels whose target falls outside the canvas are dropped, not an
// error.
func (rb *RasterBuffer) PutRect(ox, oy, w, h uint32, pixels []RGB) error {
	if uint64(len(pixels)) < uint64(w)*uint64(h) {
		return errNotEnoughPixels
	}

	yEnd := minU32(oy+h, rb.height)
	xEnd := minU32(ox+w, rb.width)

	for y := oy; y < yEnd; y++ {
		row := (y - oy) * w
		for x := ox; x < xEnd; x++ {
			p := pixels[row+(x-ox)]
			rb.Put(x, y, p)
		}
	}
	return nil
}

func minU32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

var errNotEnoughPixels = errors.New("gifdecoder: not enough pixels supplied for put_rect")

// ColorModel implements image.Image.
func (rb *RasterBuffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (rb *RasterBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, int(rb.width), int(rb.height))
}

// At implements image.Image.
func (rb *RasterBuffer) At(x, y int) color.Color {
	if x < 0 || y < 0 {
		return RGB{}
	}
	p, _ := rb.GetChecked(uint32(x), uint32(y))
	return p
}

var _ image.Image = (*RasterBuffer)(nil)
