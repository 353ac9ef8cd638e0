package hdrstack

import(
	"fmt"
	"math"

	"github.com/abworrall/stackhdr/pkg/emath"
)

// MaxFrameContribution is how much one 8-bit frame can add to the
// dynamic range of a WideImage.
const MaxFrameContribution = 256

// A WideImage is a YUV420 image whose samples can exceed 8 bits: it
// holds the running sum of many frames, or something derived from
// that sum. Pixels holds the full-resolution luma plane, then the two
// quarter-resolution chroma planes (U then V). Chroma is stored
// de-biased, so 0 is neutral.
//
// An image produced by LpFilter only carries the luma plane.
type WideImage struct {
	Width        int
	Height       int
	Pixels       []int16
	DynamicRange int // 1 more than the maximum pixel value
}

// NewWideImage allocates a zeroed YUV420 image with no dynamic range;
// it is ready to Accumulate into.
func NewWideImage(w, h int) *WideImage {
	return &WideImage{
		Width:  w,
		Height: h,
		Pixels: make([]int16, w*h*3/2),
	}
}

func (im *WideImage)String() string {
	return fmt.Sprintf("WideImage[%dx%d, range %d, %d samples]", im.Width, im.Height, im.DynamicRange, len(im.Pixels))
}

func (im *WideImage)NumLuma() int     { return im.Width * im.Height }
func (im *WideImage)NumChroma() int   { return (im.Width / 2) * (im.Height / 2) }
func (im *WideImage)HasChroma() bool  { return len(im.Pixels) >= im.NumLuma() + 2*im.NumChroma() }

func (im *WideImage)Y() []int16 { return im.Pixels[:im.NumLuma()] }
func (im *WideImage)U() []int16 { return im.Pixels[im.NumLuma() : im.NumLuma()+im.NumChroma()] }
func (im *WideImage)V() []int16 { return im.Pixels[im.NumLuma()+im.NumChroma() : im.NumLuma()+2*im.NumChroma()] }

// MaxVal is the largest value a luma sample can take.
func (im *WideImage)MaxVal() int { return im.DynamicRange - 1 }

// Clear zeroes all the samples, but leaves the dynamic range alone.
func (im *WideImage)Clear() {
	clear(im.Pixels)
}

// Scale multiplies every sample, and the dynamic range, by factor.
// Samples are truncated towards zero; the range is rounded, so that
// e.g. 3 frames scaled by 16/3 still cover 4096 values.
func (im *WideImage)Scale(factor float64) {
	for i, p := range im.Pixels {
		im.Pixels[i] = int16(float64(p) * factor)
	}
	im.DynamicRange = int(math.Round(float64(im.DynamicRange) * factor))
}

// LumaGrid copies the luma plane into a FloatGrid, e.g. for dumping.
func (im *WideImage)LumaGrid() emath.FloatGrid {
	g := emath.NewFloatGrid(im.Width, im.Height)
	vals := g.Values()
	for i, p := range im.Y() {
		vals[i] = float64(p)
	}
	return g
}
