package ecolor

import(
	"fmt"
	"image/color"

	"github.com/mdouchement/hdr/hdrcolor"

	"github.com/abworrall/stackhdr/pkg/emath"
)

// A YUV color is a full-range BT.601 (JFIF) sample, normalized so that
// Y is in [0,1] and U,V are in [-0.5,0.5], with 0 being neutral.
type YUV struct {
	Y, U, V float64
}

var(
	// https://www.w3.org/Graphics/JPEG/jfif3.pdf, section 7
	YUV_to_sRGB = emath.Mat3{
		1.0,  0.0,       1.402,
		1.0, -0.344136, -0.714136,
		1.0,  1.772,     0.0,
	}
)

func (c YUV)String() string {
	return fmt.Sprintf("[Y %8.6f, U %+8.6f, V %+8.6f]", c.Y, c.U, c.V)
}

// NewYUV normalizes a sample where luma runs [0,max] and chroma is
// already de-biased, i.e. runs [-max/2, max/2].
func NewYUV(y, u, v, max float64) YUV {
	return YUV{Y: y / max, U: u / max, V: v / max}
}

// ToSRGB returns the gamma encoded sRGB color, clipped into [0,1].
func (c YUV)ToSRGB() emath.Vec3 {
	return YUV_to_sRGB.Apply(emath.Vec3{c.Y, c.U, c.V}).Clip(0, 1)
}

// ToLinearRGB undoes the sRGB gamma, so the result is suitable for HDR
// file formats that expect linear light.
func (c YUV)ToLinearRGB() hdrcolor.RGB {
	rgb := emath.GammaLinearize_sRGB(c.ToSRGB())
	return hdrcolor.RGB{R: rgb[0], G: rgb[1], B: rgb[2]}
}

// ColorToYUV8 converts any color into 8-bit full range YUV, with chroma
// biased so 128 is neutral.
func ColorToYUV8(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return color.RGBToYCbCr(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
