package hdrstack

import(
	"github.com/abworrall/stackhdr/pkg/emath"
)

// makeFrame builds a YUV420 frame whose luma comes from lumaAt, with
// uniform chroma. Bytes past the width in each row are filled with
// junk, which nothing should ever read.
func makeFrame(w, h, stride int, lumaAt func(x, y int) uint8, u, v uint8) []byte {
	pix := make([]byte, stride*h*3/2)
	for i := range pix {
		pix[i] = 0xEE
	}
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			pix[y*stride + x] = lumaAt(x, y)
		}
	}
	stride2 := stride / 2
	planeU := pix[stride*h:]
	planeV := planeU[stride2*(h/2):]
	for y:=0; y<h/2; y++ {
		for x:=0; x<w/2; x++ {
			planeU[y*stride2 + x] = u
			planeV[y*stride2 + x] = v
		}
	}
	return pix
}

func flat(v uint8) func(x, y int) uint8 {
	return func(x, y int) uint8 { return v }
}

// accumulated sums the frames into a new image
func accumulated(w, h, stride int, frames ...[]byte) *WideImage {
	im := NewWideImage(w, h)
	for _, f := range frames {
		im.Accumulate(f, stride)
	}
	return im
}

// The stock tuning, for an accumulator scaled up to 16 frames.
func testLpConfig() LpFilterConfig {
	return LpFilterConfig{
		Strength:  0.2,
		Threshold: emath.MustPwl(emath.Point{X: 0, Y: 10}, emath.Point{X: 2048, Y: 204.8}, emath.Point{X: 4095, Y: 204.8}),
	}
}

func testCurveConfig() TonemapCurveConfig {
	return TonemapCurveConfig{
		FixedQ:    0.03,
		Q50Curve:  emath.MustPwl(emath.Point{X: 0, Y: 400}, emath.Point{X: 300, Y: 1000}, emath.Point{X: 2048, Y: 2048}, emath.Point{X: 4095, Y: 3072}),
		Q25Factor: 0.667,
	}
}

// lumaImage makes a luma-only image, with the luma from lumaAt.
func lumaImage(w, h, dynamicRange int, lumaAt func(x, y int) int16) *WideImage {
	im := NewWideImage(w, h)
	im.DynamicRange = dynamicRange
	for y:=0; y<h; y++ {
		for x:=0; x<w; x++ {
			im.Pixels[y*w + x] = lumaAt(x, y)
		}
	}
	return im
}
