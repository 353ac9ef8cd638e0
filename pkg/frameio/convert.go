package frameio

import(
	"image"

	"github.com/abworrall/stackhdr/pkg/ecolor"
	"github.com/abworrall/stackhdr/pkg/pipeline"
)

// AlignStride rounds a row width up to a multiple of align, the way
// camera buffers usually are.
func AlignStride(width, align int) int {
	if align <= 1 {
		return width
	}
	return (width + align - 1) / align * align
}

// ImageToFrame converts an image into a YUV420 frame. Odd widths and
// heights lose their last column/row. Chroma is the average over each
// 2x2 block.
func ImageToFrame(img image.Image, strideAlign int) pipeline.Frame {
	b := img.Bounds()
	w, h := b.Dx() &^ 1, b.Dy() &^ 1
	stride := AlignStride(w, strideAlign)
	stride2 := stride / 2

	pix := make([]byte, stride*h*3/2)
	planeU := pix[stride*h:]
	planeV := planeU[stride*h/4:]

	for y:=0; y<h; y+=2 {
		for x:=0; x<w; x+=2 {
			sumU, sumV := 0, 0
			for dy:=0; dy<2; dy++ {
				for dx:=0; dx<2; dx++ {
					Y, U, V := ecolor.ColorToYUV8(img.At(b.Min.X + x + dx, b.Min.Y + y + dy))
					pix[(y+dy)*stride + x + dx] = Y
					sumU += int(U)
					sumV += int(V)
				}
			}
			planeU[(y/2)*stride2 + x/2] = uint8((sumU + 2) / 4)
			planeV[(y/2)*stride2 + x/2] = uint8((sumV + 2) / 4)
		}
	}

	return pipeline.Frame{Width: w, Height: h, Stride: stride, Pix: pix}
}

// OutputToImage wraps a YUV420 buffer as an image.YCbCr, which the
// standard encoders understand. No copying happens.
func OutputToImage(out pipeline.Output) *image.YCbCr {
	h := out.Height
	lumaLen := out.Stride * h
	chromaLen := (out.Stride / 2) * (h / 2)

	return &image.YCbCr{
		Y:              out.Pix[:lumaLen],
		Cb:             out.Pix[lumaLen : lumaLen+chromaLen],
		Cr:             out.Pix[lumaLen+chromaLen : lumaLen+2*chromaLen],
		YStride:        out.Stride,
		CStride:        out.Stride / 2,
		SubsampleRatio: image.YCbCrSubsampleRatio420,
		Rect:           image.Rect(0, 0, out.Width, out.Height),
	}
}
